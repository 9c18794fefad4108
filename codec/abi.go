// Package codec implements the binary trigger/result wire contract of the
// AVS component boundary.
//
// Incoming payloads are ABI-encoded per the trigger contract's conventions:
// a NewTrigger(bytes) event wraps an ABI-encoded TriggerInfo record, and the
// record's data field carries the component input in one of a small set of
// shapes. Outgoing on-chain results are ABI-encoded DataWithId records. The
// decoder never guesses: it walks a fixed, ordered list of strategies and
// reports a structured error when none applies.
package codec

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// knownCallsABI lists the function signatures the typed-call decode attempt
// recognizes. Payloads produced with `cast abi-encode "f(...)"` arrive as
// full call data including the 4-byte selector; these are the f's.
const knownCallsABI = `[{"constant":false,"inputs":[{"internalType":"address","name":"wallet","type":"address"}],"name":"checkBalance","outputs":[],"payable":false,"stateMutability":"view","type":"function"},{"constant":false,"inputs":[{"internalType":"string","name":"input","type":"string"}],"name":"addTask","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}]`

// newTriggerEventSig is the log signature of the trigger contract's event.
// Its only field is the ABI-encoded TriggerInfo record.
const newTriggerEventSig = "NewTrigger(bytes)"

var (
	// NewTriggerEventID is topic0 of a NewTrigger log.
	NewTriggerEventID = crypto.Keccak256Hash([]byte(newTriggerEventSig))

	knownCalls abi.ABI

	// method IDs of the known typed calls, extracted at init
	checkBalanceMethodID []byte
	addTaskMethodID      []byte

	uint64Ty  abi.Type
	bytesTy   abi.Type
	stringTy  abi.Type
	addressTy abi.Type

	// newTriggerArgs unpacks the data section of a NewTrigger log.
	newTriggerArgs abi.Arguments

	// triggerInfoArgs packs/unpacks the nested TriggerInfo tuple.
	triggerInfoArgs abi.Arguments

	// dataWithIdArgs is the two-field (uint64 triggerId, bytes data) result
	// record shared with the submission contract's decoder. Field order and
	// padding are part of the wire contract.
	dataWithIdArgs abi.Arguments

	bareStringArgs  abi.Arguments
	bareAddressArgs abi.Arguments
)

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func init() {
	parsed, err := abi.JSON(strings.NewReader(knownCallsABI))
	if err != nil {
		panic(err)
	}
	knownCalls = parsed

	for name, constID := range map[string]*[]byte{
		"checkBalance": &checkBalanceMethodID,
		"addTask":      &addTaskMethodID,
	} {
		method, exist := knownCalls.Methods[name]
		if !exist {
			panic("unknown typed-call method: " + name)
		}
		*constID = make([]byte, len(method.ID))
		copy(*constID, method.ID)
	}

	uint64Ty = mustType("uint64")
	bytesTy = mustType("bytes")
	stringTy = mustType("string")
	addressTy = mustType("address")

	triggerInfoTy, err := abi.NewType("tuple", "struct TriggerInfo", []abi.ArgumentMarshaling{
		{Name: "triggerId", Type: "uint64"},
		{Name: "creator", Type: "address"},
		{Name: "data", Type: "bytes"},
	})
	if err != nil {
		panic(err)
	}

	newTriggerArgs = abi.Arguments{{Name: "_triggerInfo", Type: bytesTy}}
	triggerInfoArgs = abi.Arguments{{Name: "info", Type: triggerInfoTy}}
	dataWithIdArgs = abi.Arguments{
		{Name: "triggerId", Type: uint64Ty},
		{Name: "data", Type: bytesTy},
	}
	bareStringArgs = abi.Arguments{{Name: "value", Type: stringTy}}
	bareAddressArgs = abi.Arguments{{Name: "value", Type: addressTy}}
}

// TriggerInfo is the record nested inside a NewTrigger log.
type TriggerInfo struct {
	TriggerId uint64         `abi:"triggerId"`
	Creator   common.Address `abi:"creator"`
	Data      []byte         `abi:"data"`
}

// UnpackNewTriggerLog extracts the raw TriggerInfo bytes from the data
// section of a NewTrigger log.
func UnpackNewTriggerLog(logData []byte) ([]byte, error) {
	vals, err := newTriggerArgs.Unpack(logData)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(vals[0], new([]byte)).(*[]byte), nil
}

// PackNewTriggerLog is the inverse of UnpackNewTriggerLog. Used by tests and
// replay-record tooling to synthesize log data.
func PackNewTriggerLog(triggerInfo []byte) ([]byte, error) {
	return newTriggerArgs.Pack(triggerInfo)
}

// DecodeTriggerInfo ABI-decodes a TriggerInfo record.
func DecodeTriggerInfo(raw []byte) (TriggerInfo, error) {
	vals, err := triggerInfoArgs.Unpack(raw)
	if err != nil {
		return TriggerInfo{}, err
	}
	return *abi.ConvertType(vals[0], new(TriggerInfo)).(*TriggerInfo), nil
}

// EncodeTriggerInfo ABI-encodes a TriggerInfo record.
func EncodeTriggerInfo(info TriggerInfo) ([]byte, error) {
	return triggerInfoArgs.Pack(info)
}
