package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Shape is the caller's hint about the logical type carried by a payload.
type Shape uint8

const (
	// ShapeRaw passes the payload through uninterpreted.
	ShapeRaw Shape = iota
	// ShapeText expects an ABI-encoded string (typed call or bare value).
	ShapeText
	// ShapeAddress expects a 20-byte address in one of its binary encodings.
	ShapeAddress
)

func (s Shape) String() string {
	switch s {
	case ShapeRaw:
		return "raw"
	case ShapeText:
		return "text"
	case ShapeAddress:
		return "address"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindRaw Kind = iota
	KindText
	KindAddress
)

// Value is the decoded payload: exactly one variant is populated.
type Value struct {
	kind Kind
	text string
	addr common.Address
	raw  []byte
}

// RawValue wraps uninterpreted bytes.
func RawValue(b []byte) Value {
	return Value{kind: KindRaw, raw: b}
}

// TextValue wraps a decoded string.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// AddressValue wraps a decoded 20-byte address.
func AddressValue(a common.Address) Value {
	return Value{kind: KindAddress, addr: a}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the string variant. Valid only for KindText.
func (v Value) Text() string {
	return v.text
}

// Address returns the address variant. Valid only for KindAddress.
func (v Value) Address() common.Address {
	return v.addr
}

// Raw returns the raw variant. Valid only for KindRaw.
func (v Value) Raw() []byte {
	return v.raw
}

// addressWordSize is the ABI word layout of an address argument:
// 12 bytes of zero padding followed by the 20 address bytes.
const (
	selectorSize   = 4
	addressSize    = common.AddressLength // 20
	wordSize       = 32
	addressPadding = wordSize - addressSize // 12
)

// internal markers used to classify a failed decode
var (
	errBadPadding = errors.New("address word padding is not all-zero")
	errBadLength  = errors.New("length matches no known shape")
)

// strategy is one step of the ordered fallback chain.
type strategy struct {
	name  string
	apply func(payload []byte) (Value, error)
}

// Decode interprets payload according to the expected shape.
//
// Strategies are attempted strictly in order and the first success wins;
// the decoder never compares the results of multiple applicable strategies.
// The same payload and shape always produce the same value or error.
func Decode(payload []byte, shape Shape) (Value, error) {
	var chain []strategy
	switch shape {
	case ShapeRaw:
		// raw payloads are handed downstream untouched
		return RawValue(payload), nil
	case ShapeText:
		chain = []strategy{
			{"typed-call", decodeTypedCallText},
			{"bare-string", decodeBareString},
		}
	case ShapeAddress:
		chain = []strategy{
			{"typed-call", decodeTypedCallAddress},
			{"bare-word", decodeBareAddressWord},
			{"fixed-width", decodeFixedWidthAddress},
		}
	default:
		return Value{}, newDecodeError(shape, ErrUnrecognizedShape, nil)
	}

	attempts := make([]Attempt, 0, len(chain))
	for _, s := range chain {
		v, err := s.apply(payload)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrAmbiguousDecode) {
			return Value{}, newDecodeError(shape, ErrAmbiguousDecode,
				append(attempts, Attempt{s.name, err}))
		}
		attempts = append(attempts, Attempt{s.name, err})
	}

	return Value{}, newDecodeError(shape, classifyFailure(payload, shape, attempts), attempts)
}

// classifyFailure picks the sentinel for a payload no strategy accepted.
func classifyFailure(payload []byte, shape Shape, attempts []Attempt) error {
	if shape != ShapeAddress {
		return ErrShapeMismatch
	}
	switch len(payload) {
	case addressSize, wordSize, selectorSize + wordSize:
		// a known length whose content (padding, selector args) was wrong
		return ErrShapeMismatch
	default:
		return ErrUnrecognizedShape
	}
}

// matchKnownCall finds the known function whose selector prefixes payload.
// A payload matching more than one registered signature is ambiguous.
func matchKnownCall(payload []byte, candidates ...[]byte) (abi.Method, error) {
	if len(payload) < selectorSize {
		return abi.Method{}, fmt.Errorf("payload of %d bytes is shorter than a call selector", len(payload))
	}
	var matched []abi.Method
	for _, id := range candidates {
		if bytes.Equal(payload[:selectorSize], id) {
			if m, err := knownCalls.MethodById(id); err == nil {
				matched = append(matched, *m)
			}
		}
	}
	switch len(matched) {
	case 0:
		return abi.Method{}, fmt.Errorf("selector %x matches no known signature", payload[:selectorSize])
	case 1:
		return matched[0], nil
	default:
		return abi.Method{}, fmt.Errorf("%w: selector %x matches %d signatures",
			ErrAmbiguousDecode, payload[:selectorSize], len(matched))
	}
}

// decodeTypedCallText interprets payload as addTask(string) call data.
func decodeTypedCallText(payload []byte) (Value, error) {
	method, err := matchKnownCall(payload, addTaskMethodID)
	if err != nil {
		return Value{}, err
	}
	vals, err := method.Inputs.Unpack(payload[selectorSize:])
	if err != nil {
		return Value{}, fmt.Errorf("unpack %s: %w", method.Name, err)
	}
	return TextValue(*abi.ConvertType(vals[0], new(string)).(*string)), nil
}

// decodeBareString interprets payload as a single ABI-encoded string.
func decodeBareString(payload []byte) (Value, error) {
	vals, err := bareStringArgs.Unpack(payload)
	if err != nil {
		return Value{}, err
	}
	return TextValue(*abi.ConvertType(vals[0], new(string)).(*string)), nil
}

// decodeTypedCallAddress interprets payload as checkBalance(address) call
// data. The argument word's padding is validated even though the ABI layer
// would tolerate it: a non-canonical word is a shape mismatch, not an address.
func decodeTypedCallAddress(payload []byte) (Value, error) {
	method, err := matchKnownCall(payload, checkBalanceMethodID)
	if err != nil {
		return Value{}, err
	}
	args := payload[selectorSize:]
	if len(args) != wordSize {
		return Value{}, fmt.Errorf("%s expects one word of arguments, got %d bytes", method.Name, len(args))
	}
	return addressFromWord(args)
}

// decodeBareAddressWord interprets payload as a single ABI-encoded address:
// one 32-byte word, 12 zero bytes of padding, 20 address bytes.
func decodeBareAddressWord(payload []byte) (Value, error) {
	if len(payload) != wordSize {
		return Value{}, errBadLength
	}
	return addressFromWord(payload)
}

// decodeFixedWidthAddress handles the raw binary encodings:
// 20 bytes (the address itself) or 36 bytes (discarded 4-byte selector,
// zero padding, address).
func decodeFixedWidthAddress(payload []byte) (Value, error) {
	switch len(payload) {
	case addressSize:
		return AddressValue(common.BytesToAddress(payload)), nil
	case selectorSize + wordSize:
		// unknown selectors are discarded, the word must still be canonical
		return addressFromWord(payload[selectorSize:])
	default:
		return Value{}, errBadLength
	}
}

// addressFromWord extracts the address from a 32-byte ABI word, rejecting
// non-zero padding instead of silently truncating.
func addressFromWord(word []byte) (Value, error) {
	if !isZero(word[:addressPadding]) {
		return Value{}, errBadPadding
	}
	return AddressValue(common.BytesToAddress(word[addressPadding:])), nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
