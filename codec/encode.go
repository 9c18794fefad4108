package codec

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/anvdev/cosmic-wavs-sub000/utils/safe"
)

// EncodeDataWithId packs the on-chain result record
// DataWithId(uint64 triggerId, bytes data).
//
// The record is produced by an explicit two-field ABI pack so that this
// encoder and the submission contract's decoder agree on field boundaries.
// An empty result is valid and yields a zero-length data field.
func EncodeDataWithId(triggerID uint64, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	return dataWithIdArgs.Pack(triggerID, data)
}

// DecodeDataWithId unpacks a DataWithId record back into its fields.
// It is the receiving side of EncodeDataWithId and backs the round-trip
// guarantee: the decoded triggerId is exactly the encoded one.
func DecodeDataWithId(record []byte) (uint64, []byte, error) {
	vals, err := dataWithIdArgs.Unpack(record)
	if err != nil {
		return 0, nil, err
	}
	triggerID := *abi.ConvertType(vals[0], new(uint64)).(*uint64)
	data := *abi.ConvertType(vals[1], new([]byte)).(*[]byte)
	return triggerID, data, nil
}

// PeekTriggerID reads the correlation id from a DataWithId record without
// decoding the data field. The id occupies the low 8 bytes of the first
// ABI word, big-endian.
func PeekTriggerID(record []byte) (uint64, error) {
	word, err := safe.Subrange(record, 0, wordSize)
	if err != nil {
		return 0, fmt.Errorf("record shorter than an id word: %w", err)
	}
	if !isZero(word[:wordSize-8]) {
		return 0, fmt.Errorf("%w: id word padding is not all-zero", ErrShapeMismatch)
	}
	return bigendian.BytesToUint64(word[wordSize-8:]), nil
}
