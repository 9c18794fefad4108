package codec

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataWithId_RoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		triggerID uint64
		data      []byte
	}{
		{"example scenario", 42, []byte("BTC:82717")},
		{"zero id", 0, []byte("local")},
		{"empty data", 7, []byte{}},
		{"nil data", 7, nil},
		{"binary data", 1 << 62, []byte{0x00, 0xff, 0x00}},
		{"word-multiple data", 3, make([]byte, 64)},
	}

	for _, tc := range cases {
		record, err := EncodeDataWithId(tc.triggerID, tc.data)
		require.NoError(t, err, tc.name)

		id, data, err := DecodeDataWithId(record)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.triggerID, id, tc.name)
		if len(tc.data) == 0 {
			assert.Empty(t, data, tc.name)
		} else {
			assert.Equal(t, tc.data, data, tc.name)
		}
	}
}

func TestDataWithId_ExampleScenario(t *testing.T) {
	record, err := EncodeDataWithId(42, []byte("BTC:82717"))
	require.NoError(t, err)

	id, data, err := DecodeDataWithId(record)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, []byte("BTC:82717"), data)
}

func TestDataWithId_WordLayout(t *testing.T) {
	record, err := EncodeDataWithId(42, []byte("BTC:82717"))
	require.NoError(t, err)

	// first word: uint64 id, big-endian, in the low 8 bytes
	require.GreaterOrEqual(t, len(record), wordSize)
	assert.Equal(t, make([]byte, wordSize-8), record[:wordSize-8])
	assert.Equal(t, bigendian.Uint64ToBytes(42), record[wordSize-8:wordSize])
}

func TestPeekTriggerID(t *testing.T) {
	record, err := EncodeDataWithId(0xDEADBEEF, []byte("payload"))
	require.NoError(t, err)

	id, err := PeekTriggerID(record)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), id)

	_, err = PeekTriggerID(record[:16])
	assert.Error(t, err, "short record")

	mangled := append([]byte{}, record...)
	mangled[0] = 0xaa
	_, err = PeekTriggerID(mangled)
	assert.ErrorIs(t, err, ErrShapeMismatch, "id word padding must be zero")
}

func TestDecodeDataWithId_Malformed(t *testing.T) {
	_, _, err := DecodeDataWithId(nil)
	assert.Error(t, err)

	_, _, err = DecodeDataWithId([]byte{1, 2, 3})
	assert.Error(t, err)

	// a record cut inside the length word of the data field
	record, err := EncodeDataWithId(1, []byte("abcd"))
	require.NoError(t, err)
	_, _, err = DecodeDataWithId(record[:70])
	assert.Error(t, err, "truncated data section must not decode")
}
