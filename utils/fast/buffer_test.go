package fast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	w := NewWriter(make([]byte, 0, 16))
	w.WriteByte(0x01)
	w.Write([]byte{0x02, 0x03, 0x04})
	w.WriteByte(0xff)

	r := NewReader(w.Bytes())
	assert.Equal(t, byte(0x01), r.ReadByte())
	assert.Equal(t, []byte{0x02, 0x03, 0x04}, r.Read(3))
	assert.Equal(t, 4, r.Position())
	assert.Equal(t, 1, r.Remaining())
	assert.False(t, r.Empty())
	assert.Equal(t, byte(0xff), r.ReadByte())
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Remaining())
}

func TestReader_SharesMemory(t *testing.T) {
	buf := []byte{1, 2, 3}
	r := NewReader(buf)
	view := r.Read(2)
	view[0] = 9
	assert.Equal(t, byte(9), buf[0], "Read must alias the source buffer")
}

func TestReader_PanicsPastEnd(t *testing.T) {
	r := NewReader([]byte{1})
	require.Panics(t, func() {
		r.Read(2)
	})
	r2 := NewReader(nil)
	require.Panics(t, func() {
		r2.ReadByte()
	})
}
