// Package bits implements a bit-granular stream reader and writer.
//
// It stores values that are not aligned to byte boundaries: single-bit flags
// and small integers a few bits wide. The canonical envelope codec
// (utils/cser) uses it as the side channel for length prefixes and booleans.
package bits

type (
	// Array is the backing byte slice of a bit stream.
	Array struct {
		Bytes []byte
	}

	// Writer appends bits to an Array.
	Writer struct {
		*Array
		bitOffset int // next bit to write within the last byte, 0-7
	}

	// Reader consumes bits from an Array.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int // next bit to read within Bytes[byteOffset], 0-7
	}
)

// NewWriter creates a bit writer appending to arr.
func NewWriter(arr *Array) *Writer {
	return &Writer{
		Array: arr,
	}
}

// NewReader creates a bit reader over arr.
func NewReader(arr *Array) *Reader {
	return &Reader{
		Array: arr,
	}
}

func (a *Writer) byteBitsFree() int {
	return 8 - a.bitOffset
}

func (a *Writer) writeIntoLastByte(v uint) {
	a.Bytes[len(a.Bytes)-1] |= byte(v << a.bitOffset)
}

// zeroTopByteBits masks v so it fits into the free space of the current byte.
func zeroTopByteBits(v uint, bits int) uint {
	mask := uint(0xff) >> bits
	return v & mask
}

// Write appends the lowest count bits of v to the stream.
func (a *Writer) Write(count int, v uint) {
	if a.bitOffset == 0 {
		a.Bytes = append(a.Bytes, byte(0))
	}

	free := a.byteBitsFree()

	if count <= free {
		// fits in the current byte
		a.writeIntoLastByte(v)
		if count == free {
			a.bitOffset = 0
		} else {
			a.bitOffset += count
		}
	} else {
		// spills into the next byte: fill what's free, recurse for the rest
		toWrite := free
		a.writeIntoLastByte(zeroTopByteBits(v, a.bitOffset))
		a.bitOffset = 0
		a.Write(count-toWrite, v>>toWrite)
	}
}

func (a *Reader) byteBitsFree() int {
	return 8 - a.bitOffset
}

// Read consumes count bits and returns them as an integer.
func (a *Reader) Read(count int) (v uint) {
	if count == 0 {
		return 0
	}

	free := a.byteBitsFree()

	if count <= free {
		// all requested bits are inside the current byte
		clear := 8 - (a.bitOffset + count)
		v = zeroTopByteBits(uint(a.Bytes[a.byteOffset]), clear) >> a.bitOffset
		if count == free {
			a.bitOffset = 0
			a.byteOffset++
		} else {
			a.bitOffset += count
		}
	} else {
		// spans two or more bytes
		toRead := free
		v = uint(a.Bytes[a.byteOffset]) >> a.bitOffset
		a.bitOffset = 0
		a.byteOffset++
		rest := a.Read(count - toRead)
		v |= rest << toRead
	}
	return
}

// View returns the next count bits without advancing the cursor.
func (a *Reader) View(count int) (v uint) {
	cp := *a
	return (&cp).Read(count)
}

// NonReadBytes returns the number of bytes not fully consumed yet.
func (a *Reader) NonReadBytes() int {
	return len(a.Bytes) - a.byteOffset
}

// NonReadBits returns the total number of unread bits.
func (a *Reader) NonReadBits() int {
	return a.NonReadBytes()*8 - a.bitOffset
}
