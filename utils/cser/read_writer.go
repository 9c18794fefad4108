// Package cser implements a canonical compact binary serialization.
//
// Values are split across two streams: booleans and byte-length prefixes go
// to a bit stream (utils/bits), the value bytes themselves go to a byte
// stream (utils/fast). Integers are stored with the minimal number of bytes;
// any non-minimal encoding is rejected on read. The strictness makes the
// format canonical: a value has exactly one valid encoding, and a decoded
// record re-encodes to the identical bytes.
//
// The envelope replay records (package trigger) are stored in this format.
package cser

import (
	"errors"

	"github.com/anvdev/cosmic-wavs-sub000/utils/bits"
	"github.com/anvdev/cosmic-wavs-sub000/utils/fast"
)

var (
	// ErrNonCanonicalEncoding is returned when data is not packed minimally
	// or unused trailing bits are non-zero.
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	// ErrMalformedEncoding is returned when the structure is invalid or truncated.
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrTooLargeAlloc is returned when a decoded size field exceeds the allowed limit.
	ErrTooLargeAlloc = errors.New("too large allocation")
)

// MaxAlloc limits the size of decoded byte slices.
// A length field above this is treated as hostile input, not satisfied.
const MaxAlloc = 100 * 1024

// Writer orchestrates writing to the two streams.
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader orchestrates reading from the two streams.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter creates a ready-to-use writer with pre-sized buffers.
func NewWriter() *Writer {
	bbits := &bits.Array{Bytes: make([]byte, 0, 32)}
	bbytes := make([]byte, 0, 200)
	return &Writer{
		BitsW:  bits.NewWriter(bbits),
		BytesW: fast.NewWriter(bbytes),
	}
}

// writeUint64Compact encodes v as a varint: 7 data bits per byte,
// the MSB set on the final byte. Used only for the container suffix.
func writeUint64Compact(bytesW *fast.Writer, v uint64) {
	for {
		chunk := v & 0x7f
		v >>= 7
		if v == 0 {
			chunk |= 0x80 // stop marker
		}
		bytesW.WriteByte(byte(chunk))
		if v == 0 {
			return
		}
	}
}

// readUint64Compact decodes the varint written by writeUint64Compact.
func readUint64Compact(bytesR *fast.Reader) uint64 {
	v := uint64(0)
	stop := false
	for i := 0; !stop; i++ {
		chunk := uint64(bytesR.ReadByte())
		stop = chunk&0x80 != 0
		word := chunk & 0x7f
		v |= word << (i * 7)

		// the final chunk must carry data, otherwise a shorter encoding exists
		if i > 0 && stop && word == 0 {
			panic(ErrNonCanonicalEncoding)
		}
	}
	return v
}

// writeUint64BitCompact writes v little-endian using as few bytes as
// possible, but at least minSize. Returns the number of bytes written.
func writeUint64BitCompact(bytesW *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		bytesW.WriteByte(byte(v))
		size++
		v >>= 8
	}
	return
}

// readUint64BitCompact reads size bytes and reassembles the integer.
func readUint64BitCompact(bytesR *fast.Reader, size int) uint64 {
	var (
		v    uint64
		last byte
	)
	buf := bytesR.Read(size)
	for i, b := range buf {
		v |= uint64(b) << uint(8*i)
		last = b
	}

	// a zero most significant byte means the value was padded
	if size > 1 && last == 0 {
		panic(ErrNonCanonicalEncoding)
	}

	return v
}

// readU64_bits reads the byte count from the bit stream, then that many
// bytes from the byte stream.
func (r *Reader) readU64_bits(minSize int, bitsForSize int) uint64 {
	size := r.BitsR.Read(bitsForSize)
	size += uint(minSize)
	return readUint64BitCompact(r.BytesR, int(size))
}

// writeU64_bits writes the value bytes, then records the byte count
// (offset from minSize) in the bit stream.
func (w *Writer) writeU64_bits(minSize int, bitsForSize int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(bitsForSize, uint(size-minSize))
}

// U8 writes a single byte. No length prefix is needed.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U16 writes a uint16 in 1-2 bytes (1 size bit).
func (w *Writer) U16(v uint16) {
	w.writeU64_bits(1, 1, uint64(v))
}

func (r *Reader) U16() uint16 {
	return uint16(r.readU64_bits(1, 1))
}

// U32 writes a uint32 in 1-4 bytes (2 size bits).
func (w *Writer) U32(v uint32) {
	w.writeU64_bits(1, 2, uint64(v))
}

func (r *Reader) U32() uint32 {
	return uint32(r.readU64_bits(1, 2))
}

// U64 writes a uint64 in 1-8 bytes (3 size bits).
func (w *Writer) U64(v uint64) {
	w.writeU64_bits(1, 3, v)
}

func (r *Reader) U64() uint64 {
	return r.readU64_bits(1, 3)
}

// VarUint is the encoding used for counts and map sizes. Same wire form as U64.
func (w *Writer) VarUint(v uint64) {
	w.writeU64_bits(1, 3, v)
}

func (r *Reader) VarUint() uint64 {
	return r.readU64_bits(1, 3)
}

// U56 writes an integer of at most 56 bits in 0-7 bytes (3 size bits,
// minSize 0). Used for slice lengths.
func (w *Writer) U56(v uint64) {
	const max = 1<<(8*7) - 1
	if v > max {
		panic("cser: U56 value out of range")
	}
	w.writeU64_bits(0, 3, v)
}

func (r *Reader) U56() uint64 {
	return r.readU64_bits(0, 3)
}

// I64 writes a signed integer as a sign bit plus the absolute value.
func (w *Writer) I64(v int64) {
	w.Bool(v < 0)
	if v < 0 {
		w.U64(uint64(-v))
	} else {
		w.U64(uint64(v))
	}
}

func (r *Reader) I64() int64 {
	neg := r.Bool()
	abs := r.U64()

	// negative zero has a shorter encoding as plain zero
	if neg && abs == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	if neg {
		return -int64(abs)
	}
	return int64(abs)
}

// Bool writes a single bit.
func (w *Writer) Bool(v bool) {
	u8 := uint(0)
	if v {
		u8 = 1
	}
	w.BitsW.Write(1, u8)
}

func (r *Reader) Bool() bool {
	return r.BitsR.Read(1) != 0
}

// FixedBytes writes raw bytes without a length prefix.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes fills v from the byte stream.
func (r *Reader) FixedBytes(v []byte) {
	buf := r.BytesR.Read(len(v))
	copy(v, buf)
}

// SliceBytes writes a length-prefixed byte slice.
func (w *Writer) SliceBytes(v []byte) {
	w.U56(uint64(len(v)))
	w.FixedBytes(v)
}

// SliceBytes reads a length-prefixed byte slice.
// The declared length is validated against maxLen before any allocation.
func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.U56()
	if size > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// String writes a length-prefixed UTF-8 string.
func (w *Writer) String(v string) {
	w.SliceBytes([]byte(v))
}

// String reads a length-prefixed string of at most maxLen bytes.
func (r *Reader) String(maxLen int) string {
	return string(r.SliceBytes(maxLen))
}
