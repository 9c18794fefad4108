package cser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecord struct {
	id    uint64
	flag  bool
	label string
	body  []byte
}

func (s *sampleRecord) marshalCSER(w *Writer) error {
	w.U64(s.id)
	w.Bool(s.flag)
	w.String(s.label)
	w.SliceBytes(s.body)
	return nil
}

func (s *sampleRecord) unmarshalCSER(r *Reader) error {
	s.id = r.U64()
	s.flag = r.Bool()
	s.label = r.String(MaxAlloc)
	s.body = r.SliceBytes(MaxAlloc)
	return nil
}

func TestBinaryAdapter_RoundTrip(t *testing.T) {
	samples := []sampleRecord{
		{},
		{id: 1, flag: true, label: "price", body: []byte{0xab}},
		{id: 0xFFFFFFFFFFFFFFFF, flag: false, label: "", body: make([]byte, 300)},
	}

	for i, in := range samples {
		raw, err := MarshalBinaryAdapter(in.marshalCSER)
		require.NoError(t, err, "sample %d", i)

		out := sampleRecord{}
		err = UnmarshalBinaryAdapter(raw, out.unmarshalCSER)
		require.NoError(t, err, "sample %d", i)
		assert.Equal(t, in, out, "sample %d", i)
	}
}

func TestBinaryAdapter_Truncated(t *testing.T) {
	in := sampleRecord{id: 42, flag: true, label: "abc", body: []byte{1, 2, 3, 4}}
	raw, err := MarshalBinaryAdapter(in.marshalCSER)
	require.NoError(t, err)

	for cut := 1; cut < len(raw); cut++ {
		out := sampleRecord{}
		err := UnmarshalBinaryAdapter(raw[:cut], out.unmarshalCSER)
		if err == nil {
			// a shorter prefix may happen to parse, but never to the original
			assert.NotEqual(t, in, out, "truncation at %d", cut)
		}
	}
}

func TestBinaryAdapter_TrailingGarbage(t *testing.T) {
	in := sampleRecord{id: 7, label: "x"}
	raw, err := MarshalBinaryAdapter(in.marshalCSER)
	require.NoError(t, err)

	out := sampleRecord{}
	err = UnmarshalBinaryAdapter(append([]byte{0xee}, raw...), out.unmarshalCSER)
	assert.Error(t, err, "prepended garbage must not decode")
}

func TestBinaryAdapter_EmptyInput(t *testing.T) {
	out := sampleRecord{}
	err := UnmarshalBinaryAdapter(nil, out.unmarshalCSER)
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}
