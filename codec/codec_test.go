package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint8(7)
	w.WriteUint64(1234567890)
	w.WriteString("self-chain")
	w.WriteBytes([]byte{0x01, 0x02, 0x03})
	w.WriteFixed([]byte{0xAA, 0xBB})
	w.WriteOptionalString("present", true)
	w.WriteOptionalString("", false)
	w.WriteSeq(3, func(w *Writer, i int) {
		w.WriteUint64(uint64(i * i))
	})

	r := NewReader(w.Bytes())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(7), u8)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1234567890), u64)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "self-chain", s)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, b)

	fixed, err := r.ReadFixed(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB}, fixed)

	opt1, ok1, err := r.ReadOptionalString()
	require.NoError(t, err)
	require.True(t, ok1)
	require.Equal(t, "present", opt1)

	opt2, ok2, err := r.ReadOptionalString()
	require.NoError(t, err)
	require.False(t, ok2)
	require.Empty(t, opt2)

	var squares []uint64
	n, err := r.ReadSeq(func(r *Reader, i int) error {
		v, err := r.ReadUint64()
		if err != nil {
			return err
		}
		squares = append(squares, v)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []uint64{0, 1, 4}, squares)

	require.Zero(t, r.Remaining())
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadUint64()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReadBytesRejectsOversizedLength(t *testing.T) {
	w := NewWriter(0)
	w.WriteUint64(1 << 40) // claim far more bytes than actually follow
	r := NewReader(w.Bytes())
	_, err := r.ReadBytes()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestOptionalAbsentRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteOptionalBytes(nil, false)
	r := NewReader(w.Bytes())
	b, ok, err := r.ReadOptionalBytes()
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, b)
}
