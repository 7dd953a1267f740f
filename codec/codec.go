// Copyright (C) 2020-2026, Self Chain Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec implements the byte-exact canonical encoding every
// signable or hashable consensus structure is built from. Unlike the
// general-purpose JSON codec this package replaces, the wire format here
// is fixed: integers are little-endian, strings and variable sequences
// are length-prefixed, and optional fields carry an explicit presence
// tag. Two conforming implementations (in any language) that encode the
// same logical value MUST produce byte-identical output — that property
// is what lets every validator re-derive an identical efficiency_score
// and an identical signature domain.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when a Reader runs out of bytes mid-field.
var ErrTruncated = errors.New("codec: truncated input")

// Writer accumulates a canonical byte encoding.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer, optionally pre-sized.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteDomain appends a raw ASCII domain prefix with no length tag.
// Domain prefixes are not part of the decodable structure; they only
// separate signature/hash namespaces.
func (w *Writer) WriteDomain(domain string) {
	w.buf = append(w.buf, domain...)
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint64 appends v as 8 little-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteBytes appends a variable-length byte string as a u64 LE length
// prefix followed by the raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUint64(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteFixed appends b verbatim with no length prefix; the caller is
// responsible for b having the agreed-upon fixed size.
func (w *Writer) WriteFixed(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteString appends s as a u64 LE length prefix followed by its UTF-8
// bytes.
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// WriteOptionalBytes writes the one-byte presence tag (0x00 absent,
// 0x01 present) followed by the body when present.
func (w *Writer) WriteOptionalBytes(b []byte, present bool) {
	if !present {
		w.WriteUint8(0x00)
		return
	}
	w.WriteUint8(0x01)
	w.WriteBytes(b)
}

// WriteOptionalString is WriteOptionalBytes for strings.
func (w *Writer) WriteOptionalString(s string, present bool) {
	w.WriteOptionalBytes([]byte(s), present)
}

// WriteSeq writes a variable-length sequence: a u64 LE element count
// followed by the concatenation of each element's encoding, produced by
// calling encode(w, i) for i in [0, n).
func (w *Writer) WriteSeq(n int, encode func(w *Writer, i int)) {
	w.WriteUint64(uint64(n))
	for i := 0; i < n; i++ {
		encode(w, i)
	}
}

// Reader consumes a canonical byte encoding produced by Writer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint64 reads 8 little-endian bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadBytes reads a u64 LE length prefix followed by that many bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, fmt.Errorf("codec: length %d exceeds remaining %d: %w", n, r.Remaining(), ErrTruncated)
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadFixed reads exactly n raw bytes.
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadOptionalBytes reads the presence tag and, if set, the body.
func (r *Reader) ReadOptionalBytes() ([]byte, bool, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, false, err
	}
	if tag == 0x00 {
		return nil, false, nil
	}
	b, err := r.ReadBytes()
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// ReadOptionalString is ReadOptionalBytes for strings.
func (r *Reader) ReadOptionalString() (string, bool, error) {
	b, ok, err := r.ReadOptionalBytes()
	if err != nil || !ok {
		return "", ok, err
	}
	return string(b), true, nil
}

// ReadSeq reads a u64 LE element count and invokes decode once per
// element; decode is responsible for advancing r.
func (r *Reader) ReadSeq(decode func(r *Reader, i int) error) (int, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	for i := uint64(0); i < n; i++ {
		if err := decode(r, int(i)); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}
