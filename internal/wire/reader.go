package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Reader reads fixed-width fields from a buffer in order.
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	err   error
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte, e Endian) *Reader {
	return &Reader{buf: buf, order: e.ByteOrder()}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// next returns the next n bytes, or nil after recording an error.
func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = &SizeError{Op: "read", Name: "field", Got: len(r.buf) - r.off, Want: n}
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) I8() int8 {
	return int8(r.U8())
}

func (r *Reader) U16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) U32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// F32 reads an IEEE-754 single precision float.
func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Fixed copies the next len(dst) bytes into dst.
func (r *Reader) Fixed(dst []byte) {
	b := r.next(len(dst))
	if b == nil {
		return
	}
	copy(dst, b)
}

// String reads exactly n bytes as a string. The bytes are kept as-is,
// padding included, and must be valid UTF-8.
func (r *Reader) String(n int) string {
	b := r.next(n)
	if b == nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.err = fmt.Errorf("read string at offset %d: %w", r.off-n, ErrInvalidUTF8)
		return ""
	}
	return string(b)
}
