package wire

import (
	"encoding/binary"
	"math"
)

// Writer writes fixed-width fields into a caller-owned buffer in order.
type Writer struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	err   error
}

// NewWriter returns a Writer positioned at the start of buf.
func NewWriter(buf []byte, e Endian) *Writer {
	return &Writer{buf: buf, order: e.ByteOrder()}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int { return w.off }

func (w *Writer) next(n int) []byte {
	if w.err != nil {
		return nil
	}
	if n < 0 || w.off+n > len(w.buf) {
		w.err = &SizeError{Op: "write", Name: "field", Got: len(w.buf) - w.off, Want: n}
		return nil
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b
}

func (w *Writer) PutU8(v uint8) {
	if b := w.next(1); b != nil {
		b[0] = v
	}
}

func (w *Writer) PutI8(v int8) {
	w.PutU8(uint8(v))
}

func (w *Writer) PutU16(v uint16) {
	if b := w.next(2); b != nil {
		w.order.PutUint16(b, v)
	}
}

func (w *Writer) PutI16(v int16) {
	w.PutU16(uint16(v))
}

func (w *Writer) PutU32(v uint32) {
	if b := w.next(4); b != nil {
		w.order.PutUint32(b, v)
	}
}

// PutF32 writes an IEEE-754 single precision float.
func (w *Writer) PutF32(v float32) {
	w.PutU32(math.Float32bits(v))
}

func (w *Writer) PutBytes(p []byte) {
	if b := w.next(len(p)); b != nil {
		copy(b, p)
	}
}

// Zero writes n zero bytes.
func (w *Writer) Zero(n int) {
	if b := w.next(n); b != nil {
		clear(b)
	}
}
