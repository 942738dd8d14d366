package wire

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is the single error kind raised by the codecs: a buffer
// whose length does not match (or does not fit within) the size required
// by the operation.
var ErrSizeMismatch = errors.New("size mismatch")

// ErrInvalidUTF8 is returned by string reads whose bytes are not valid
// UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// SizeError describes a rejected buffer.
type SizeError struct {
	Op   string // "decode", "encode", "read", "write"
	Name string // message or field being processed
	Got  int    // buffer length presented
	Want int    // required length, or the bound when Max is set
	Max  bool   // Want is an upper bound rather than an exact size
}

func (e *SizeError) Error() string {
	if e.Max {
		return fmt.Sprintf("%s %s: %v: got %d bytes, max %d", e.Op, e.Name, ErrSizeMismatch, e.Got, e.Want)
	}
	return fmt.Sprintf("%s %s: %v: got %d bytes, want %d", e.Op, e.Name, ErrSizeMismatch, e.Got, e.Want)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// CheckExact returns a *SizeError unless got == want.
func CheckExact(op, name string, got, want int) error {
	if got != want {
		return &SizeError{Op: op, Name: name, Got: got, Want: want}
	}
	return nil
}

// CheckMax returns a *SizeError if got exceeds max.
func CheckMax(op, name string, got, max int) error {
	if got > max {
		return &SizeError{Op: op, Name: name, Got: got, Want: max, Max: true}
	}
	return nil
}

// IsSizeMismatch reports whether err is, or wraps, a size mismatch.
func IsSizeMismatch(err error) bool {
	return errors.Is(err, ErrSizeMismatch)
}
