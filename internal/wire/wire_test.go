package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderFields(t *testing.T) {
	tests := []struct {
		name   string
		endian Endian
		data   []byte
		want16 uint16
		want32 uint32
	}{
		{"big endian", BigEndian, []byte{0x12, 0x34, 0xAB, 0xCD, 0xEF, 0x01}, 0x1234, 0xABCDEF01},
		{"little endian", LittleEndian, []byte{0x12, 0x34, 0xAB, 0xCD, 0xEF, 0x01}, 0x3412, 0x01EFCDAB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data, tt.endian)
			if got := r.U16(); got != tt.want16 {
				t.Errorf("U16() = 0x%04X, want 0x%04X", got, tt.want16)
			}
			if got := r.U32(); got != tt.want32 {
				t.Errorf("U32() = 0x%08X, want 0x%08X", got, tt.want32)
			}
			if r.Remaining() != 0 {
				t.Errorf("Remaining() = %d, want 0", r.Remaining())
			}
			if err := r.Err(); err != nil {
				t.Errorf("Err() = %v, want nil", err)
			}
		})
	}
}

func TestReaderFloat(t *testing.T) {
	r := NewReader([]byte{66, 200, 0, 0}, BigEndian)
	if got := r.F32(); got != 100.0 {
		t.Errorf("F32() = %v, want 100", got)
	}

	r = NewReader([]byte{0, 0, 200, 66}, LittleEndian)
	if got := r.F32(); got != 100.0 {
		t.Errorf("F32() little endian = %v, want 100", got)
	}
}

func TestReaderSigned(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFE}, BigEndian)
	if got := r.I8(); got != -1 {
		t.Errorf("I8() = %d, want -1", got)
	}
	if got := r.I16(); got != -2 {
		t.Errorf("I16() = %d, want -2", got)
	}
}

func TestReaderStickyError(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, BigEndian)
	_ = r.U16()
	_ = r.U32()
	if got := r.U8(); got != 0 {
		t.Errorf("U8() after error = %d, want 0", got)
	}
	if !errors.Is(r.Err(), ErrSizeMismatch) {
		t.Errorf("Err() = %v, want ErrSizeMismatch", r.Err())
	}
	if r.Offset() != 2 {
		t.Errorf("Offset() = %d, want 2", r.Offset())
	}
}

func TestReaderString(t *testing.T) {
	r := NewReader([]byte("Skull\x00\x00"), LittleEndian)
	if got := r.String(7); got != "Skull\x00\x00" {
		t.Errorf("String() = %q, want padding kept", got)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	r = NewReader([]byte{'a', 0xFF, 0xFE, 'b'}, LittleEndian)
	if got := r.String(4); got != "" {
		t.Errorf("String() = %q, want empty on invalid utf-8", got)
	}
	if !errors.Is(r.Err(), ErrInvalidUTF8) {
		t.Errorf("Err() = %v, want ErrInvalidUTF8", r.Err())
	}
	if errors.Is(r.Err(), ErrSizeMismatch) {
		t.Errorf("Err() = %v, should not be a size mismatch", r.Err())
	}
}

func TestReaderBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	r := NewReader(src, BigEndian)
	got := r.Bytes(4)
	src[0] = 0xFF
	if got[0] != 1 {
		t.Errorf("Bytes() aliases the source buffer")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	for _, e := range []Endian{BigEndian, LittleEndian} {
		t.Run(e.String(), func(t *testing.T) {
			buf := make([]byte, 16)
			w := NewWriter(buf, e)
			w.PutU8(0xAB)
			w.PutI8(-5)
			w.PutU16(0x1234)
			w.PutI16(-300)
			w.PutF32(20.5)
			w.PutBytes([]byte{9, 9})
			w.Zero(4)
			if err := w.Err(); err != nil {
				t.Fatalf("Err() = %v", err)
			}
			if w.Offset() != 16 {
				t.Fatalf("Offset() = %d, want 16", w.Offset())
			}

			r := NewReader(buf, e)
			if got := r.U8(); got != 0xAB {
				t.Errorf("U8() = %X", got)
			}
			if got := r.I8(); got != -5 {
				t.Errorf("I8() = %d", got)
			}
			if got := r.U16(); got != 0x1234 {
				t.Errorf("U16() = %X", got)
			}
			if got := r.I16(); got != -300 {
				t.Errorf("I16() = %d", got)
			}
			if got := r.F32(); got != 20.5 {
				t.Errorf("F32() = %v", got)
			}
			if got := r.Bytes(2); !bytes.Equal(got, []byte{9, 9}) {
				t.Errorf("Bytes() = %v", got)
			}
			if got := r.Bytes(4); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
				t.Errorf("zero fill = %v", got)
			}
		})
	}
}

func TestWriterOverflow(t *testing.T) {
	w := NewWriter(make([]byte, 3), BigEndian)
	w.PutU16(1)
	w.PutU16(2)
	if !IsSizeMismatch(w.Err()) {
		t.Errorf("Err() = %v, want size mismatch", w.Err())
	}
}

func TestCheckExact(t *testing.T) {
	if err := CheckExact("decode", "Ping", 2, 2); err != nil {
		t.Errorf("CheckExact(2, 2) = %v", err)
	}

	err := CheckExact("decode", "Ping", 3, 2)
	var se *SizeError
	if !errors.As(err, &se) {
		t.Fatalf("CheckExact(3, 2) = %v, want *SizeError", err)
	}
	if se.Got != 3 || se.Want != 2 || se.Max {
		t.Errorf("SizeError = %+v", se)
	}
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("errors.Is(err, ErrSizeMismatch) = false")
	}
}

func TestCheckMax(t *testing.T) {
	if err := CheckMax("encode", "Message", 20, 20); err != nil {
		t.Errorf("CheckMax(20, 20) = %v", err)
	}
	if err := CheckMax("encode", "Message", 21, 20); !IsSizeMismatch(err) {
		t.Errorf("CheckMax(21, 20) = %v, want size mismatch", err)
	}
}

func TestParseEndian(t *testing.T) {
	tests := []struct {
		in      string
		want    Endian
		wantErr bool
	}{
		{"big", BigEndian, false},
		{"BE", BigEndian, false},
		{"little", LittleEndian, false},
		{" le ", LittleEndian, false},
		{"middle", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseEndian(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEndian(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEndian(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEndianText(t *testing.T) {
	var e Endian
	if err := e.UnmarshalText([]byte("little")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	text, _ := e.MarshalText()
	if string(text) != "little" {
		t.Errorf("MarshalText() = %q, want little", text)
	}
}
