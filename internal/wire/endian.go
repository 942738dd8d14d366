package wire

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Endian selects the byte order applied to multi-byte fields.
type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

// ByteOrder returns the encoding/binary order for e. Unknown values map to
// little-endian, the order the vehicles use on the air.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("Endian(%d)", int(e))
	}
}

// ParseEndian accepts "big", "be", "little" or "le" (any case).
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "big", "be", "big-endian":
		return BigEndian, nil
	case "little", "le", "little-endian":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("unknown byte order %q (want big or little)", s)
	}
}

// MarshalText implements encoding.TextMarshaler so Endian can live in
// YAML and JSON documents.
func (e Endian) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Endian) UnmarshalText(text []byte) error {
	parsed, err := ParseEndian(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
