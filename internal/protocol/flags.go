package protocol

import (
	"fmt"
	"strings"
)

// ParsingFlags is the road code parser state carried in PositionUpdate.
type ParsingFlags uint8

const (
	ParseFlagsMaskNumBits        ParsingFlags = 0x0f
	ParseFlagsMaskInvertedColor  ParsingFlags = 0x80
	ParseFlagsMaskReverseParsing ParsingFlags = 0x40
	ParseFlagsMaskReverseDriving ParsingFlags = 0x20
)

// NumBits returns the number of code bits read from the last location code.
func (f ParsingFlags) NumBits() uint8 { return uint8(f & ParseFlagsMaskNumBits) }

func (f ParsingFlags) InvertedColor() bool  { return f&ParseFlagsMaskInvertedColor != 0 }
func (f ParsingFlags) ReverseParsing() bool { return f&ParseFlagsMaskReverseParsing != 0 }

// ReverseDriving reports whether the vehicle is driving against the
// direction of the track.
func (f ParsingFlags) ReverseDriving() bool { return f&ParseFlagsMaskReverseDriving != 0 }

func (f ParsingFlags) String() string {
	s := []string{fmt.Sprintf("bits=%d", f.NumBits())}
	if f.InvertedColor() {
		s = append(s, "inverted")
	}
	if f.ReverseParsing() {
		s = append(s, "reverse-parsing")
	}
	if f.ReverseDriving() {
		s = append(s, "reverse-driving")
	}
	return strings.Join(s, "|")
}
