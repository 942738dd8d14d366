package protocol

import (
	"encoding/hex"
	"fmt"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// Envelope is the payload-opaque view of a message. It carries the bare
// commands (ping, disconnect, version and battery requests, cancel lane
// change) and anything whose concrete type is not known.
type Envelope struct {
	Header
	Payload []byte `json:"payload,omitempty"`
}

// Len returns the header plus payload length.
func (m *Envelope) Len() int { return BaseMessageSize + len(m.Payload) }

// DecodeFrom accepts 2 to 20 bytes. The payload is copied; a bare two byte
// message leaves it nil.
func (m *Envelope) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckMax("decode", "Envelope", len(src), MaxMessageSize); err != nil {
		return err
	}
	if len(src) < BaseMessageSize {
		return &wire.SizeError{Op: "decode", Name: "Envelope", Got: len(src), Want: BaseMessageSize}
	}

	r := wire.NewReader(src, e)
	m.read(r)
	m.Payload = nil
	if n := r.Remaining(); n > 0 {
		m.Payload = r.Bytes(n)
	}
	return r.Err()
}

// EncodeTo requires len(dst) == 2+len(Payload).
func (m *Envelope) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "Envelope", len(dst), m.Len()); err != nil {
		return err
	}
	if err := wire.CheckMax("encode", "Envelope", len(dst), MaxMessageSize); err != nil {
		return err
	}

	w := wire.NewWriter(dst, e)
	m.write(w)
	if len(m.Payload) > 0 {
		w.PutBytes(m.Payload)
	}
	return w.Err()
}

func (m *Envelope) String() string {
	if len(m.Payload) == 0 {
		return fmt.Sprintf("%s{size=%d}", m.ID, m.Size)
	}
	return fmt.Sprintf("%s{size=%d, payload=%s}", m.ID, m.Size, hex.EncodeToString(m.Payload))
}
