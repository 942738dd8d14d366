package protocol

import (
	"fmt"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// ErrSizeMismatch is returned (wrapped in a *wire.SizeError) whenever a
// buffer does not have the exact length a message requires.
var ErrSizeMismatch = wire.ErrSizeMismatch

// Endian aliases so callers of this package rarely need to import wire.
type Endian = wire.Endian

const (
	BigEndian    = wire.BigEndian
	LittleEndian = wire.LittleEndian
)

// Header holds the two leading fields shared by every message.
type Header struct {
	Size uint8       `json:"size"`   // encoded length minus one
	ID   MessageType `json:"msg_id"` // type tag
}

func newHeader(size int, id MessageType) Header {
	return Header{Size: uint8(size - 1), ID: id}
}

// Type returns the message type tag.
func (h Header) Type() MessageType { return h.ID }

func (h *Header) read(r *wire.Reader) {
	h.Size = r.U8()
	h.ID = MessageTypeFromByte(r.U8())
}

func (h Header) write(w *wire.Writer) {
	w.PutU8(h.Size)
	w.PutU8(h.ID.Byte())
}

// Message is implemented by every message codec in this package.
//
// EncodeTo requires len(dst) == Len() and DecodeFrom requires
// len(src) == Len(); anything else fails with ErrSizeMismatch before a
// single byte is touched.
type Message interface {
	Type() MessageType
	Len() int
	EncodeTo(dst []byte, e wire.Endian) error
	DecodeFrom(src []byte, e wire.Endian) error
	String() string
}

// Encode allocates a buffer of exactly m.Len() bytes and encodes m into it.
func Encode(m Message, e wire.Endian) ([]byte, error) {
	buf := make([]byte, m.Len())
	if err := m.EncodeTo(buf, e); err != nil {
		return nil, err
	}
	return buf, nil
}

// newMessage returns an empty codec for tags with a fixed layout, or nil
// for bare and unrecognised tags.
func newMessage(t MessageType) Message {
	switch t {
	case MsgVersionResponse:
		return &VersionResponse{}
	case MsgBatteryLevelResponse:
		return &BatteryLevelResponse{}
	case MsgSDKMode:
		return &SDKMode{}
	case MsgSetSpeed:
		return &SetSpeed{}
	case MsgTurn:
		return &Turn{}
	case MsgSetOffsetFromRoadCentre:
		return &SetOffsetFromRoadCentre{}
	case MsgChangeLane:
		return &ChangeLane{}
	case MsgPositionUpdate:
		return &PositionUpdate{}
	case MsgTransitionUpdate:
		return &TransitionUpdate{}
	case MsgIntersectionUpdate:
		return &IntersectionUpdate{}
	case MsgOffsetFromRoadCentreUpdate:
		return &OffsetFromRoadCentreUpdate{}
	case MsgSetLights:
		return &SetLights{}
	case MsgLightsPattern:
		return &LightsPattern{}
	case MsgSetConfigParams:
		return &SetConfigParams{}
	default:
		return nil
	}
}

// DecodeMessage reads the envelope of data and decodes the concrete
// message its tag names. Tags without a fixed layout (ping, disconnect,
// requests, delocalized, unknown codes) are returned as *Envelope.
func DecodeMessage(data []byte, e wire.Endian) (Message, error) {
	env := &Envelope{}
	if err := env.DecodeFrom(data, e); err != nil {
		return nil, err
	}

	m := newMessage(env.ID)
	if m == nil {
		return env, nil
	}
	if err := m.DecodeFrom(data, e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.ID, err)
	}
	return m, nil
}
