package advertisement

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// Static packet sizes.
const (
	LocalNameSize = 21
	MfgDataSize   = 8
	ServiceIDSize = 16
	PacketSize    = 2 + MfgDataSize + LocalNameSize + ServiceIDSize

	nameSize     = 13 // 12 characters + NUL
	reservedSize = 5

	mfgOffset  = 2
	nameOffset = mfgOffset + MfgDataSize
	svcOffset  = nameOffset + LocalNameSize
)

// Vehicle state bits carried in LocalName.State.
const (
	StateFullBattery uint8 = 1 << 4
	StateLowBattery  uint8 = 1 << 5
	StateOnCharger   uint8 = 1 << 6
)

// LocalName is the 21 byte local name record.
type LocalName struct {
	State    uint8              `json:"state"`
	Version  uint16             `json:"version"`
	Reserved [reservedSize]byte `json:"reserved"`
	Name     string             `json:"name"` // raw 13 bytes, padding included
}

// DecodeLocalName decodes exactly LocalNameSize bytes. A name that is not
// valid UTF-8 fails with wire.ErrInvalidUTF8.
func DecodeLocalName(data []byte, e wire.Endian) (*LocalName, error) {
	if err := wire.CheckExact("decode", "LocalName", len(data), LocalNameSize); err != nil {
		return nil, err
	}
	r := wire.NewReader(data, e)
	ln := &LocalName{}
	ln.State = r.U8()
	ln.Version = r.U16()
	r.Fixed(ln.Reserved[:])
	ln.Name = r.String(nameSize)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ln, nil
}

// DisplayName returns Name without trailing NUL and space padding.
func (ln *LocalName) DisplayName() string {
	return strings.TrimRight(ln.Name, "\x00 ")
}

func (ln *LocalName) FullBattery() bool { return ln.State&StateFullBattery != 0 }
func (ln *LocalName) LowBattery() bool  { return ln.State&StateLowBattery != 0 }
func (ln *LocalName) OnCharger() bool   { return ln.State&StateOnCharger != 0 }

func (ln *LocalName) String() string {
	return fmt.Sprintf("LocalName{name=%q, version=0x%04x, state=0x%02x}", ln.DisplayName(), ln.Version, ln.State)
}

// MfgData is the 8 byte manufacturer data record.
type MfgData struct {
	Identifier uint32 `json:"identifier"`
	ModelID    uint8  `json:"model_id"`
	Reserved   uint8  `json:"reserved"`
	ProductID  uint16 `json:"product_id"`
}

// DecodeMfgData decodes exactly MfgDataSize bytes.
func DecodeMfgData(data []byte, e wire.Endian) (*MfgData, error) {
	if err := wire.CheckExact("decode", "MfgData", len(data), MfgDataSize); err != nil {
		return nil, err
	}
	r := wire.NewReader(data, e)
	md := &MfgData{
		Identifier: r.U32(),
		ModelID:    r.U8(),
		Reserved:   r.U8(),
		ProductID:  r.U16(),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return md, nil
}

func (md *MfgData) String() string {
	return fmt.Sprintf("MfgData{id=0x%08x, model=%d, product=0x%04x}", md.Identifier, md.ModelID, md.ProductID)
}

// Packet is a complete 47 byte vehicle advertisement.
type Packet struct {
	Flags     uint8     `json:"flags"`
	TxPower   uint8     `json:"tx_power"`
	MfgData   MfgData   `json:"mfg_data"`
	LocalName LocalName `json:"local_name"`
	ServiceID uuid.UUID `json:"service_id"` // stored as received
}

// Decode decodes exactly PacketSize bytes: flags, tx power, manufacturer
// data at 2..10, local name at 10..31 and the service id at 31..47.
func Decode(data []byte, e wire.Endian) (*Packet, error) {
	if err := wire.CheckExact("decode", "Advertisement", len(data), PacketSize); err != nil {
		return nil, err
	}

	p := &Packet{Flags: data[0], TxPower: data[1]}

	md, err := DecodeMfgData(data[mfgOffset:nameOffset], e)
	if err != nil {
		return nil, fmt.Errorf("manufacturer data: %w", err)
	}
	p.MfgData = *md

	ln, err := DecodeLocalName(data[nameOffset:svcOffset], e)
	if err != nil {
		return nil, fmt.Errorf("local name: %w", err)
	}
	p.LocalName = *ln

	copy(p.ServiceID[:], data[svcOffset:])
	return p, nil
}

// Name returns the vehicle's display name.
func (p *Packet) Name() string { return p.LocalName.DisplayName() }

func (p *Packet) String() string {
	return fmt.Sprintf("Advertisement{%s, %s, tx_power=%d, service=%s}",
		p.LocalName.String(), p.MfgData.String(), p.TxPower, p.ServiceID)
}
