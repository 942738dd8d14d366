package protocol

import (
	"fmt"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// VersionResponse (0x19) reports the vehicle firmware version.
type VersionResponse struct {
	Header
	Version uint16 `json:"version"`
}

func (m *VersionResponse) Len() int { return SizeVersionResponse }

func (m *VersionResponse) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "VersionResponse", len(src), SizeVersionResponse); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.Version = r.U16()
	return r.Err()
}

func (m *VersionResponse) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "VersionResponse", len(dst), SizeVersionResponse); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU16(m.Version)
	return w.Err()
}

func (m *VersionResponse) String() string {
	return fmt.Sprintf("VersionResponse{version=0x%04x}", m.Version)
}

// BatteryLevelResponse (0x1b) reports the battery level in millivolts.
type BatteryLevelResponse struct {
	Header
	BatteryLevel uint16 `json:"battery_level"`
}

func (m *BatteryLevelResponse) Len() int { return SizeBatteryLevelResponse }

func (m *BatteryLevelResponse) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "BatteryLevelResponse", len(src), SizeBatteryLevelResponse); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.BatteryLevel = r.U16()
	return r.Err()
}

func (m *BatteryLevelResponse) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "BatteryLevelResponse", len(dst), SizeBatteryLevelResponse); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU16(m.BatteryLevel)
	return w.Err()
}

func (m *BatteryLevelResponse) String() string {
	return fmt.Sprintf("BatteryLevelResponse{level=%d}", m.BatteryLevel)
}
