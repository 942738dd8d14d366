package protocol

import (
	"fmt"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// SDKMode (0x90) switches the vehicle in or out of SDK mode.
type SDKMode struct {
	Header
	On    uint8 `json:"on"`
	Flags uint8 `json:"flags"`
}

func (m *SDKMode) Len() int { return SizeSDKMode }

func (m *SDKMode) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "SDKMode", len(src), SizeSDKMode); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.On = r.U8()
	m.Flags = r.U8()
	return r.Err()
}

func (m *SDKMode) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "SDKMode", len(dst), SizeSDKMode); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.On)
	w.PutU8(m.Flags)
	return w.Err()
}

func (m *SDKMode) String() string {
	return fmt.Sprintf("SDKMode{on=%d, flags=0x%02x}", m.On, m.Flags)
}

// SetSpeed (0x24) sets target speed (mm/s) and acceleration (mm/s^2).
type SetSpeed struct {
	Header
	Speed                      int16 `json:"speed_mm_per_sec"`
	Accel                      int16 `json:"accel_mm_per_sec2"`
	RespectRoadPieceSpeedLimit uint8 `json:"respect_road_piece_speed_limit"`
}

func (m *SetSpeed) Len() int { return SizeSetSpeed }

func (m *SetSpeed) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "SetSpeed", len(src), SizeSetSpeed); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.Speed = r.I16()
	m.Accel = r.I16()
	m.RespectRoadPieceSpeedLimit = r.U8()
	return r.Err()
}

func (m *SetSpeed) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "SetSpeed", len(dst), SizeSetSpeed); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutI16(m.Speed)
	w.PutI16(m.Accel)
	w.PutU8(m.RespectRoadPieceSpeedLimit)
	return w.Err()
}

func (m *SetSpeed) String() string {
	return fmt.Sprintf("SetSpeed{speed=%d, accel=%d, respect_limit=%d}",
		m.Speed, m.Accel, m.RespectRoadPieceSpeedLimit)
}

// Turn (0x32) requests a turn or U-turn.
type Turn struct {
	Header
	TurnType VehicleTurn        `json:"type"`
	Trigger  VehicleTurnTrigger `json:"trigger"`
}

func (m *Turn) Len() int { return SizeTurn }

func (m *Turn) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "Turn", len(src), SizeTurn); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.TurnType = VehicleTurnFromByte(r.U8())
	m.Trigger = VehicleTurnTriggerFromByte(r.U8())
	return r.Err()
}

func (m *Turn) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "Turn", len(dst), SizeTurn); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.TurnType.Byte())
	w.PutU8(m.Trigger.Byte())
	return w.Err()
}

func (m *Turn) String() string {
	return fmt.Sprintf("Turn{type=%s, trigger=%s}", m.TurnType, m.Trigger)
}

// SetOffsetFromRoadCentre (0x2c) tells the vehicle where it is relative to
// the road centre, in millimetres.
type SetOffsetFromRoadCentre struct {
	Header
	Offset float32 `json:"offset_mm"`
}

func (m *SetOffsetFromRoadCentre) Len() int { return SizeSetOffsetFromRoadCentre }

func (m *SetOffsetFromRoadCentre) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "SetOffsetFromRoadCentre", len(src), SizeSetOffsetFromRoadCentre); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.Offset = r.F32()
	return r.Err()
}

func (m *SetOffsetFromRoadCentre) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "SetOffsetFromRoadCentre", len(dst), SizeSetOffsetFromRoadCentre); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutF32(m.Offset)
	return w.Err()
}

func (m *SetOffsetFromRoadCentre) String() string {
	return fmt.Sprintf("SetOffsetFromRoadCentre{offset=%.2fmm}", m.Offset)
}

// ChangeLane (0x25) moves the vehicle to a new offset from the road centre.
type ChangeLane struct {
	Header
	HorizontalSpeed uint16  `json:"horizontal_speed_mm_per_sec"`
	HorizontalAccel uint16  `json:"horizontal_accel_mm_per_sec2"`
	Offset          float32 `json:"offset_from_road_centre_mm"`
	HopIntent       uint8   `json:"hop_intent"`
	Tag             uint8   `json:"tag"`
}

func (m *ChangeLane) Len() int { return SizeChangeLane }

func (m *ChangeLane) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "ChangeLane", len(src), SizeChangeLane); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.HorizontalSpeed = r.U16()
	m.HorizontalAccel = r.U16()
	m.Offset = r.F32()
	m.HopIntent = r.U8()
	m.Tag = r.U8()
	return r.Err()
}

func (m *ChangeLane) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "ChangeLane", len(dst), SizeChangeLane); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU16(m.HorizontalSpeed)
	w.PutU16(m.HorizontalAccel)
	w.PutF32(m.Offset)
	w.PutU8(m.HopIntent)
	w.PutU8(m.Tag)
	return w.Err()
}

func (m *ChangeLane) String() string {
	return fmt.Sprintf("ChangeLane{speed=%d, accel=%d, offset=%.2fmm, hop_intent=%d, tag=%d}",
		m.HorizontalSpeed, m.HorizontalAccel, m.Offset, m.HopIntent, m.Tag)
}

// SetLights (0x1d) switches light groups on or off. See Light.Mask.
type SetLights struct {
	Header
	LightMask uint8 `json:"light_mask"`
}

func (m *SetLights) Len() int { return SizeSetLights }

func (m *SetLights) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "SetLights", len(src), SizeSetLights); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.LightMask = r.U8()
	return r.Err()
}

func (m *SetLights) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "SetLights", len(dst), SizeSetLights); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.LightMask)
	return w.Err()
}

func (m *SetLights) String() string {
	return fmt.Sprintf("SetLights{mask=0x%02x}", m.LightMask)
}

// SetConfigParams (0x45) configures supercode parsing and track material.
type SetConfigParams struct {
	Header
	SupercodeParseMask uint8         `json:"super_code_parse_mask"`
	TrackMaterial      TrackMaterial `json:"track_material"`
}

func (m *SetConfigParams) Len() int { return SizeSetConfigParams }

func (m *SetConfigParams) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "SetConfigParams", len(src), SizeSetConfigParams); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.SupercodeParseMask = r.U8()
	m.TrackMaterial = TrackMaterialFromByte(r.U8())
	return r.Err()
}

func (m *SetConfigParams) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "SetConfigParams", len(dst), SizeSetConfigParams); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.SupercodeParseMask)
	w.PutU8(m.TrackMaterial.Byte())
	return w.Err()
}

func (m *SetConfigParams) String() string {
	return fmt.Sprintf("SetConfigParams{supercode_mask=0x%02x, track=%s}", m.SupercodeParseMask, m.TrackMaterial)
}
