package protocol

import (
	"fmt"
	"strings"
)

// Wire enums. Each one has a FromByte function that never fails and a
// Byte method that falls back to the enum's default for values outside the
// defined range, so unknown codes from newer firmware never abort a decode.

// VehicleTurn is the manoeuvre requested by a Turn command.
type VehicleTurn uint8

const (
	TurnNone VehicleTurn = iota
	TurnLeft
	TurnRight
	TurnUTurn
	TurnUTurnJump
)

func VehicleTurnFromByte(b byte) VehicleTurn {
	if b > uint8(TurnUTurnJump) {
		return TurnNone
	}
	return VehicleTurn(b)
}

func (t VehicleTurn) Byte() byte { return byte(VehicleTurnFromByte(byte(t))) }

func (t VehicleTurn) String() string {
	switch t {
	case TurnNone:
		return "None"
	case TurnLeft:
		return "Left"
	case TurnRight:
		return "Right"
	case TurnUTurn:
		return "UTurn"
	case TurnUTurnJump:
		return "UTurnJump"
	default:
		return fmt.Sprintf("VehicleTurn(%d)", uint8(t))
	}
}

// VehicleTurnTrigger says when a turn is executed.
type VehicleTurnTrigger uint8

const (
	TriggerImmediate VehicleTurnTrigger = iota
	TriggerIntersection
)

func VehicleTurnTriggerFromByte(b byte) VehicleTurnTrigger {
	if b > uint8(TriggerIntersection) {
		return TriggerImmediate
	}
	return VehicleTurnTrigger(b)
}

func (t VehicleTurnTrigger) Byte() byte { return byte(VehicleTurnTriggerFromByte(byte(t))) }

func (t VehicleTurnTrigger) String() string {
	switch t {
	case TriggerImmediate:
		return "Immediate"
	case TriggerIntersection:
		return "Intersection"
	default:
		return fmt.Sprintf("VehicleTurnTrigger(%d)", uint8(t))
	}
}

// IntersectionCode identifies the intersection marker a vehicle crossed.
type IntersectionCode uint8

const (
	IntersectionNone IntersectionCode = iota
	IntersectionEntryFirst
	IntersectionExitFirst
	IntersectionEntrySecond
	IntersectionExitSecond
)

func IntersectionCodeFromByte(b byte) IntersectionCode {
	if b > uint8(IntersectionExitSecond) {
		return IntersectionNone
	}
	return IntersectionCode(b)
}

func (c IntersectionCode) Byte() byte { return byte(IntersectionCodeFromByte(byte(c))) }

func (c IntersectionCode) String() string {
	switch c {
	case IntersectionNone:
		return "None"
	case IntersectionEntryFirst:
		return "EntryFirst"
	case IntersectionExitFirst:
		return "ExitFirst"
	case IntersectionEntrySecond:
		return "EntrySecond"
	case IntersectionExitSecond:
		return "ExitSecond"
	default:
		return fmt.Sprintf("IntersectionCode(%d)", uint8(c))
	}
}

// LightChannel selects an LED on the vehicle. ChannelCount is a sentinel
// the firmware also accepts on the wire.
type LightChannel uint8

const (
	ChannelRed LightChannel = iota
	ChannelTail
	ChannelBlue
	ChannelGreen
	ChannelFrontL
	ChannelFrontR
	ChannelCount
)

// LightChannelFromByte falls back to ChannelTail.
func LightChannelFromByte(b byte) LightChannel {
	if b > uint8(ChannelCount) {
		return ChannelTail
	}
	return LightChannel(b)
}

func (c LightChannel) Byte() byte { return byte(LightChannelFromByte(byte(c))) }

func (c LightChannel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelTail:
		return "Tail"
	case ChannelBlue:
		return "Blue"
	case ChannelGreen:
		return "Green"
	case ChannelFrontL:
		return "FrontL"
	case ChannelFrontR:
		return "FrontR"
	case ChannelCount:
		return "Count"
	default:
		return fmt.Sprintf("LightChannel(%d)", uint8(c))
	}
}

// LightEffect is the animation applied to a light channel.
type LightEffect uint8

const (
	EffectSteady LightEffect = iota // intensity fixed at start
	EffectFade                      // start to end
	EffectThrob                     // start to end and back
	EffectFlash                     // on between start and end inclusive
	EffectRandom                    // erratic, ignores start and end
	EffectCount
)

func LightEffectFromByte(b byte) LightEffect {
	if b > uint8(EffectCount) {
		return EffectSteady
	}
	return LightEffect(b)
}

func (e LightEffect) Byte() byte { return byte(LightEffectFromByte(byte(e))) }

func (e LightEffect) String() string {
	switch e {
	case EffectSteady:
		return "Steady"
	case EffectFade:
		return "Fade"
	case EffectThrob:
		return "Throb"
	case EffectFlash:
		return "Flash"
	case EffectRandom:
		return "Random"
	case EffectCount:
		return "Count"
	default:
		return fmt.Sprintf("LightEffect(%d)", uint8(e))
	}
}

// TrackMaterial tells the vehicle what surface it is driving on.
type TrackMaterial uint8

const (
	TrackPlastic TrackMaterial = iota
	TrackVinyl
)

func TrackMaterialFromByte(b byte) TrackMaterial {
	if b > uint8(TrackVinyl) {
		return TrackPlastic
	}
	return TrackMaterial(b)
}

func (m TrackMaterial) Byte() byte { return byte(TrackMaterialFromByte(byte(m))) }

func (m TrackMaterial) String() string {
	switch m {
	case TrackPlastic:
		return "Plastic"
	case TrackVinyl:
		return "Vinyl"
	default:
		return fmt.Sprintf("TrackMaterial(%d)", uint8(m))
	}
}

// Light identifies a lamp group for SetLights masks. The low nibble of a
// mask selects which lights change, the high nibble their new state.
type Light uint8

const (
	LightHeadlights Light = iota
	LightBrakeLights
	LightFrontLights
	LightEngine
)

// Mask returns the SetLights mask that switches l on or off.
func (l Light) Mask(on bool) uint8 {
	m := uint8(1) << l
	if on {
		m |= m << 4
	}
	return m
}

func (l Light) String() string {
	switch l {
	case LightHeadlights:
		return "Headlights"
	case LightBrakeLights:
		return "BrakeLights"
	case LightFrontLights:
		return "FrontLights"
	case LightEngine:
		return "Engine"
	default:
		return fmt.Sprintf("Light(%d)", uint8(l))
	}
}

// Supercode parse masks for SetConfigParams.
const (
	SupercodeNone      uint8 = 0
	SupercodeBoostJump uint8 = 1
	SupercodeAll             = SupercodeBoostJump
)

type wireEnum interface {
	~uint8
	String() string
}

// parseEnum matches s case-insensitively against the names of 0..last.
func parseEnum[T wireEnum](kind, s string, last T) (T, error) {
	for v := T(0); v <= last; v++ {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func ParseVehicleTurn(s string) (VehicleTurn, error) {
	return parseEnum("turn", s, TurnUTurnJump)
}

func ParseVehicleTurnTrigger(s string) (VehicleTurnTrigger, error) {
	return parseEnum("turn trigger", s, TriggerIntersection)
}

func ParseLightChannel(s string) (LightChannel, error) {
	return parseEnum("light channel", s, ChannelCount)
}

func ParseLightEffect(s string) (LightEffect, error) {
	return parseEnum("light effect", s, EffectCount)
}

func ParseTrackMaterial(s string) (TrackMaterial, error) {
	return parseEnum("track material", s, TrackVinyl)
}

func (t VehicleTurn) MarshalText() ([]byte, error)        { return []byte(t.String()), nil }
func (t VehicleTurnTrigger) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
func (c IntersectionCode) MarshalText() ([]byte, error)   { return []byte(c.String()), nil }
func (c LightChannel) MarshalText() ([]byte, error)       { return []byte(c.String()), nil }
func (e LightEffect) MarshalText() ([]byte, error)        { return []byte(e.String()), nil }
func (m TrackMaterial) MarshalText() ([]byte, error)      { return []byte(m.String()), nil }
