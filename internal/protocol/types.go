package protocol

import "fmt"

// Message size constants. Every message starts with a one byte size field
// (the number of bytes that follow it) and a one byte message type.
const (
	MaxMessageSize    = 20
	BaseMessageSize   = 2
	MaxPayloadSize    = MaxMessageSize - BaseMessageSize
	LightConfigSize   = 5
	MaxLightChannels  = 3
	MaxLightIntensity = 14 // peripheral limit, not enforced by the codec
	MaxLightTime      = 11 // peripheral limit, not enforced by the codec
)

// SDKOptionOverrideLocalization is the SDKMode flag that lets the
// controller drive lane changes instead of the vehicle's own localisation.
const SDKOptionOverrideLocalization uint8 = 0x01

// Static encoded sizes, header included.
const (
	SizePing                       = BaseMessageSize
	SizeDisconnect                 = BaseMessageSize
	SizeVersionRequest             = BaseMessageSize
	SizeBatteryLevelRequest        = BaseMessageSize
	SizeCancelLaneChange           = BaseMessageSize
	SizeVehicleDelocalized         = BaseMessageSize
	SizeVersionResponse            = 4
	SizeBatteryLevelResponse       = 4
	SizeSDKMode                    = 4
	SizeSetSpeed                   = 7
	SizeTurn                       = 4
	SizeSetOffsetFromRoadCentre    = 6
	SizeChangeLane                 = 12
	SizePositionUpdate             = 17
	SizeTransitionUpdate           = 18
	SizeIntersectionUpdate         = 13
	SizeOffsetFromRoadCentreUpdate = 7
	SizeSetLights                  = 3
	SizeLightsPattern              = MaxLightChannels*LightConfigSize + 3
	SizeSetConfigParams            = 4
)

// MessageType is the one byte tag that follows the size field. The set of
// tags is open: firmware may send codes this package does not know, and
// those decode as MsgUnknown.
type MessageType uint8

// Message type codes. C2V is controller to vehicle, V2C is vehicle to
// controller.
const (
	MsgUnknown                    MessageType = 0x00
	MsgDisconnect                 MessageType = 0x0d // C2V
	MsgPingRequest                MessageType = 0x16 // C2V
	MsgPingResponse               MessageType = 0x17 // V2C
	MsgVersionRequest             MessageType = 0x18 // C2V
	MsgVersionResponse            MessageType = 0x19 // V2C
	MsgBatteryLevelRequest        MessageType = 0x1a // C2V
	MsgBatteryLevelResponse       MessageType = 0x1b // V2C
	MsgSetLights                  MessageType = 0x1d // C2V
	MsgSetSpeed                   MessageType = 0x24 // C2V
	MsgChangeLane                 MessageType = 0x25 // C2V
	MsgCancelLaneChange           MessageType = 0x26 // C2V
	MsgPositionUpdate             MessageType = 0x27 // V2C
	MsgTransitionUpdate           MessageType = 0x29 // V2C
	MsgIntersectionUpdate         MessageType = 0x2a // V2C
	MsgVehicleDelocalized         MessageType = 0x2b // V2C
	MsgSetOffsetFromRoadCentre    MessageType = 0x2c // C2V
	MsgOffsetFromRoadCentreUpdate MessageType = 0x2d // V2C
	MsgTurn                       MessageType = 0x32 // C2V
	MsgLightsPattern              MessageType = 0x33 // C2V
	MsgSetConfigParams            MessageType = 0x45 // C2V
	MsgSDKMode                    MessageType = 0x90 // C2V
)

var messageTypeNames = map[MessageType]string{
	MsgUnknown:                    "Unknown",
	MsgDisconnect:                 "Disconnect",
	MsgPingRequest:                "PingRequest",
	MsgPingResponse:               "PingResponse",
	MsgVersionRequest:             "VersionRequest",
	MsgVersionResponse:            "VersionResponse",
	MsgBatteryLevelRequest:        "BatteryLevelRequest",
	MsgBatteryLevelResponse:       "BatteryLevelResponse",
	MsgSetLights:                  "SetLights",
	MsgSetSpeed:                   "SetSpeed",
	MsgChangeLane:                 "ChangeLane",
	MsgCancelLaneChange:           "CancelLaneChange",
	MsgPositionUpdate:             "PositionUpdate",
	MsgTransitionUpdate:           "TransitionUpdate",
	MsgIntersectionUpdate:         "IntersectionUpdate",
	MsgVehicleDelocalized:         "VehicleDelocalized",
	MsgSetOffsetFromRoadCentre:    "SetOffsetFromRoadCentre",
	MsgOffsetFromRoadCentreUpdate: "OffsetFromRoadCentreUpdate",
	MsgTurn:                       "Turn",
	MsgLightsPattern:              "LightsPattern",
	MsgSetConfigParams:            "SetConfigParams",
	MsgSDKMode:                    "SDKMode",
}

// MessageTypeFromByte maps a wire byte to a MessageType. Unmapped bytes
// yield MsgUnknown.
func MessageTypeFromByte(b byte) MessageType {
	t := MessageType(b)
	if !t.Known() {
		return MsgUnknown
	}
	return t
}

// Byte returns the wire code for t, or MsgUnknown's code if t is not a
// known type.
func (t MessageType) Byte() byte {
	if !t.Known() {
		return byte(MsgUnknown)
	}
	return byte(t)
}

// Known reports whether t is one of the defined message types.
func (t MessageType) Known() bool {
	_, ok := messageTypeNames[t]
	return ok
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MessageType(0x%02x)", uint8(t))
}

// ParseMessageType looks a type up by name (as returned by String).
func ParseMessageType(name string) (MessageType, bool) {
	for t, n := range messageTypeNames {
		if n == name {
			return t, true
		}
	}
	return MsgUnknown, false
}

// MarshalText renders t by name so JSON output stays readable.
func (t MessageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
