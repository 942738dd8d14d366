package protocol

// Message constructors. These fill in the size and type tag from the
// message's static size constant; callers supply only the variable fields.
// No range checks are applied (MaxLightIntensity and MaxLightTime are
// enforced by the vehicle, not here).

func newBare(t MessageType) *Envelope {
	return &Envelope{Header: newHeader(BaseMessageSize, t)}
}

// NewPing builds a ping request.
//
// Wire format (2 bytes):
//
//	[0] 0x01  size
//	[1] 0x16  MsgPingRequest
func NewPing() *Envelope { return newBare(MsgPingRequest) }

// NewPingResponse builds the vehicle's reply to a ping.
func NewPingResponse() *Envelope { return newBare(MsgPingResponse) }

// NewDisconnect asks the vehicle to drop the link.
func NewDisconnect() *Envelope { return newBare(MsgDisconnect) }

// NewVersionRequest asks for the firmware version (answered by VersionResponse).
func NewVersionRequest() *Envelope { return newBare(MsgVersionRequest) }

// NewBatteryLevelRequest asks for the battery level.
func NewBatteryLevelRequest() *Envelope { return newBare(MsgBatteryLevelRequest) }

func NewCancelLaneChange() *Envelope { return newBare(MsgCancelLaneChange) }

// NewDelocalized builds the notification a vehicle sends when it loses
// track of its position.
func NewDelocalized() *Envelope { return newBare(MsgVehicleDelocalized) }

// NewVersionResponse builds a version reply.
func NewVersionResponse(version uint16) *VersionResponse {
	return &VersionResponse{Header: newHeader(SizeVersionResponse, MsgVersionResponse), Version: version}
}

// NewBatteryLevelResponse builds a battery level reply.
func NewBatteryLevelResponse(level uint16) *BatteryLevelResponse {
	return &BatteryLevelResponse{Header: newHeader(SizeBatteryLevelResponse, MsgBatteryLevelResponse), BatteryLevel: level}
}

// NewSDKMode builds an SDK mode command.
//
// Wire format (4 bytes):
//
//	[0] 0x03  size
//	[1] 0x90  MsgSDKMode
//	[2] on    1 to enter SDK mode, 0 to leave
//	[3] flags SDKOption* bits
//
// Example:
//
//	msg := NewSDKMode(1, SDKOptionOverrideLocalization)
func NewSDKMode(on, flags uint8) *SDKMode {
	return &SDKMode{Header: newHeader(SizeSDKMode, MsgSDKMode), On: on, Flags: flags}
}

// NewSetSpeed builds a speed command. The road piece speed limit flag is
// always 0.
//
// Wire format (7 bytes):
//
//	[0]   0x06   size
//	[1]   0x24   MsgSetSpeed
//	[2-3] speed  mm/s (int16)
//	[4-5] accel  mm/s^2 (int16)
//	[6]   0x00   respect road piece speed limit
func NewSetSpeed(speed, accel int16) *SetSpeed {
	return &SetSpeed{Header: newHeader(SizeSetSpeed, MsgSetSpeed), Speed: speed, Accel: accel}
}

// NewSetOffsetFromRoadCentre builds an offset calibration command.
func NewSetOffsetFromRoadCentre(offset float32) *SetOffsetFromRoadCentre {
	return &SetOffsetFromRoadCentre{Header: newHeader(SizeSetOffsetFromRoadCentre, MsgSetOffsetFromRoadCentre), Offset: offset}
}

// NewChangeLane builds a lane change command. Hop intent and tag are always
// 0.
//
// Wire format (12 bytes):
//
//	[0]    0x0b    size
//	[1]    0x25    MsgChangeLane
//	[2-3]  speed   horizontal mm/s (uint16)
//	[4-5]  accel   horizontal mm/s^2 (uint16)
//	[6-9]  offset  target mm from road centre (float32)
//	[10]   0x00    hop intent
//	[11]   0x00    tag
func NewChangeLane(speed, accel uint16, offset float32) *ChangeLane {
	return &ChangeLane{
		Header:          newHeader(SizeChangeLane, MsgChangeLane),
		HorizontalSpeed: speed,
		HorizontalAccel: accel,
		Offset:          offset,
	}
}

// NewSetLights builds a light mask command. Use Light.Mask to build masks.
func NewSetLights(mask uint8) *SetLights {
	return &SetLights{Header: newHeader(SizeSetLights, MsgSetLights), LightMask: mask}
}

// NewLightConfig builds one channel entry. cyclesPerMin is converted to
// cycles per 10 seconds (truncating) here; the result is never recomputed.
func NewLightConfig(channel LightChannel, effect LightEffect, start, end uint8, cyclesPerMin uint16) LightConfig {
	return LightConfig{
		Channel:        channel,
		Effect:         effect,
		Start:          start,
		End:            end,
		CyclesPer10Sec: uint8(cyclesPerMin / 6),
	}
}

// NewLightsPattern builds a pattern holding one channel. Use Append to add
// up to two more.
//
// Wire format (18 bytes):
//
//	[0]     0x11   size
//	[1]     0x33   MsgLightsPattern
//	[2]     count  channels in use
//	[3-7]   slot 0 channel, effect, start, end, cycles per 10s
//	[8-12]  slot 1 (zero when unused)
//	[13-17] slot 2 (zero when unused)
func NewLightsPattern(channel LightChannel, effect LightEffect, start, end uint8, cyclesPerMin uint16) *LightsPattern {
	c := NewLightConfig(channel, effect, start, end, cyclesPerMin)
	return &LightsPattern{
		Header:       newHeader(SizeLightsPattern, MsgLightsPattern),
		ChannelCount: 1,
		Configs:      [MaxLightChannels]*LightConfig{&c},
	}
}

// NewTurn builds a turn command.
func NewTurn(turn VehicleTurn, trigger VehicleTurnTrigger) *Turn {
	return &Turn{Header: newHeader(SizeTurn, MsgTurn), TurnType: turn, Trigger: trigger}
}

// NewTurn180 builds an immediate U-turn.
func NewTurn180() *Turn {
	return NewTurn(TurnUTurn, TriggerImmediate)
}

// NewSetConfigParams builds a config command. See the Supercode* masks.
func NewSetConfigParams(supercodeMask uint8, material TrackMaterial) *SetConfigParams {
	return &SetConfigParams{
		Header:             newHeader(SizeSetConfigParams, MsgSetConfigParams),
		SupercodeParseMask: supercodeMask,
		TrackMaterial:      material,
	}
}
