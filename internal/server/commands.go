package server

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/overdrivekit/overdrive/internal/protocol"
)

// CommandRequest is the JSON body of a text frame asking the bridge to
// encode a vehicle command. Only the fields used by Command are read.
type CommandRequest struct {
	Command string `json:"command"`

	// set-speed, change-lane
	Speed int `json:"speed,omitempty"`
	Accel int `json:"accel,omitempty"`

	// change-lane, set-offset
	Offset float32 `json:"offset,omitempty"`

	// sdk-mode
	On    *bool `json:"on,omitempty"`
	Flags uint8 `json:"flags,omitempty"`

	// turn
	Turn    string `json:"turn,omitempty"`
	Trigger string `json:"trigger,omitempty"`

	// set-lights
	Mask uint8 `json:"mask,omitempty"`

	// lights-pattern
	Channels []ChannelRequest `json:"channels,omitempty"`

	// config-params
	SupercodeMask uint8  `json:"supercode_mask,omitempty"`
	Material      string `json:"material,omitempty"`
}

// ChannelRequest describes one lights-pattern channel.
type ChannelRequest struct {
	Channel      string `json:"channel"`
	Effect       string `json:"effect,omitempty"`
	Start        uint8  `json:"start"`
	End          uint8  `json:"end"`
	CyclesPerMin uint16 `json:"cycles_per_min"`
}

type commandBuilder func(req *CommandRequest) (protocol.Message, error)

var commandBuilders = map[string]commandBuilder{
	"ping":               bare(protocol.NewPing),
	"disconnect":         bare(protocol.NewDisconnect),
	"version":            bare(protocol.NewVersionRequest),
	"battery":            bare(protocol.NewBatteryLevelRequest),
	"cancel-lane-change": bare(protocol.NewCancelLaneChange),
	"sdk-mode":           buildSDKMode,
	"set-speed":          buildSetSpeed,
	"change-lane":        buildChangeLane,
	"set-offset":         buildSetOffset,
	"turn":               buildTurn,
	"u-turn":             func(*CommandRequest) (protocol.Message, error) { return protocol.NewTurn180(), nil },
	"set-lights":         buildSetLights,
	"lights-pattern":     buildLightsPattern,
	"config-params":      buildConfigParams,
}

// CommandNames returns the accepted command names in sorted order.
func CommandNames() []string {
	names := make([]string, 0, len(commandBuilders))
	for name := range commandBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildCommand turns a request into the protocol message it names.
func BuildCommand(req *CommandRequest) (protocol.Message, error) {
	build, ok := commandBuilders[strings.ToLower(req.Command)]
	if !ok {
		return nil, fmt.Errorf("unknown command %q (valid: %s)", req.Command, strings.Join(CommandNames(), ", "))
	}
	msg, err := build(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Command, err)
	}
	return msg, nil
}

func bare(fn func() *protocol.Envelope) commandBuilder {
	return func(*CommandRequest) (protocol.Message, error) { return fn(), nil }
}

func buildSDKMode(req *CommandRequest) (protocol.Message, error) {
	on := uint8(1)
	if req.On != nil && !*req.On {
		on = 0
	}
	flags := req.Flags
	if req.On == nil && flags == 0 {
		flags = protocol.SDKOptionOverrideLocalization
	}
	return protocol.NewSDKMode(on, flags), nil
}

func buildSetSpeed(req *CommandRequest) (protocol.Message, error) {
	if err := checkRange("speed", req.Speed, math.MinInt16, math.MaxInt16); err != nil {
		return nil, err
	}
	if err := checkRange("accel", req.Accel, math.MinInt16, math.MaxInt16); err != nil {
		return nil, err
	}
	return protocol.NewSetSpeed(int16(req.Speed), int16(req.Accel)), nil
}

func buildChangeLane(req *CommandRequest) (protocol.Message, error) {
	if err := checkRange("speed", req.Speed, 0, math.MaxUint16); err != nil {
		return nil, err
	}
	if err := checkRange("accel", req.Accel, 0, math.MaxUint16); err != nil {
		return nil, err
	}
	return protocol.NewChangeLane(uint16(req.Speed), uint16(req.Accel), req.Offset), nil
}

func buildSetOffset(req *CommandRequest) (protocol.Message, error) {
	return protocol.NewSetOffsetFromRoadCentre(req.Offset), nil
}

func buildTurn(req *CommandRequest) (protocol.Message, error) {
	if req.Turn == "" {
		return nil, fmt.Errorf("turn is required")
	}
	turn, err := protocol.ParseVehicleTurn(req.Turn)
	if err != nil {
		return nil, err
	}
	trigger := protocol.TriggerImmediate
	if req.Trigger != "" {
		if trigger, err = protocol.ParseVehicleTurnTrigger(req.Trigger); err != nil {
			return nil, err
		}
	}
	return protocol.NewTurn(turn, trigger), nil
}

func buildSetLights(req *CommandRequest) (protocol.Message, error) {
	return protocol.NewSetLights(req.Mask), nil
}

func buildLightsPattern(req *CommandRequest) (protocol.Message, error) {
	if len(req.Channels) == 0 {
		return nil, fmt.Errorf("at least one channel is required")
	}
	if len(req.Channels) > protocol.MaxLightChannels {
		return nil, fmt.Errorf("at most %d channels, got %d", protocol.MaxLightChannels, len(req.Channels))
	}

	var pattern *protocol.LightsPattern
	for i, ch := range req.Channels {
		channel, err := protocol.ParseLightChannel(ch.Channel)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		effect := protocol.EffectSteady
		if ch.Effect != "" {
			if effect, err = protocol.ParseLightEffect(ch.Effect); err != nil {
				return nil, fmt.Errorf("channel %d: %w", i, err)
			}
		}
		if pattern == nil {
			pattern = protocol.NewLightsPattern(channel, effect, ch.Start, ch.End, ch.CyclesPerMin)
			continue
		}
		pattern.Append(protocol.NewLightConfig(channel, effect, ch.Start, ch.End, ch.CyclesPerMin))
	}
	return pattern, nil
}

func buildConfigParams(req *CommandRequest) (protocol.Message, error) {
	material := protocol.TrackPlastic
	if req.Material != "" {
		var err error
		if material, err = protocol.ParseTrackMaterial(req.Material); err != nil {
			return nil, err
		}
	}
	return protocol.NewSetConfigParams(req.SupercodeMask, material), nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d out of range [%d, %d]", name, v, lo, hi)
	}
	return nil
}
