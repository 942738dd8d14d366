package ui

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/overdrivekit/overdrive/internal/advertisement"
	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/vehicle"
)

// Field is one labelled value in a rendered panel.
type Field struct {
	Key   string
	Value string
}

func f(key string, format string, args ...any) Field {
	return Field{Key: key, Value: fmt.Sprintf(format, args...)}
}

// MessageFields lists the decoded fields of msg, header first.
func MessageFields(msg protocol.Message) []Field {
	fields := []Field{
		f("Type", "%s (0x%02x)", msg.Type(), uint8(msg.Type())),
		f("Length", "%d bytes", msg.Len()),
	}

	switch m := msg.(type) {
	case *protocol.Envelope:
		if len(m.Payload) > 0 {
			fields = append(fields, f("Payload", "%s", hex.EncodeToString(m.Payload)))
		}
	case *protocol.VersionResponse:
		fields = append(fields, f("Version", "0x%04x", m.Version))
	case *protocol.BatteryLevelResponse:
		fields = append(fields, f("Battery level", "%d", m.BatteryLevel))
	case *protocol.SDKMode:
		fields = append(fields, f("On", "%d", m.On), f("Flags", "0x%02x", m.Flags))
	case *protocol.SetSpeed:
		fields = append(fields,
			f("Speed", "%d mm/s", m.Speed),
			f("Accel", "%d mm/s²", m.Accel),
			f("Respect speed limit", "%d", m.RespectRoadPieceSpeedLimit),
		)
	case *protocol.Turn:
		fields = append(fields, f("Turn", "%s", m.TurnType), f("Trigger", "%s", m.Trigger))
	case *protocol.SetOffsetFromRoadCentre:
		fields = append(fields, f("Offset", "%.2f mm", m.Offset))
	case *protocol.ChangeLane:
		fields = append(fields,
			f("Horizontal speed", "%d mm/s", m.HorizontalSpeed),
			f("Horizontal accel", "%d mm/s²", m.HorizontalAccel),
			f("Offset", "%.2f mm", m.Offset),
			f("Hop intent", "%d", m.HopIntent),
			f("Tag", "%d", m.Tag),
		)
	case *protocol.SetLights:
		fields = append(fields, f("Light mask", "0x%02x", m.LightMask))
	case *protocol.SetConfigParams:
		fields = append(fields,
			f("Supercode mask", "0x%02x", m.SupercodeParseMask),
			f("Track material", "%s", m.TrackMaterial),
		)
	case *protocol.LightsPattern:
		fields = append(fields, f("Channels", "%d", m.ChannelCount))
		for i, c := range m.Configs {
			if c == nil {
				continue
			}
			fields = append(fields, f(fmt.Sprintf("Slot %d", i), "%s %s %d-%d, %d/10s",
				c.Channel, c.Effect, c.Start, c.End, c.CyclesPer10Sec))
		}
	case *protocol.PositionUpdate:
		fields = append(fields,
			f("Location", "%d", m.LocationID),
			f("Road piece", "%d", m.RoadPieceID),
			f("Offset", "%.2f mm", m.Offset),
			f("Speed", "%d mm/s", m.Speed),
			f("Parsing flags", "%s", m.ParsingFlags),
			f("Lane change recv/exec", "%d/%d", m.LastRecvLaneChangeCmdID, m.LastExecLaneChangeCmdID),
			f("Desired lane speed", "%d mm/s", m.LastDesiredLaneChangeSpeed),
			f("Desired speed", "%d mm/s", m.LastDesiredSpeed),
		)
	case *protocol.TransitionUpdate:
		fields = append(fields,
			f("Road piece", "%d (prev %d)", m.RoadPieceIdx, m.RoadPieceIdxPrev),
			f("Offset", "%.2f mm", m.Offset),
			f("Lane change recv/exec", "%d/%d", m.LastRecvLaneChangeID, m.LastExecLaneChangeID),
			f("Desired lane speed", "%d mm/s", m.LastDesiredLaneChangeSpeed),
			f("Line drift", "%d px", m.AveFollowLineDriftPixels),
			f("Lane change activity", "%d", m.HadLaneChangeActivity),
			f("Uphill/downhill", "%d/%d", m.UphillCounter, m.DownhillCounter),
			f("Wheel dist L/R", "%d/%d cm", m.LeftWheelDistCm, m.RightWheelDistCm),
		)
	case *protocol.IntersectionUpdate:
		fields = append(fields,
			f("Road piece", "%d", m.RoadPieceIdx),
			f("Offset", "%.2f mm", m.Offset),
			f("Intersection", "%s", m.Code),
			f("Exiting", "%d", m.IsExiting),
			f("Since transition bar", "%d mm", m.MmSinceLastTransitionBar),
			f("Since intersection", "%d mm", m.MmSinceLastIntersectionCode),
		)
	case *protocol.OffsetFromRoadCentreUpdate:
		fields = append(fields, f("Offset", "%.2f mm", m.Offset), f("Lane change", "%d", m.LaneChangeID))
	}
	return fields
}

// AdvertisementFields lists the decoded fields of an advertisement.
func AdvertisementFields(p *advertisement.Packet) []Field {
	ln := p.LocalName
	var state []string
	if ln.FullBattery() {
		state = append(state, "full battery")
	}
	if ln.LowBattery() {
		state = append(state, "low battery")
	}
	if ln.OnCharger() {
		state = append(state, "on charger")
	}
	if len(state) == 0 {
		state = append(state, "-")
	}

	return []Field{
		f("Name", "%s", ln.DisplayName()),
		f("Firmware", "0x%04x", ln.Version),
		f("State", "0x%02x (%s)", ln.State, strings.Join(state, ", ")),
		f("Model", "%d", p.MfgData.ModelID),
		f("Product", "0x%04x", p.MfgData.ProductID),
		f("Identifier", "0x%08x", p.MfgData.Identifier),
		f("Flags", "0x%02x", p.Flags),
		f("Tx power", "%d", p.TxPower),
		f("Service", "%s", p.ServiceID),
	}
}

// StateFields lists a vehicle snapshot.
func StateFields(s vehicle.State) []Field {
	name := s.Name
	if name == "" {
		name = "-"
	}
	fields := []Field{
		f("Vehicle", "%s", name),
		f("Address", "%s", s.Address),
		f("Firmware", "0x%04x", s.Version),
		f("Battery", "%d", s.Battery),
		f("SDK mode", "%t", s.SDKModeOn),
		f("Speed", "%d mm/s", s.Speed),
		f("Offset", "%.2f mm", s.Offset),
		f("Location", "%d on piece %d (prev %d)", s.LocationID, s.RoadPieceIdx, s.RoadPieceIdxPrev),
		f("Intersection", "%s", s.IntersectionCode),
		f("Messages", "%d", s.Messages),
	}
	if s.Delocalized {
		fields = append(fields, f("Status", "delocalized"))
	}
	return fields
}

// RenderFields renders fields as aligned key/value lines.
func RenderFields(fields []Field) string {
	lines := make([]string, 0, len(fields))
	for _, fl := range fields {
		lines = append(lines, FieldKeyStyle.Render(fl.Key)+FieldValueStyle.Render(fl.Value))
	}
	return strings.Join(lines, "\n")
}

// RenderMessage renders a decoded message with its raw bytes in a panel.
func RenderMessage(msg protocol.Message, raw []byte, width int) string {
	title := MessageTypeStyle
	if msg.Type() == protocol.MsgUnknown {
		title = UnknownTypeStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		title.Render(msg.Type().String()),
		HexStyle.Render(FormatHex(raw)),
		"",
		RenderFields(MessageFields(msg)),
	)
	return PanelStyle(clampWidth(width)).Render(content)
}

// RenderAdvertisement renders a decoded advertisement in a panel.
func RenderAdvertisement(p *advertisement.Packet, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		MessageTypeStyle.Render("Advertisement"),
		"",
		RenderFields(AdvertisementFields(p)),
	)
	return PanelStyle(clampWidth(width)).Render(content)
}

// RenderState renders a vehicle snapshot in a panel.
func RenderState(s vehicle.State, width int) string {
	return PanelStyle(clampWidth(width)).Render(RenderFields(StateFields(s)))
}

// FormatHex renders bytes as space separated hex pairs.
func FormatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

// ParseHex accepts hex with optional spaces, colons, commas and 0x
// prefixes ("03 19 cd ab", "0x03,0x19", "0319cdab").
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, "0X", "")
	s = strings.NewReplacer(" ", "", "\t", "", ":", "", ",", "", "-", "").Replace(s)
	if s == "" {
		return nil, fmt.Errorf("no hex digits")
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

func clampWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
