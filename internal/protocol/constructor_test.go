package protocol

import (
	"bytes"
	"testing"
)

func TestConstructorsEncodeBigEndian(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want []byte
	}{
		{
			name: "set speed",
			msg:  NewSetSpeed(0x7BCD, 0x7BCD),
			want: []byte{0x06, 0x24, 0x7B, 0xCD, 0x7B, 0xCD, 0x00},
		},
		{
			name: "turn left at intersection",
			msg:  NewTurn(TurnLeft, TriggerIntersection),
			want: []byte{0x03, 0x32, 0x01, 0x01},
		},
		{
			name: "turn 180",
			msg:  NewTurn180(),
			want: []byte{0x03, 0x32, 0x03, 0x00},
		},
		{
			name: "set offset from road centre",
			msg:  NewSetOffsetFromRoadCentre(100.0),
			want: []byte{0x05, 0x2c, 66, 200, 0, 0},
		},
		{
			name: "change lane",
			msg:  NewChangeLane(10, 100, 20.0),
			want: []byte{0x0b, 0x25, 0, 10, 0, 100, 65, 160, 0, 0, 0, 0},
		},
		{
			name: "sdk mode",
			msg:  NewSDKMode(1, 0),
			want: []byte{0x03, 0x90, 0x01, 0x00},
		},
		{
			name: "set lights",
			msg:  NewSetLights(0xAB),
			want: []byte{0x02, 0x1d, 0xAB},
		},
		{
			name: "config params",
			msg:  NewSetConfigParams(SupercodeBoostJump, TrackPlastic),
			want: []byte{0x03, 0x45, 0x01, 0x00},
		},
		{
			name: "ping",
			msg:  NewPing(),
			want: []byte{0x01, 0x16},
		},
		{
			name: "disconnect",
			msg:  NewDisconnect(),
			want: []byte{0x01, 0x0d},
		},
		{
			name: "version request",
			msg:  NewVersionRequest(),
			want: []byte{0x01, 0x18},
		},
		{
			name: "battery level request",
			msg:  NewBatteryLevelRequest(),
			want: []byte{0x01, 0x1a},
		},
		{
			name: "cancel lane change",
			msg:  NewCancelLaneChange(),
			want: []byte{0x01, 0x26},
		},
		{
			name: "version response",
			msg:  NewVersionResponse(0xABCD),
			want: []byte{0x03, 0x19, 0xAB, 0xCD},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.msg, BigEndian)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % x, want % x", got, tt.want)
			}
			if len(got) != tt.msg.Len() {
				t.Errorf("len = %d, want Len() %d", len(got), tt.msg.Len())
			}
		})
	}
}

func TestSetSpeedLittleEndian(t *testing.T) {
	got, err := Encode(NewSetSpeed(500, 1000), LittleEndian)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0x06, 0x24, 0xF4, 0x01, 0xE8, 0x03, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func TestNewLightConfig(t *testing.T) {
	c := NewLightConfig(ChannelTail, EffectFlash, 0x0A, 0x0B, 600)
	buf := make([]byte, LightConfigSize)
	if err := c.EncodeTo(buf, BigEndian); err != nil {
		t.Fatalf("EncodeTo() error = %v", err)
	}
	want := []byte{0x01, 0x03, 0x0A, 0x0B, 100}
	if !bytes.Equal(buf, want) {
		t.Errorf("EncodeTo() = % x, want % x", buf, want)
	}
}

func TestLightConfigCyclesTruncate(t *testing.T) {
	tests := []struct {
		perMin uint16
		want   uint8
	}{
		{0, 0},
		{5, 0},
		{6, 1},
		{65, 10},
		{600, 100},
		{1530, 255},
	}

	for _, tt := range tests {
		c := NewLightConfig(ChannelRed, EffectSteady, 0, 0, tt.perMin)
		if c.CyclesPer10Sec != tt.want {
			t.Errorf("NewLightConfig(perMin=%d).CyclesPer10Sec = %d, want %d", tt.perMin, c.CyclesPer10Sec, tt.want)
		}
	}
}

func TestConstructorHeaders(t *testing.T) {
	tests := []struct {
		msg  Message
		want MessageType
	}{
		{NewPingResponse(), MsgPingResponse},
		{NewDelocalized(), MsgVehicleDelocalized},
		{NewBatteryLevelResponse(3800), MsgBatteryLevelResponse},
		{NewLightsPattern(ChannelRed, EffectSteady, 0, 0, 0), MsgLightsPattern},
	}

	for _, tt := range tests {
		if tt.msg.Type() != tt.want {
			t.Errorf("Type() = %s, want %s", tt.msg.Type(), tt.want)
		}
		buf, err := Encode(tt.msg, BigEndian)
		if err != nil {
			t.Errorf("Encode(%s) error = %v", tt.want, err)
			continue
		}
		if int(buf[0]) != tt.msg.Len()-1 {
			t.Errorf("%s size byte = %d, want %d", tt.want, buf[0], tt.msg.Len()-1)
		}
	}
}
