package protocol

import "testing"

func TestMessageTypeLeniency(t *testing.T) {
	for b := 0; b < 256; b++ {
		mt := MessageTypeFromByte(byte(b))
		if mt != MsgUnknown && byte(mt) != byte(b) {
			t.Errorf("MessageTypeFromByte(0x%02x) = %s", b, mt)
		}
		if !mt.Known() {
			t.Errorf("MessageTypeFromByte(0x%02x) returned unknown value %d", b, mt)
		}
	}

	if got := MessageTypeFromByte(0xFF); got != MsgUnknown {
		t.Errorf("MessageTypeFromByte(0xFF) = %s, want Unknown", got)
	}
	if got := MessageType(0xEE).Byte(); got != 0 {
		t.Errorf("MessageType(0xEE).Byte() = 0x%02x, want 0", got)
	}
	if got := MsgSDKMode.Byte(); got != 0x90 {
		t.Errorf("MsgSDKMode.Byte() = 0x%02x, want 0x90", got)
	}
}

func TestEnumDecodeDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"turn", VehicleTurnFromByte(0x42).String(), "None"},
		{"turn in range", VehicleTurnFromByte(4).String(), "UTurnJump"},
		{"trigger", VehicleTurnTriggerFromByte(7).String(), "Immediate"},
		{"intersection", IntersectionCodeFromByte(0xFF).String(), "None"},
		{"intersection in range", IntersectionCodeFromByte(3).String(), "EntrySecond"},
		{"channel", LightChannelFromByte(0x20).String(), "Tail"},
		{"channel sentinel", LightChannelFromByte(6).String(), "Count"},
		{"effect", LightEffectFromByte(0x20).String(), "Steady"},
		{"effect sentinel", LightEffectFromByte(5).String(), "Count"},
		{"track", TrackMaterialFromByte(2).String(), "Plastic"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnumEncodeFallback(t *testing.T) {
	turn := &Turn{Header: newHeader(SizeTurn, MsgTurn), TurnType: VehicleTurn(99), Trigger: VehicleTurnTrigger(99)}
	buf, err := Encode(turn, BigEndian)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf[2] != 0 || buf[3] != 0 {
		t.Errorf("Encode() = % x, want fallback bytes 00 00", buf)
	}

	c := LightConfig{Channel: LightChannel(40), Effect: LightEffect(40)}
	out := make([]byte, LightConfigSize)
	if err := c.EncodeTo(out, BigEndian); err != nil {
		t.Fatalf("EncodeTo() error = %v", err)
	}
	if out[0] != byte(ChannelTail) || out[1] != byte(EffectSteady) {
		t.Errorf("EncodeTo() = % x, want channel Tail and effect Steady", out)
	}
}

func TestLenientDecodeDoesNotFail(t *testing.T) {
	msgs := []struct {
		name string
		msg  Message
		data []byte
	}{
		{"turn", &Turn{}, []byte{3, 0x32, 0xEE, 0xEE}},
		{"intersection", &IntersectionUpdate{}, []byte{12, 0x2a, 1, 0, 0, 0, 0, 0xEE, 0, 0, 0, 0, 0}},
		{"config params", &SetConfigParams{}, []byte{3, 0x45, 1, 0xEE}},
		{"unknown tag", &SetSpeed{}, []byte{6, 0xEE, 0, 0, 0, 0, 0}},
	}

	for _, tt := range msgs {
		if err := tt.msg.DecodeFrom(tt.data, BigEndian); err != nil {
			t.Errorf("%s: DecodeFrom() error = %v", tt.name, err)
		}
	}

	ss := msgs[3].msg.(*SetSpeed)
	if ss.ID != MsgUnknown {
		t.Errorf("SetSpeed with unknown tag: ID = %s, want Unknown", ss.ID)
	}
}

func TestParseEnums(t *testing.T) {
	if v, err := ParseVehicleTurn("uturn"); err != nil || v != TurnUTurn {
		t.Errorf("ParseVehicleTurn(uturn) = %v, %v", v, err)
	}
	if v, err := ParseLightChannel("FrontR"); err != nil || v != ChannelFrontR {
		t.Errorf("ParseLightChannel(FrontR) = %v, %v", v, err)
	}
	if v, err := ParseLightEffect("throb"); err != nil || v != EffectThrob {
		t.Errorf("ParseLightEffect(throb) = %v, %v", v, err)
	}
	if v, err := ParseTrackMaterial("vinyl"); err != nil || v != TrackVinyl {
		t.Errorf("ParseTrackMaterial(vinyl) = %v, %v", v, err)
	}
	if v, err := ParseVehicleTurnTrigger("intersection"); err != nil || v != TriggerIntersection {
		t.Errorf("ParseVehicleTurnTrigger(intersection) = %v, %v", v, err)
	}
	if _, err := ParseVehicleTurn("sideways"); err == nil {
		t.Errorf("ParseVehicleTurn(sideways) expected error")
	}
}

func TestParsingFlags(t *testing.T) {
	f := ParsingFlags(0xE5)
	if f.NumBits() != 5 {
		t.Errorf("NumBits() = %d, want 5", f.NumBits())
	}
	if !f.InvertedColor() || !f.ReverseParsing() || !f.ReverseDriving() {
		t.Errorf("flags %s: expected all direction bits set", f)
	}
	if got := ParsingFlags(0x03).String(); got != "bits=3" {
		t.Errorf("String() = %q, want bits=3", got)
	}
}

func TestGATTUUIDs(t *testing.T) {
	if ServiceUUID.String() != "be15beef-6186-407e-8381-0bd89c4d8df4" {
		t.Errorf("ServiceUUID = %s", ServiceUUID)
	}
	if ReadCharacteristic == WriteCharacteristic {
		t.Errorf("read and write characteristics must differ")
	}
}
