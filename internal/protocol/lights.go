package protocol

import (
	"fmt"
	"strings"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// LightConfig is one 5 byte channel entry of a LightsPattern.
type LightConfig struct {
	Channel        LightChannel `json:"channel"`
	Effect         LightEffect  `json:"effect"`
	Start          uint8        `json:"start"`
	End            uint8        `json:"end"`
	CyclesPer10Sec uint8        `json:"cycles_per_10_sec"`
}

// Len returns LightConfigSize.
func (c *LightConfig) Len() int { return LightConfigSize }

func (c *LightConfig) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "LightConfig", len(src), LightConfigSize); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	c.Channel = LightChannelFromByte(r.U8())
	c.Effect = LightEffectFromByte(r.U8())
	c.Start = r.U8()
	c.End = r.U8()
	c.CyclesPer10Sec = r.U8()
	return r.Err()
}

func (c *LightConfig) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "LightConfig", len(dst), LightConfigSize); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	c.writeTo(w)
	return w.Err()
}

func (c *LightConfig) writeTo(w *wire.Writer) {
	w.PutU8(c.Channel.Byte())
	w.PutU8(c.Effect.Byte())
	w.PutU8(c.Start)
	w.PutU8(c.End)
	w.PutU8(c.CyclesPer10Sec)
}

func (c *LightConfig) String() string {
	return fmt.Sprintf("%s:%s(%d-%d, %d/10s)", c.Channel, c.Effect, c.Start, c.End, c.CyclesPer10Sec)
}

// LightsPattern (0x33) animates up to three light channels. Configs holds
// ChannelCount entries from index 0; the rest are nil and go out as zero
// bytes.
type LightsPattern struct {
	Header
	ChannelCount uint8                          `json:"channel_count"`
	Configs      [MaxLightChannels]*LightConfig `json:"channel_config"`
}

func (m *LightsPattern) Len() int { return SizeLightsPattern }

// Append adds c to the next free slot and returns the new channel count,
// or 0 without touching m when all slots are taken.
func (m *LightsPattern) Append(c LightConfig) uint8 {
	if m.ChannelCount >= MaxLightChannels {
		return 0
	}
	m.Configs[m.ChannelCount] = &c
	m.ChannelCount++
	return m.ChannelCount
}

// DecodeFrom fills min(ChannelCount, 3) slots.
func (m *LightsPattern) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "LightsPattern", len(src), SizeLightsPattern); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.ChannelCount = r.U8()

	used := min(int(m.ChannelCount), MaxLightChannels)
	for i := range m.Configs {
		slot := r.Bytes(LightConfigSize)
		if i >= used || slot == nil {
			m.Configs[i] = nil
			continue
		}
		c := &LightConfig{}
		if err := c.DecodeFrom(slot, e); err != nil {
			return err
		}
		m.Configs[i] = c
	}
	return r.Err()
}

// EncodeTo always writes all three slots, zero-filling empty ones.
func (m *LightsPattern) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "LightsPattern", len(dst), SizeLightsPattern); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.ChannelCount)
	for _, c := range m.Configs {
		if c == nil {
			w.Zero(LightConfigSize)
			continue
		}
		c.writeTo(w)
	}
	return w.Err()
}

func (m *LightsPattern) String() string {
	var parts []string
	for _, c := range m.Configs {
		if c != nil {
			parts = append(parts, c.String())
		}
	}
	return fmt.Sprintf("LightsPattern{count=%d, [%s]}", m.ChannelCount, strings.Join(parts, ", "))
}
