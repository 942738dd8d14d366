package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/advertisement"
	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/server"
	"github.com/overdrivekit/overdrive/internal/ui"
	"github.com/overdrivekit/overdrive/internal/wire"
)

var decodeTips = []string{
	"Check --byte-order matches the vehicle firmware",
	"The first byte is the size: total length minus one",
	"Frames longer than 20 bytes are never valid",
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(advCmd)
}

// Encode command flags
var (
	encodeReq      server.CommandRequest
	encodeOn       bool
	encodeChannels []string
)

var encodeCmd = &cobra.Command{
	Use:   "encode <command>",
	Short: "Encode a vehicle command",
	Long: `Encode a vehicle command and print its bytes as hex.

Commands: ` + strings.Join(server.CommandNames(), ", ") + `

Light channels are given as channel:effect:start:end:cycles-per-minute,
for example red:throb:0:14:60. Up to three may be given.`,
	Example: `  # Drive at 500 mm/s
  overdrive encode set-speed --speed 500 --accel 1000

  # Move 23.5 mm left of the road centre, big-endian firmware
  overdrive encode change-lane --speed 300 --accel 2500 --offset -23.5 --byte-order big

  # Pulse the tail light
  overdrive encode lights-pattern --channel tail:throb:0:14:30

  # Leave SDK mode
  overdrive encode sdk-mode --on=false`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.IntVar(&encodeReq.Speed, "speed", 0, "Speed in mm/s (set-speed, change-lane)")
	f.IntVar(&encodeReq.Accel, "accel", 0, "Acceleration in mm/s² (set-speed, change-lane)")
	f.Float32Var(&encodeReq.Offset, "offset", 0, "Offset from road centre in mm (change-lane, set-offset)")
	f.BoolVar(&encodeOn, "on", true, "Enable SDK mode (sdk-mode)")
	f.Uint8Var(&encodeReq.Flags, "flags", protocol.SDKOptionOverrideLocalization, "SDK option flags (sdk-mode)")
	f.StringVar(&encodeReq.Turn, "turn", "", "Turn type: left, right, uturn, uturnjump (turn)")
	f.StringVar(&encodeReq.Trigger, "trigger", "", "Turn trigger: immediate, intersection (turn)")
	f.Uint8Var(&encodeReq.Mask, "mask", 0, "Light mask (set-lights)")
	f.StringArrayVar(&encodeChannels, "channel", nil, "Light channel channel:effect:start:end:cpm (lights-pattern)")
	f.Uint8Var(&encodeReq.SupercodeMask, "supercode-mask", 0, "Supercode parse mask (config-params)")
	f.StringVar(&encodeReq.Material, "material", "", "Track material: plastic, vinyl (config-params)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	order, err := byteOrder()
	if err != nil {
		return err
	}

	req := encodeReq
	req.Command = args[0]
	if cmd.Flags().Changed("on") || cmd.Flags().Changed("flags") {
		on := encodeOn
		req.On = &on
	}
	for _, spec := range encodeChannels {
		ch, err := parseChannel(spec)
		if err != nil {
			return err
		}
		req.Channels = append(req.Channels, ch)
	}

	msg, err := server.BuildCommand(&req)
	if err != nil {
		return err
	}
	data, err := protocol.Encode(msg, order)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type(), err)
	}
	logging.LogVehicleMessage("-", "out", msg.Type().String(), data)

	p := ui.NewPrinter(cmd.OutOrStdout())
	if jsonOutput {
		return p.PrintJSON(frameOutput{
			Type:    msg.Type().String(),
			Length:  len(data),
			Hex:     ui.FormatHex(data),
			Message: msg,
		})
	}
	if !ui.IsTerminal() {
		p.Println(ui.FormatHex(data))
		return nil
	}

	p.PrintHeader("Encode", "overdrive encode "+req.Command, map[string]string{"Byte order": order.String()})
	p.PrintMessage(msg, data)
	return nil
}

// parseChannel parses channel:effect:start:end:cpm. Effect, start, end
// and cpm may be omitted from the right.
func parseChannel(spec string) (server.ChannelRequest, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 5 || parts[0] == "" {
		return server.ChannelRequest{}, fmt.Errorf("invalid channel %q: want channel:effect:start:end:cpm", spec)
	}

	ch := server.ChannelRequest{Channel: parts[0]}
	if len(parts) > 1 {
		ch.Effect = parts[1]
	}

	nums := []struct {
		name string
		bits int
		set  func(uint64)
	}{
		{"start", 8, func(v uint64) { ch.Start = uint8(v) }},
		{"end", 8, func(v uint64) { ch.End = uint8(v) }},
		{"cycles per minute", 16, func(v uint64) { ch.CyclesPerMin = uint16(v) }},
	}
	for i, n := range nums {
		if len(parts) <= i+2 || parts[i+2] == "" {
			continue
		}
		v, err := strconv.ParseUint(parts[i+2], 10, n.bits)
		if err != nil {
			return server.ChannelRequest{}, fmt.Errorf("invalid channel %q: bad %s: %w", spec, n.name, err)
		}
		n.set(v)
	}
	return ch, nil
}

// frameOutput is the JSON form of one encoded or decoded frame.
type frameOutput struct {
	Type    string           `json:"type,omitempty"`
	Length  int              `json:"length"`
	Hex     string           `json:"hex"`
	Message protocol.Message `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode [hex...]",
	Short: "Decode vehicle messages",
	Long: `Decode vehicle messages given as hex.

With arguments, the arguments together form one frame. Without arguments,
each line of standard input is decoded as a frame; blank lines and lines
starting with # are skipped.`,
	Example: `  # Decode a version response
  overdrive decode 03 19 cd ab

  # Decode a capture, one frame per line
  overdrive decode < frames.txt

  # JSON output for scripting
  overdrive decode --json 0x03,0x19,0xcd,0xab`,
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	order, err := byteOrder()
	if err != nil {
		return err
	}
	p := ui.NewPrinter(cmd.OutOrStdout())

	if len(args) > 0 {
		data, err := ui.ParseHex(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if !jsonOutput {
			p.PrintHeader("Decode", "overdrive decode", map[string]string{
				"Byte order": order.String(),
				"Input":      "arguments",
			})
		}
		return decodeFrame(p, data, order)
	}

	if !jsonOutput {
		p.PrintHeader("Decode", "overdrive decode", map[string]string{
			"Byte order": order.String(),
			"Input":      "stdin",
		})
	}
	return decodeLines(p, cmd.InOrStdin(), order)
}

// decodeLines decodes one frame per line and reports the number of
// failures as the error.
func decodeLines(p *ui.Printer, r io.Reader, order wire.Endian) error {
	scanner := bufio.NewScanner(r)
	failed := 0
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		data, err := ui.ParseHex(text)
		if err == nil {
			err = decodeFrame(p, data, order)
		}
		if err != nil {
			logging.Debug("Frame not decoded", zap.Int("line", line), zap.Error(err))
			if !jsonOutput {
				p.Println(ui.ErrorMessageStyle.Render(fmt.Sprintf("line %d: %v", line, err)))
			}
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d frame(s) failed to decode", failed)
	}
	return nil
}

func decodeFrame(p *ui.Printer, data []byte, order wire.Endian) error {
	msg, err := protocol.DecodeMessage(data, order)

	if jsonOutput {
		out := frameOutput{Length: len(data), Hex: ui.FormatHex(data)}
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Type = msg.Type().String()
			out.Message = msg
		}
		if perr := p.PrintJSON(out); perr != nil {
			return perr
		}
		return err
	}

	if err != nil {
		p.PrintError("Decode failed", err, decodeTips)
		return err
	}
	p.PrintMessage(msg, data)
	return nil
}

var advAddress string

var advCmd = &cobra.Command{
	Use:   "adv <hex...>",
	Short: "Decode a vehicle advertisement",
	Long: `Decode a 47 byte vehicle advertisement: flags, tx power, manufacturer
data, local name and service id.

With --address the vehicle's name, model and firmware are remembered in
the configuration file under that Bluetooth address.`,
	Example: `  # Decode an advertisement
  overdrive adv "$(cat adv.hex)"

  # Decode and remember the vehicle
  overdrive adv --address e6:d8:52:f1:d9:43 "$(cat adv.hex)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdv,
}

func init() {
	advCmd.Flags().StringVar(&advAddress, "address", "", "Bluetooth address to record the vehicle under")
}

func runAdv(cmd *cobra.Command, args []string) error {
	order, err := byteOrder()
	if err != nil {
		return err
	}
	data, err := ui.ParseHex(strings.Join(args, " "))
	if err != nil {
		return err
	}

	logging.LogRawBytes("Advertisement", data)

	p := ui.NewPrinter(cmd.OutOrStdout())
	pkt, err := advertisement.Decode(data, order)
	if err != nil {
		if jsonOutput {
			return err
		}
		hints := []string{
			fmt.Sprintf("An advertisement is exactly %d bytes, got %d", advertisement.PacketSize, len(data)),
			"Check --byte-order matches the vehicle firmware",
		}
		if errors.Is(err, wire.ErrInvalidUTF8) {
			hints = []string{"The local name is not valid UTF-8; check the capture is a vehicle advertisement"}
		}
		p.PrintError("Advertisement decode failed", err, hints)
		return err
	}

	if advAddress != "" {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		reg.RecordAdvertisement(advAddress, pkt)
		if err := reg.Save(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		logging.Info("Vehicle recorded", zap.String("address", advAddress), zap.String("name", pkt.Name()))
	}

	if jsonOutput {
		return p.PrintJSON(pkt)
	}
	p.PrintHeader("Advertisement", "overdrive adv", map[string]string{"Byte order": order.String()})
	p.PrintAdvertisement(pkt)
	if advAddress != "" {
		p.PrintSuccess("Vehicle recorded", map[string]string{
			"Address": advAddress,
			"Name":    pkt.Name(),
		})
	}
	return nil
}
