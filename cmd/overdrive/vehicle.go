package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/ui"
	"github.com/overdrivekit/overdrive/internal/vehicle"
)

func init() {
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(monitorCmd)
}

// Vehicle command flags
var (
	vehicleAddress string
	vehicleName    string
	sdkModeOn      bool
)

// newVehicle builds a vehicle for the given address, taking its name from
// the registry when --name is not set.
func newVehicle(reg *config.Registry) *vehicle.Vehicle {
	name := vehicleName
	if name == "" && vehicleAddress != "" {
		if known := reg.GetVehicle(vehicleAddress); known != nil {
			name = known.DisplayName()
		}
	}
	return vehicle.New(name, vehicleAddress)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Print the connect-time configuration commands",
	Long: `Print the commands to write after connecting to a vehicle: SDK mode on
with localisation override, then a lane reset to the road centre.

The lane reset speed and acceleration come from the configuration file.
Pass --sdk-mode-on when the vehicle already reported SDK mode; the SDK
mode command is then skipped.`,
	Example: `  # Commands for a fresh connection
  overdrive configure

  # Big-endian firmware, vehicle already in SDK mode
  overdrive configure --byte-order big --sdk-mode-on`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&vehicleAddress, "address", "", "Bluetooth address of the vehicle")
	configureCmd.Flags().StringVar(&vehicleName, "name", "", "Vehicle name (default from config)")
	configureCmd.Flags().BoolVar(&sdkModeOn, "sdk-mode-on", false, "Vehicle is already in SDK mode")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	opts := reg.VehicleOptions()
	if byteOrderFlag != "" {
		if opts.ByteOrder, err = byteOrder(); err != nil {
			return err
		}
	}

	v := newVehicle(reg)
	if sdkModeOn {
		v.ProcessSDKMode(protocol.NewSDKMode(1, protocol.SDKOptionOverrideLocalization))
	}

	commands, err := v.Configure(opts)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if jsonOutput {
		out := make([]string, len(commands))
		for i, c := range commands {
			out[i] = ui.FormatHex(c)
		}
		return p.PrintJSON(out)
	}
	if !ui.IsTerminal() {
		for _, c := range commands {
			p.Println(ui.FormatHex(c))
		}
		return nil
	}

	details := map[string]string{
		"Byte order": opts.ByteOrder.String(),
		"Lane reset": fmt.Sprintf("%d mm/s, %d mm/s²", opts.LaneResetSpeed, opts.LaneResetAccel),
		"Commands":    strconv.Itoa(len(commands)),
	}
	for i, c := range commands {
		details[fmt.Sprintf("Command %d", i+1)] = ui.OutMarker + " " + ui.FormatHex(c)
	}
	p.PrintSuccess("Vehicle configuration", details)
	return nil
}

var monitorCmd = &cobra.Command{
	Use:   "monitor [file]",
	Short: "Watch a stream of vehicle notifications",
	Long: `Decode vehicle notifications as they arrive, one hex frame per line,
and show the recent messages next to the vehicle's state.

Frames are read from the file, or standard input when no file is given.
Reading standard input disables the keyboard; the monitor exits at end of
input and prints the final state.`,
	Example: `  # Follow a capture written by another tool
  tail -f notifications.hex | overdrive monitor --name Skull

  # Replay a saved capture
  overdrive monitor frames.hex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&vehicleAddress, "address", "", "Bluetooth address of the vehicle")
	monitorCmd.Flags().StringVar(&vehicleName, "name", "", "Vehicle name (default from config)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	order, err := byteOrder()
	if err != nil {
		return err
	}
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open frames: %w", err)
		}
		defer f.Close()
		r = f
	}

	v := newVehicle(reg)
	final, err := ui.RunMonitor(cmd.Context(), r, v, order)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if jsonOutput {
		return p.PrintJSON(v.Snapshot())
	}
	if final.Errors > 0 {
		p.PrintWarning("Monitor finished with errors", map[string]string{
			"Frames": strconv.Itoa(final.Frames),
			"Errors": strconv.Itoa(final.Errors),
		})
	}
	return nil
}
