// Overdrive is a command line toolkit for Anki Overdrive vehicle messages.
//
// It encodes vehicle commands, decodes notifications and advertisements,
// builds the connect-time configuration sequence, monitors a stream of
// captured frames and finds overdrive-bridge instances on the network.
// Radio access is left to whatever holds the BLE connection: this tool
// only deals in bytes.
//
// Usage:
//
//	overdrive [command] [flags]
//
// See 'overdrive --help' for available commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/version"
	"github.com/overdrivekit/overdrive/internal/wire"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	byteOrderFlag string
	jsonOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "overdrive",
	Short: "Anki Overdrive vehicle message toolkit",
	Long: `A toolkit for the Anki Overdrive vehicle protocol.

Encodes vehicle commands, decodes notifications and advertisements, and
monitors captured traffic. Frames are read and written as hex.

The byte order of multi-byte fields defaults to the one stored in the
configuration file (little-endian unless changed). Set OVERDRIVE_LOG_LEVEL
to debug, info, warn or error to enable logging.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitializeFromEnv(); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&byteOrderFlag, "byte-order", "", "Byte order of multi-byte fields (big, little; default from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of styled output")

	rootCmd.AddCommand(versionCmd)
}

// byteOrder resolves --byte-order, falling back to the registry preference.
func byteOrder() (wire.Endian, error) {
	if byteOrderFlag != "" {
		return wire.ParseEndian(byteOrderFlag)
	}
	reg, err := config.LoadRegistry()
	if err != nil {
		return wire.LittleEndian, err
	}
	if reg.Preferences == nil {
		return wire.LittleEndian, nil
	}
	return reg.Preferences.ByteOrder, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.Info())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "overdrive %s\n", version.Full())
		return nil
	},
}
