// Overdrive-bridge is a WebSocket codec bridge for Anki Overdrive vehicles.
//
// Clients holding a BLE connection forward raw vehicle notifications as
// binary frames and get decoded JSON back; they send JSON command requests
// as text frames and get the encoded bytes to write to the vehicle. The
// bridge announces itself via mDNS so 'overdrive scan' can find it.
//
// Usage:
//
//	overdrive-bridge [flags]
//
// See 'overdrive-bridge --help' for available options.
package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/discovery"
	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/server"
	"github.com/overdrivekit/overdrive/internal/version"
	"github.com/overdrivekit/overdrive/internal/wire"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Server flags
var (
	host       string
	port       int
	byteOrder  string
	captureDir string
	logLevel   string
	announce   bool
	instance   string
)

var rootCmd = &cobra.Command{
	Use:   "overdrive-bridge",
	Short: "Overdrive WebSocket codec bridge",
	Long: `A WebSocket bridge that decodes and encodes Anki Overdrive vehicle messages.

Endpoints:
  /ws       binary frame = vehicle notification, reply is decoded JSON
            text frame = JSON command request, reply is the encoded bytes
  /healthz  liveness check
  /version  build information

Defaults for host, port, byte order, capture directory and mDNS
announcement come from the overdrive configuration file.`,
	Example: `  # Start with configured defaults
  overdrive-bridge

  # Big-endian firmware on a custom port, debug logging
  overdrive-bridge --byte-order big --port 9000 --log-level debug

  # Capture every frame for later analysis
  overdrive-bridge --capture-dir ./captures

  # Local only, no mDNS
  overdrive-bridge --host 127.0.0.1 --announce=false`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runBridge,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	bindFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&host, "host", "", "Listen address (default from config)")
	f.IntVar(&port, "port", 0, "Listen port (default from config)")
	f.StringVar(&byteOrder, "byte-order", "", "Byte order of frames and commands: big, little (default from config)")
	f.StringVar(&captureDir, "capture-dir", "", "Directory to write JSONL frame captures (default from config)")
	f.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.BoolVar(&announce, "announce", true, "Announce the bridge via mDNS")
	f.StringVar(&instance, "name", "", "mDNS instance name (default overdrive-<hostname>)")
}

// serverConfig merges the registry's bridge preferences with the flags
// that were set explicitly.
func serverConfig(cmd *cobra.Command, reg *config.Registry) (*server.Config, bool, error) {
	prefs := reg.Preferences
	cfg := &server.Config{
		Host:       prefs.Bridge.Host,
		Port:       prefs.Bridge.Port,
		ByteOrder:  prefs.ByteOrder,
		CaptureDir: prefs.Bridge.CaptureDir,
		LogLevel:   logLevel,
	}
	doAnnounce := prefs.Bridge.Announce

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = host
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("byte-order") {
		order, err := wire.ParseEndian(byteOrder)
		if err != nil {
			return nil, false, err
		}
		cfg.ByteOrder = order
	}
	if flags.Changed("capture-dir") {
		cfg.CaptureDir = captureDir
	}
	if flags.Changed("announce") {
		doAnnounce = announce
	}

	if cfg.CaptureDir != "" {
		info, err := os.Stat(cfg.CaptureDir)
		if os.IsNotExist(err) {
			return nil, false, fmt.Errorf("capture directory does not exist: %s", cfg.CaptureDir)
		}
		if err != nil {
			return nil, false, fmt.Errorf("cannot access capture directory: %w", err)
		}
		if !info.IsDir() {
			return nil, false, fmt.Errorf("capture path is not a directory: %s", cfg.CaptureDir)
		}
	}
	return cfg, doAnnounce, nil
}

func runBridge(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	cfg, doAnnounce, err := serverConfig(cmd, reg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	if doAnnounce {
		name := instance
		if name == "" {
			hostname, _ := os.Hostname()
			name = "overdrive-" + hostname
		}
		boundPort := cfg.Port
		if tcp, ok := srv.Addr().(*net.TCPAddr); ok {
			boundPort = tcp.Port
		}
		ann, err := discovery.Announce(name, boundPort, cfg.ByteOrder, version.Version)
		if err != nil {
			// The bridge still works without mDNS; clients connect by address.
			logging.Warn("mDNS announcement failed", zap.Error(err))
		} else {
			defer ann.Shutdown()
			logging.Info("Bridge announced", zap.String("instance", name), zap.String("service", discovery.ServiceType))
		}
	}

	return srv.Start(context.Background())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "overdrive-bridge %s\n", version.Full())
	},
}
