package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/overdrivekit/overdrive/internal/config"
	"github.com/overdrivekit/overdrive/internal/discovery"
	"github.com/overdrivekit/overdrive/internal/ui"
)

var scanTimeout int

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default from config)")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find overdrive-bridge instances on the network",
	Long: `Find overdrive-bridge instances using mDNS/DNS-SD discovery.

Bridges announce themselves as ` + discovery.ServiceType + ` with their byte order,
version and WebSocket path in TXT records.`,
	Example: `  # Scan with the configured timeout
  overdrive scan

  # Quick 2 second scan, JSON output
  overdrive scan --timeout 2 --json`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if timeout <= 0 {
		reg, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if reg.Preferences != nil {
			timeout = reg.Preferences.ScanTimeout
		}
	}

	scanner := discovery.NewScanner()
	if timeout > 0 {
		scanner.Timeout = time.Duration(timeout) * time.Second
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if !jsonOutput {
		p.PrintHeader("Scan", "overdrive scan", map[string]string{
			"Service": discovery.ServiceType,
			"Timeout": scanner.Timeout.String(),
		})
	}

	bridges, err := scanner.Scan(cmd.Context())
	if err != nil {
		if !jsonOutput {
			p.PrintError("Scan failed", err, []string{
				"Ensure multicast is allowed on this interface",
				"Check the firewall allows mDNS (UDP port 5353)",
			})
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOutput {
		return p.PrintJSON(bridges)
	}

	if len(bridges) == 0 {
		p.PrintWarning("No bridges found", map[string]string{
			"Hint": "Start one with 'overdrive-bridge' or try a longer --timeout",
		})
		return nil
	}

	for _, b := range bridges {
		p.PrintSuccess(b.Instance, map[string]string{
			"URL":        b.URL(),
			"Host":       b.Hostname,
			"Byte order": b.ByteOrder.String(),
			"Version":    b.Version,
		})
	}
	return nil
}
