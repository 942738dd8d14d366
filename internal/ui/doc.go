// Package ui provides terminal UI components for the overdrive CLI.
//
// Most commands follow a "print once and exit" pattern: a Header naming
// the command and its parameters, one or more panels, and a Result box.
// The monitor command is the exception, running a Bubble Tea program that
// feeds frames into a vehicle and redraws as they arrive.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - RenderMessage, RenderAdvertisement, RenderState: decoded panels
//   - Result: success, failure and warning boxes
//   - MonitorModel: live frame monitor with a spinner and key help
//   - Printer: writes the above to any io.Writer
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Decode", "overdrive decode", map[string]string{"Byte order": "little"})
//	msg, err := protocol.DecodeMessage(raw, wire.LittleEndian)
//	if err != nil {
//	    p.PrintError("Decode failed", err, nil)
//	    return err
//	}
//	p.PrintMessage(msg, raw)
//
// # Logging Integration
//
// This package expects logging to be controlled via the OVERDRIVE_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
