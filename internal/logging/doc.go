// Package logging provides structured logging for the overdrive tools.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used by the bridge, the vehicle state tracker and the
// CLI. The codec packages (wire, protocol, advertisement) never log; their
// callers do.
//
// # Log Levels
//
//   - Debug: raw notification bytes, decoded vehicle messages
//   - Info: connections, bridge lifecycle, commands sent
//   - Warn: undecodable frames, dropped connections
//   - Error: startup failures
//
// # Structured Logging
//
//	logging.Info("Vehicle configured",
//	    zap.String("address", "e6:d8:52:f1:d9:43"),
//	    zap.Int("commands", 2),
//	)
//
// Protocol helpers:
//
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//	logging.LogVehicleMessage("Skull", "in", "PositionUpdate", data)
//	logging.LogRawBytes("notification", data)
//
// # Configuration
//
// Logging is silent unless a level is given, either explicitly or via the
// OVERDRIVE_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Output goes to stderr in zap's console encoding so stdout stays clean for
// command output.
package logging
