// Package server implements the Overdrive WebSocket codec bridge.
//
// The bridge lets tools that cannot speak the vehicle's binary protocol
// (browser dashboards, scripts, a BLE relay on another host) exchange JSON
// with something that can. It owns no Bluetooth connection: a relay
// forwards raw characteristic notifications in and writes the encoded
// commands it gets back.
//
// # Endpoints
//
//	GET /ws       WebSocket upgrade
//	GET /healthz  returns 200 "ok"
//	GET /version  build information as JSON
//
// Query parameters on /ws (both optional):
//
//	name     vehicle name reported in replies
//	address  vehicle Bluetooth address (defaults to the client address)
//
// # Frames
//
// Binary frame: one raw vehicle notification (size byte, type byte,
// payload). The reply is a text frame:
//
//	{"type":"VersionResponse","length":4,"message":{...},"vehicle":{...}}
//
// or, when the frame cannot be decoded:
//
//	{"error":"handle notification: size mismatch: ..."}
//
// Text frame: a JSON command request. The reply is a binary frame holding
// the encoded command, or a JSON error text frame.
//
//	{"command":"set-speed","speed":500,"accel":1000}
//	{"command":"turn","turn":"uturn","trigger":"intersection"}
//	{"command":"lights-pattern","channels":[{"channel":"red","effect":"throb","start":0,"end":14,"cycles_per_min":60}]}
//
// Every connection keeps its own vehicle state, updated from the
// notifications it forwards.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{
//	    Host:      "0.0.0.0",
//	    Port:      8765,
//	    ByteOrder: wire.LittleEndian,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until ctx is cancelled or a shutdown signal arrives
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Capture
//
// With CaptureDir set, every inbound frame is appended to
// capture-<timestamp>.jsonl as a CaptureRecord. tools/validate_captures.go
// replays these files through the decoder.
//
// # Graceful Shutdown
//
// On SIGINT, SIGTERM or context cancellation the server stops accepting
// connections, sends a close frame to every client and waits for the
// connection goroutines to finish.
package server
