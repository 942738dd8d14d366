// Package protocol implements the vehicle message codec.
//
// Vehicles exchange short binary messages over a BLE characteristic. Every
// message fits in one 20 byte packet and starts with the same two bytes:
//
//	[0] size    bytes following this field (total length - 1)
//	[1] msg_id  MessageType tag
//	[2+]        type-specific fields, no padding
//
// Each message type has a fixed encoded size. Decoding and encoding check
// the buffer length against that size before touching any byte and fail
// with ErrSizeMismatch otherwise; that is the only error the codec raises.
// Enum fields are lenient: a byte outside the known range maps to the
// enum's default (MsgUnknown for the type tag) instead of failing.
//
// Byte order is always chosen by the caller. Vehicles use little-endian on
// the air; the fixtures in this package's tests are big-endian.
//
// # Message Types
//
// Commands (controller to vehicle):
//   - SDKMode, SetSpeed, ChangeLane, CancelLaneChange, Turn
//   - SetOffsetFromRoadCentre, SetLights, LightsPattern, SetConfigParams
//   - PingRequest, VersionRequest, BatteryLevelRequest, Disconnect
//
// Responses and telemetry (vehicle to controller):
//   - PingResponse, VersionResponse, BatteryLevelResponse
//   - PositionUpdate, TransitionUpdate, IntersectionUpdate
//   - OffsetFromRoadCentreUpdate, VehicleDelocalized
//
// Bare messages with no fields, and tags this package does not know, are
// represented by Envelope.
//
// # Usage Example - Encoding
//
//	msg := protocol.NewSetSpeed(500, 1000)
//	data, err := protocol.Encode(msg, protocol.LittleEndian)
//	if err != nil {
//	    return err
//	}
//	// write data to WriteCharacteristic
//
// # Usage Example - Decoding
//
//	msg, err := protocol.DecodeMessage(notification, protocol.LittleEndian)
//	if err != nil {
//	    return err
//	}
//	switch m := msg.(type) {
//	case *protocol.PositionUpdate:
//	    fmt.Printf("piece %d at %.1fmm\n", m.RoadPieceID, m.Offset)
//	case *protocol.Envelope:
//	    fmt.Printf("bare %s\n", m.Type())
//	}
//
// # Light Patterns
//
// LightsPattern is the one message built incrementally. NewLightsPattern
// fills the first of three slots and Append fills the next, returning 0 once
// all three are used. Empty slots are encoded as five zero bytes.
package protocol
