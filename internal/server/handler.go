package server

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/vehicle"
	"github.com/overdrivekit/overdrive/internal/wire"
)

// FrameReply is the JSON text frame sent back for every binary frame.
type FrameReply struct {
	Type    string           `json:"type,omitempty"`
	Length  int              `json:"length,omitempty"`
	Message protocol.Message `json:"message,omitempty"`
	Vehicle *vehicle.State   `json:"vehicle,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// HandleFrame decodes one raw vehicle notification, applies it to v and
// builds the reply. Decode failures are reported in the reply, not as an
// error, so the connection stays open.
func HandleFrame(v *vehicle.Vehicle, remoteAddr string, data []byte, e wire.Endian) FrameReply {
	msg, err := v.Handle(data, e)
	if err != nil {
		logging.Error("Failed to decode vehicle frame",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
			zap.String("hex", hex.EncodeToString(data)),
		)
		return FrameReply{Error: err.Error()}
	}

	logging.Info("Decoded vehicle message",
		zap.String("remote_addr", remoteAddr),
		zap.String("type", msg.Type().String()),
		zap.String("message", msg.String()),
	)

	if !msg.Type().Known() {
		logging.Warn("Unknown message type received",
			zap.String("remote_addr", remoteAddr),
			zap.Uint8("type", uint8(msg.Type())),
			zap.Int("data_len", len(data)),
		)
	}

	state := v.Snapshot()
	return FrameReply{
		Type:    msg.Type().String(),
		Length:  len(data),
		Message: msg,
		Vehicle: &state,
	}
}

// HandleCommand parses a JSON command request and encodes the command it
// names with byte order e.
func HandleCommand(remoteAddr string, data []byte, e wire.Endian) ([]byte, error) {
	var req CommandRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid command request: %w", err)
	}

	msg, err := BuildCommand(&req)
	if err != nil {
		return nil, err
	}

	out, err := protocol.Encode(msg, e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Type(), err)
	}

	logging.Info("Encoded vehicle command",
		zap.String("remote_addr", remoteAddr),
		zap.String("command", req.Command),
		zap.String("message", msg.String()),
		zap.String("hex", hex.EncodeToString(out)),
	)
	return out, nil
}
