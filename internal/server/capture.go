package server

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/protocol"
)

// CaptureRecord is one line of a capture file.
type CaptureRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	MessageNum   int       `json:"message_num"`
	RemoteAddr   string    `json:"remote_addr"`
	Direction    string    `json:"direction"`
	FrameType    string    `json:"frame_type"`
	ByteOrder    string    `json:"byte_order"`
	PayloadLen   int       `json:"payload_length"`
	PayloadHex   string    `json:"payload_hex"`
	PayloadAscii string    `json:"payload_ascii"`
	Decoded      string    `json:"decoded,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Payload returns the captured bytes.
func (r *CaptureRecord) Payload() ([]byte, error) {
	return hex.DecodeString(r.PayloadHex)
}

// DecodedType returns the message type recorded in Decoded. ok is false for
// text frames and frames that failed to decode.
func (r *CaptureRecord) DecodedType() (t protocol.MessageType, ok bool) {
	return protocol.ParseMessageType(r.Decoded)
}

// capture appends records to a JSON Lines file.
type capture struct {
	mu   sync.Mutex
	path string
}

// newCapture returns nil when dir is empty (capture disabled).
func newCapture(dir string) (*capture, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create capture directory: %w", err)
	}
	name := fmt.Sprintf("capture-%s.jsonl", time.Now().Format("20060102-150405"))
	return &capture{path: filepath.Join(dir, name)}, nil
}

// Record appends rec. A nil capture ignores the call.
func (c *capture) Record(rec CaptureRecord) {
	if c == nil {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		logging.Error("Failed to marshal capture record", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logging.Error("Failed to open capture file",
			zap.String("filename", c.path),
			zap.Error(err),
		)
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		logging.Error("Failed to write to capture file",
			zap.String("filename", c.path),
			zap.Error(err),
		)
		return
	}

	logging.Debug("Saved frame to capture file",
		zap.String("filename", c.path),
		zap.Int("message_num", rec.MessageNum),
	)
}

// toASCII converts bytes to ASCII string (non-printable chars become '.')
func toASCII(data []byte) string {
	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	return string(result)
}
