package server

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/vehicle"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between frames before the connection is dropped
	readWait = 5 * time.Minute

	// Maximum message size allowed from peer. Vehicle frames are at most
	// 20 bytes; command requests are small JSON documents.
	maxMessageSize = 4096
)

// handleWebSocket upgrades the request and runs the frame loop for one
// client. Each client gets its own vehicle state.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	remoteAddr := r.RemoteAddr
	s.addConn(remoteAddr, conn)
	defer func() {
		_ = conn.Close()
		s.removeConn(remoteAddr)
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()
	logging.LogConnection(remoteAddr, "websocket_upgraded")

	address := r.URL.Query().Get("address")
	if address == "" {
		address = remoteAddr
	}
	v := vehicle.New(r.URL.Query().Get("name"), address)

	s.serveConn(conn, remoteAddr, v)
}

func (s *Server) serveConn(conn *websocket.Conn, remoteAddr string, v *vehicle.Vehicle) {
	conn.SetReadLimit(maxMessageSize)
	messageNum := 0

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))

		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed or error reading frame",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		messageNum++
		logging.LogWebSocketMessage(remoteAddr, "received", mt, data)

		rec := CaptureRecord{
			Timestamp:    time.Now(),
			MessageNum:   messageNum,
			RemoteAddr:   remoteAddr,
			Direction:    "client->bridge",
			ByteOrder:    s.config.ByteOrder.String(),
			PayloadLen:   len(data),
			PayloadHex:   hex.EncodeToString(data),
			PayloadAscii: toASCII(data),
		}

		switch mt {
		case websocket.BinaryMessage:
			rec.FrameType = "binary"
			reply := HandleFrame(v, remoteAddr, data, s.config.ByteOrder)
			rec.Decoded, rec.Error = reply.Type, reply.Error
			s.capture.Record(rec)
			err = s.writeJSON(conn, reply)

		case websocket.TextMessage:
			rec.FrameType = "text"
			s.capture.Record(rec)
			var out []byte
			out, err = HandleCommand(remoteAddr, data, s.config.ByteOrder)
			if err != nil {
				logging.Warn("Rejected command request",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
				err = s.writeJSON(conn, FrameReply{Error: err.Error()})
				break
			}
			err = s.write(conn, websocket.BinaryMessage, out)
		}

		if err != nil {
			logging.Error("Failed to send reply",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

// writeJSON marshals v before opening the frame, so a value that cannot be
// encoded is answered with an error reply instead of a broken frame.
func (s *Server) writeJSON(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("Failed to encode reply",
			zap.String("remote_addr", conn.RemoteAddr().String()),
			zap.Error(err),
		)
		data, err = json.Marshal(FrameReply{Error: fmt.Sprintf("encode reply: %v", err)})
		if err != nil {
			return err
		}
	}
	return s.write(conn, websocket.TextMessage, data)
}

func (s *Server) write(conn *websocket.Conn, mt int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(mt, data); err != nil {
		return err
	}
	logging.LogWebSocketMessage(conn.RemoteAddr().String(), "sent", mt, data)
	return nil
}
