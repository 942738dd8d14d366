package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/version"
	"github.com/overdrivekit/overdrive/internal/wire"
)

type testReply struct {
	Type    string          `json:"type"`
	Length  int             `json:"length"`
	Message json.RawMessage `json:"message"`
	Vehicle map[string]any  `json:"vehicle"`
	Error   string          `json:"error"`
}

func newTestBridge(t *testing.T, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readReply(t *testing.T, conn *websocket.Conn) testReply {
	t.Helper()
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, mt)
	var reply testReply
	require.NoError(t, json.Unmarshal(data, &reply))
	return reply
}

func TestHealthz(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestVersionEndpoint(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})

	resp, err := http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info version.BuildInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, version.Commit, info.Commit)
}

func TestBinaryFrameDecoded(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})
	conn := dial(t, ts, "?name=Skull&address=e6:d8:52:f1:d9:43")

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x03, 0x19, 0xCD, 0xAB}))
	reply := readReply(t, conn)

	assert.Empty(t, reply.Error)
	assert.Equal(t, "VersionResponse", reply.Type)
	assert.Equal(t, 4, reply.Length)
	assert.Equal(t, float64(0xABCD), reply.Vehicle["version"])
	assert.Equal(t, "Skull", reply.Vehicle["name"])
	assert.Equal(t, "e6:d8:52:f1:d9:43", reply.Vehicle["address"])

	var msg map[string]any
	require.NoError(t, json.Unmarshal(reply.Message, &msg))
	assert.Equal(t, "VersionResponse", msg["msg_id"])
	assert.Equal(t, float64(3), msg["size"])
}

func TestVehicleStatePerConnection(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.BigEndian})
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{3, 0x1b, 0x0E, 0xD8}))
	first := readReply(t, conn)
	require.Equal(t, "BatteryLevelResponse", first.Type)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{3, 0x19, 0x26, 0x71}))
	second := readReply(t, conn)

	assert.Equal(t, float64(0x0ED8), second.Vehicle["battery_level"])
	assert.Equal(t, float64(0x2671), second.Vehicle["version"])
	assert.Equal(t, float64(2), second.Vehicle["messages"])

	other := dial(t, ts, "")
	require.NoError(t, other.WriteMessage(websocket.BinaryMessage, []byte{1, 0x16}))
	fresh := readReply(t, other)
	assert.Equal(t, "PingRequest", fresh.Type)
	assert.Equal(t, float64(0), fresh.Vehicle["version"])
}

func TestBadFrameReturnsError(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x03, 0x19, 0xCD}))
	reply := readReply(t, conn)

	assert.Contains(t, reply.Error, "size mismatch")
	assert.Empty(t, reply.Type)
	assert.Nil(t, reply.Vehicle)

	// connection stays usable
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x17}))
	assert.Equal(t, "PingResponse", readReply(t, conn).Type)
}

func TestNonFiniteOffsetReplied(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.BigEndian})
	conn := dial(t, ts, "")

	// OffsetFromRoadCentreUpdate with a NaN offset
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{6, 0x2d, 0x7F, 0xC0, 0x00, 0x00, 0x01}))
	reply := readReply(t, conn)

	assert.Empty(t, reply.Error)
	assert.Equal(t, "OffsetFromRoadCentreUpdate", reply.Type)
	assert.Equal(t, "NaN", reply.Vehicle["offset_from_road_centre_mm"])
	var msg map[string]any
	require.NoError(t, json.Unmarshal(reply.Message, &msg))
	assert.Equal(t, "NaN", msg["offset_from_road_centre_mm"])
	assert.Equal(t, float64(1), msg["lane_change_id"])

	// the NaN stays in the vehicle state; later replies still encode
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{3, 0x19, 0xAB, 0xCD}))
	next := readReply(t, conn)
	assert.Empty(t, next.Error)
	assert.Equal(t, "VersionResponse", next.Type)
	assert.Equal(t, float64(0xABCD), next.Vehicle["version"])
	assert.Equal(t, "NaN", next.Vehicle["offset_from_road_centre_mm"])
}

func TestUnencodableReplyFallsBack(t *testing.T) {
	srv, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})
	conn := dial(t, ts, "")

	// drive writeJSON from the server side of the connection
	var serverConn *websocket.Conn
	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		for _, c := range srv.activeConns {
			serverConn = c
		}
		return serverConn != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.writeJSON(serverConn, map[string]any{"bad": make(chan int)}))
	reply := readReply(t, conn)
	assert.Contains(t, reply.Error, "encode reply")
}

func TestCommandRequestEncoded(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"set-speed","speed":500,"accel":1000}`)))
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, mt)
	assert.Equal(t, []byte{0x06, 0x24, 0xF4, 0x01, 0xE8, 0x03, 0x00}, data)

	msg, err := protocol.DecodeMessage(data, wire.LittleEndian)
	require.NoError(t, err)
	speed, ok := msg.(*protocol.SetSpeed)
	require.True(t, ok)
	assert.Equal(t, int16(500), speed.Speed)
	assert.Equal(t, int16(1000), speed.Accel)
}

func TestCommandRequestBigEndian(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.BigEndian})
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"set-speed","speed":500,"accel":1000}`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x24, 0x01, 0xF4, 0x03, 0xE8, 0x00}, data)
}

func TestCommandRequestErrors(t *testing.T) {
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian})
	conn := dial(t, ts, "")

	tests := []struct {
		name    string
		request string
		want    string
	}{
		{"not json", `set-speed`, "invalid command request"},
		{"unknown command", `{"command":"fly"}`, "unknown command"},
		{"speed out of range", `{"command":"set-speed","speed":40000}`, "out of range"},
		{"missing turn", `{"command":"turn"}`, "turn is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.request)))
			reply := readReply(t, conn)
			assert.Contains(t, reply.Error, tt.want)
		})
	}
}

func TestCaptureFile(t *testing.T) {
	dir := t.TempDir()
	_, ts := newTestBridge(t, &Config{ByteOrder: wire.LittleEndian, CaptureDir: dir})
	conn := dial(t, ts, "")

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x03, 0x19, 0xCD, 0xAB}))
	readReply(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x03, 0x19}))
	readReply(t, conn)

	matches, err := filepath.Glob(filepath.Join(dir, "capture-*.jsonl"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()

	var records []CaptureRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec CaptureRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].MessageNum)
	assert.Equal(t, "binary", records[0].FrameType)
	assert.Equal(t, "little", records[0].ByteOrder)
	assert.Equal(t, "VersionResponse", records[0].Decoded)
	mt, ok := records[0].DecodedType()
	assert.True(t, ok)
	assert.Equal(t, protocol.MsgVersionResponse, mt)
	payload, err := records[0].Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x19, 0xCD, 0xAB}, payload)

	assert.Equal(t, 2, records[1].MessageNum)
	assert.NotEmpty(t, records[1].Error)
	_, ok = records[1].DecodedType()
	assert.False(t, ok)
}

func TestStartAndShutdown(t *testing.T) {
	srv, err := New(&Config{Host: "127.0.0.1", Port: 0, ByteOrder: wire.LittleEndian})
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	url := "ws://" + srv.Addr().String() + "/ws"
	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		c, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		conn = c
		return true
	}, 5*time.Second, 20*time.Millisecond)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.GetActiveConnections() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Equal(t, 0, srv.GetActiveConnections())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
