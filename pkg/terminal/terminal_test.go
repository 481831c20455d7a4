package terminal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/auth"
	"github.com/antibyte/nxterm/pkg/diskstore"
	"github.com/antibyte/nxterm/pkg/shared"
)

func newTestServer(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	store, err := diskstore.Open(filepath.Join(t.TempDir(), "ws.db"))
	require.NoError(t, err)

	h := NewHandler(store)
	server := httptest.NewServer(auth.RequireSession(h.HandleWebSocket))
	t.Cleanup(func() {
		h.Shutdown()
		server.Close()
		store.Close()
	})
	return h, server
}

func dial(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	token, err := auth.GenerateSessionToken(sessionID)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) shared.Message {
	t.Helper()
	for {
		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if messageType != websocket.TextMessage {
			continue
		}
		var msg shared.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}
}

func TestWebSocketSession(t *testing.T) {
	h, server := newTestServer(t)
	conn := dial(t, server, "player-1")

	msg := readJSON(t, conn)
	assert.Equal(t, shared.MessageTypeSession, msg.Type)
	assert.Equal(t, "player-1", msg.SessionID)
	assert.Eventually(t, func() bool { return h.ActiveSessions() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(shared.Message{Type: shared.MessageTypeRun, Source: `PRINT "HI"`}))

	var gotFrame bool
	states := map[string]bool{}
	for !gotFrame || !states["end"] {
		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if messageType == websocket.BinaryMessage {
			assert.Len(t, data, FrameSize)
			gotFrame = true
			continue
		}
		var m shared.Message
		require.NoError(t, json.Unmarshal(data, &m))
		if m.Type == shared.MessageTypeState {
			states[m.State] = true
		}
	}
	assert.True(t, states["evaluate"])
}

func TestWebSocketRejectsInvalidMessages(t *testing.T) {
	_, server := newTestServer(t)
	conn := dial(t, server, "player-2")
	readJSON(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"session"}`)))
	msg := readJSON(t, conn)
	assert.Equal(t, shared.MessageTypeError, msg.Type)

	require.NoError(t, conn.WriteJSON(shared.Message{Type: shared.MessageTypeDisk, Name: "../etc"}))
	msg = readJSON(t, conn)
	assert.Equal(t, shared.MessageTypeError, msg.Type)
}

func TestWebSocketRequiresToken(t *testing.T) {
	_, server := newTestServer(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://example.com", true},
		{"http://evil.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, checkOrigin(r))
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", clientIP(r))
}
