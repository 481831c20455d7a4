// Package terminal connects browser clients over WebSocket to consoles.
// Every connection gets its own session with a Core; frames go out as
// binary messages, everything else as JSON.
package terminal

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/antibyte/nxterm/pkg/auth"
	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/shared"
)

// Handler verwaltet WebSocket-Verbindungen und ihre Konsolen
type Handler struct {
	store      DiskStore
	upgrader   websocket.Upgrader
	bootSource string

	// Sicherheits-Komponenten
	clientManager     *ClientManager
	jsonValidator     *JSONValidator
	securityValidator *SecurityValidator
}

// NewHandler erstellt einen Handler, dessen Konsolen Disketten und
// persistenten Speicher in store ablegen
func NewHandler(store DiskStore) *Handler {
	h := &Handler{
		store:             store,
		clientManager:     NewClientManager(),
		jsonValidator:     NewJSONValidator(),
		securityValidator: NewSecurityValidator(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: FrameSize + 1024,
			CheckOrigin:     checkOrigin,
		},
	}

	if path := configuration.GetString("Console", "boot_program", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn(logger.AreaConfig, "Boot program %s not loaded: %v", path, err)
		} else {
			h.bootSource = string(data)
			logger.ConfigInfo("Boot program %s loaded (%d bytes)", path, len(data))
		}
	}
	return h
}

// checkOrigin erlaubt Anfragen ohne Origin, vom eigenen Host und aus
// Network.allowed_origins
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range strings.Split(configuration.GetString("Network", "allowed_origins", ""), ",") {
		if allowed = strings.TrimSpace(allowed); allowed != "" && origin == allowed {
			return true
		}
	}
	logger.SecurityWarn("WebSocket request from disallowed origin rejected: %s", origin)
	return false
}

// HandleWebSocket startet eine Konsole für die Verbindung. Die Session-ID
// kommt aus dem Token, das auth.RequireSession geprüft hat.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ipAddress := clientIP(r)

	if err := h.clientManager.CheckRateLimit(ipAddress); err != nil {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	sessionID, ok := auth.GetSessionIDFromContext(r.Context())
	if !ok {
		sessionID = uuid.NewString()
	}
	if err := h.securityValidator.ValidateSessionID(sessionID); err != nil {
		logger.SecurityWarn("Invalid session ID from %s: %v", ipAddress, err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WebSocketError("Upgrade failed for %s: %v", ipAddress, err)
		return
	}

	client := newClient(conn, h, sessionID, ipAddress)
	if err := h.clientManager.AddClient(sessionID, client); err != nil {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}
	client.session = newSession(sessionID, h.store, client.queue)
	logger.WebSocketInfo("Client %s connected with session %s (%d active)", ipAddress, sessionID, h.clientManager.GetClientCount())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-client.shutdown
		cancel()
	}()
	go func() {
		client.session.run(ctx)
		client.close()
	}()
	go client.writePump()

	if data, err := marshalMessage(shared.Message{Type: shared.MessageTypeSession, SessionID: sessionID}); err == nil {
		client.queue(outbound{data: data})
	}
	if h.bootSource != "" {
		client.session.deliver(&shared.Message{Type: shared.MessageTypeRun, Source: h.bootSource})
	}

	go client.readPump()
}

// validateMessage prüft den Inhalt einer dekodierten Nachricht
func (h *Handler) validateMessage(msg *shared.Message) error {
	switch msg.Type {
	case shared.MessageTypeRun:
		return h.securityValidator.ValidateSource(msg.Source)
	case shared.MessageTypeDisk:
		return h.securityValidator.ValidateDiskName(msg.Name)
	case shared.MessageTypeInput:
		return h.securityValidator.ValidateKey(msg.Key)
	}
	return nil
}

func (h *Handler) cleanupClient(c *Client) {
	c.close()
	h.clientManager.RemoveClient(c.sessionID, c)
	logger.WebSocketInfo("Client %s disconnected (session %s)", c.ipAddress, c.sessionID)
}

// Shutdown schließt alle Verbindungen
func (h *Handler) Shutdown() {
	h.clientManager.CloseAll()
}

// ActiveSessions gibt die Anzahl verbundener Konsolen zurück
func (h *Handler) ActiveSessions() int {
	return h.clientManager.GetClientCount()
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
