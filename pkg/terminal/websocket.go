package terminal

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/shared"
)

// WebSocket-Konfiguration aus der [Network] Sektion
func getWriteWait() time.Duration {
	return configuration.GetDuration("Network", "write_wait_timeout", 10*time.Second)
}

func getPongWait() time.Duration {
	return configuration.GetDuration("Network", "pong_timeout", 60*time.Second)
}

func getPingPeriod() time.Duration {
	return (getPongWait() * 9) / 10
}

func getMaxMessageSize() int64 {
	return int64(configuration.GetInt("Network", "max_message_size_kb", 160) * 1024)
}

func getSendBuffer() int {
	return configuration.GetInt("Network", "send_buffer", 8)
}

func getMaxMessagesPerSecond() int {
	return configuration.GetInt("Network", "max_messages_per_second", 120)
}

// outbound is one websocket message: a JSON text message or a binary
// frame.
type outbound struct {
	binary bool
	data   []byte
}

func marshalMessage(msg shared.Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Client repräsentiert eine WebSocket-Verbindung mit ihrer Konsole
type Client struct {
	conn      *websocket.Conn
	send      chan outbound
	handler   *Handler
	session   *Session
	ipAddress string
	sessionID string
	shutdown  chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, h *Handler, sessionID, ipAddress string) *Client {
	return &Client{
		conn:      conn,
		send:      make(chan outbound, getSendBuffer()),
		handler:   h,
		ipAddress: ipAddress,
		sessionID: sessionID,
		shutdown:  make(chan struct{}),
	}
}

// queue hands o to the write pump without blocking the console. Frames
// are dropped when the client is slow, other messages wait briefly.
func (c *Client) queue(o outbound) bool {
	select {
	case <-c.shutdown:
		return false
	case c.send <- o:
		return true
	default:
	}
	if o.binary {
		return false
	}

	timer := time.NewTimer(getWriteWait())
	defer timer.Stop()
	select {
	case c.send <- o:
		return true
	case <-c.shutdown:
	case <-timer.C:
		logger.WebSocketWarn("Send timeout for session %s", c.sessionID)
	}
	return false
}

// close beendet beide Pumps und die Konsole
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.shutdown)
		c.conn.Close()
	})
}

// readPump liest Nachrichten vom WebSocket und reicht sie an die Konsole
func (c *Client) readPump() {
	defer c.handler.cleanupClient(c)

	c.conn.SetReadLimit(getMaxMessageSize())
	c.conn.SetReadDeadline(time.Now().Add(getPongWait()))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(getPongWait()))
		return nil
	})

	maxPerSecond := getMaxMessagesPerSecond()
	windowStart := time.Now()
	count := 0

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logger.WebSocketWarn("Unexpected close for session %s: %v", c.sessionID, err)
			} else {
				logger.WebSocketDebug("Connection closed for session %s: %v", c.sessionID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		if now := time.Now(); now.Sub(windowStart) >= time.Second {
			windowStart = now
			count = 0
		}
		count++
		if count > maxPerSecond {
			logger.SecurityWarn("Message rate exceeded by %s (session %s)", c.ipAddress, c.sessionID)
			continue
		}

		msg, err := c.handler.jsonValidator.ValidateMessage(data)
		if err != nil {
			logger.SecurityWarn("Invalid message from %s: %v", c.ipAddress, err)
			c.sendError("Invalid message")
			continue
		}
		if err := c.handler.validateMessage(msg); err != nil {
			logger.SecurityWarn("Rejected %s message from %s: %v", msg.Type, c.ipAddress, err)
			c.sendError(err.Error())
			continue
		}
		if !c.session.deliver(msg) {
			logger.WebSocketWarn("Input queue full for session %s, dropping %s", c.sessionID, msg.Type)
		}
	}
}

func (c *Client) sendError(content string) {
	data, err := marshalMessage(shared.Message{Type: shared.MessageTypeError, Content: content})
	if err == nil {
		c.queue(outbound{data: data})
	}
}

// writePump schreibt Nachrichten und Pings auf den WebSocket
func (c *Client) writePump() {
	ticker := time.NewTicker(getPingPeriod())
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case o := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(getWriteWait()))
			messageType := websocket.TextMessage
			if o.binary {
				messageType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(messageType, o.data); err != nil {
				logger.WebSocketDebug("Write failed for session %s: %v", c.sessionID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(getWriteWait()))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.WebSocketDebug("Failed to send ping to session %s: %v", c.sessionID, err)
				return
			}
		case <-c.shutdown:
			return
		}
	}
}
