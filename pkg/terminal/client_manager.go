package terminal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/logger"
)

var (
	ErrTooManySessions = errors.New("too many console sessions")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// RateLimitInfo speichert Rate-Limiting-Informationen pro IP
type RateLimitInfo struct {
	requests  int
	lastReset time.Time
}

// ClientManager verwaltet Client-Verbindungen mit Session-IDs
type ClientManager struct {
	clients     map[string]*Client        // sessionID -> Client
	rateLimits  map[string]*RateLimitInfo // ipAddress -> RateLimitInfo
	maxClients  int
	maxRequests int
	mu          sync.RWMutex
}

// NewClientManager erstellt einen neuen ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:     make(map[string]*Client),
		rateLimits:  make(map[string]*RateLimitInfo),
		maxClients:  configuration.GetInt("Console", "max_sessions", 32),
		maxRequests: configuration.GetInt("Network", "max_connections_per_minute", 30),
	}
}

// AddClient registriert client. Eine bestehende Verbindung derselben
// Session wird ersetzt und geschlossen.
func (cm *ClientManager) AddClient(sessionID string, client *Client) error {
	cm.mu.Lock()
	old, exists := cm.clients[sessionID]
	if !exists && len(cm.clients) >= cm.maxClients {
		cm.mu.Unlock()
		logger.Warn(logger.AreaSession, "Session limit reached (%d), rejecting %s", cm.maxClients, sessionID)
		return ErrTooManySessions
	}
	cm.clients[sessionID] = client
	cm.mu.Unlock()

	if exists && old != client {
		logger.Info(logger.AreaSession, "Session %s reconnected, closing previous connection", sessionID)
		old.close()
	}
	logger.Debug(logger.AreaSession, "Client added for session %s", sessionID)
	return nil
}

// RemoveClient entfernt client, falls er noch für die Session registriert ist
func (cm *ClientManager) RemoveClient(sessionID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if current, exists := cm.clients[sessionID]; exists && current == client {
		delete(cm.clients, sessionID)
		logger.Debug(logger.AreaSession, "Client removed for session %s", sessionID)
	}
}

// GetClientCount gibt die Anzahl der verbundenen Clients zurück
func (cm *ClientManager) GetClientCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// HasClient prüft, ob ein Client für die Session existiert
func (cm *ClientManager) HasClient(sessionID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.clients[sessionID]
	return exists
}

// CloseAll schließt alle Verbindungen, etwa beim Herunterfahren
func (cm *ClientManager) CloseAll() {
	cm.mu.RLock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, c := range cm.clients {
		clients = append(clients, c)
	}
	cm.mu.RUnlock()

	for _, c := range clients {
		c.close()
	}
}

// CheckRateLimit zählt einen Verbindungsaufbau von ipAddress
func (cm *ClientManager) CheckRateLimit(ipAddress string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	now := time.Now()
	rateLimit, exists := cm.rateLimits[ipAddress]
	if !exists || now.Sub(rateLimit.lastReset) > time.Minute {
		rateLimit = &RateLimitInfo{lastReset: now}
		cm.rateLimits[ipAddress] = rateLimit
	}

	rateLimit.requests++
	if rateLimit.requests > cm.maxRequests {
		logger.SecurityWarn("Rate limit exceeded for IP %s: %d connections in last minute", ipAddress, rateLimit.requests)
		return fmt.Errorf("%w: too many connections from %s", ErrRateLimited, ipAddress)
	}
	return nil
}

// CleanupRateLimits entfernt abgelaufene Einträge
func (cm *ClientManager) CleanupRateLimits() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	now := time.Now()
	for ip, info := range cm.rateLimits {
		if now.Sub(info.lastReset) > time.Minute {
			delete(cm.rateLimits, ip)
		}
	}
}
