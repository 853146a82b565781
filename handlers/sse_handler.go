package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"streak-pickem-go/events"
	"streak-pickem-go/logging"
	"streak-pickem-go/middleware"
	"streak-pickem-go/models"
	"sync"
	"sync/atomic"
	"time"
)

// SSEClient represents a connected SSE client with user context
type SSEClient struct {
	Channel chan string
	UserKey string
}

// SSEHandler streams notifications and leaderboard change events to
// connected clients. Notifications go to the owning user's sessions;
// leaderboard events fan out to everyone.
type SSEHandler struct {
	clientsMu       sync.RWMutex
	clients         map[*SSEClient]bool
	messageCounter  uint64       // Atomic counter for message sequencing
	heartbeatTicker *time.Ticker // Heartbeat timer
	stopHeartbeat   chan bool    // Channel to stop heartbeat
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler() *SSEHandler {
	handler := &SSEHandler{
		clients:       make(map[*SSEClient]bool),
		stopHeartbeat: make(chan bool),
	}

	// Start heartbeat goroutine
	handler.startHeartbeat()

	return handler
}

// Handle serves the SSE stream for one client connection
func (h *SSEHandler) Handle(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	userKey := user.StorageKey()

	logger := logging.WithPrefix("SSE")
	logger.Infof("New client connected from %s (UserKey: %s)", r.RemoteAddr, userKey)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	client := &SSEClient{
		Channel: make(chan string, 100), // Buffer for messages
		UserKey: userKey,
	}

	h.clientsMu.Lock()
	h.clients[client] = true
	h.clientsMu.Unlock()
	defer func() {
		h.clientsMu.Lock()
		delete(h.clients, client)
		h.clientsMu.Unlock()
		close(client.Channel)
		logger.Infof("Client disconnected (UserKey: %s)", userKey)
	}()

	// Flusher for real-time streaming
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// Send initial connection message using proper SSE format
	fmt.Fprintf(w, "event: connection\ndata: SSE connection established\n\n")
	flusher.Flush()

	// Listen for messages
	for {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return
			}
			fmt.Fprint(w, message)
			flusher.Flush()

		case <-r.Context().Done():
			logger.Debugf("Client context cancelled (UserKey: %s)", userKey)
			return
		}
	}
}

// Notify sends a notification to every session of the given user
func (h *SSEHandler) Notify(userKey string, notification models.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		logging.WithPrefix("SSE").Warnf("Failed to encode notification: %v", err)
		return
	}

	msgID := h.getNextMessageID()
	message := fmt.Sprintf("id: %d\nevent: notification\ndata: %s\n\n", msgID, payload)

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for client := range h.clients {
		if client.UserKey != userKey {
			continue
		}
		h.sendMessageToClient(client, message)
	}
}

// RunLeaderboardRelay pumps broadcast events into connected clients until
// the context is cancelled.
func (h *SSEHandler) RunLeaderboardRelay(ctx context.Context, broadcaster *events.Broadcaster) {
	logger := logging.WithPrefix("SSE")

	eventCh, err := broadcaster.Subscribe(ctx)
	if err != nil {
		logger.Errorf("Failed to subscribe to leaderboard events: %v", err)
		return
	}

	for evt := range eventCh {
		payload, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		h.BroadcastToAllClients("leaderboard", string(payload))
	}
	logger.Debug("Leaderboard relay stopped")
}

// getNextMessageID returns the next atomic message ID for SSE ordering
func (h *SSEHandler) getNextMessageID() uint64 {
	return atomic.AddUint64(&h.messageCounter, 1)
}

// BroadcastToAllClients sends a message with sequence ID to all connected SSE clients
func (h *SSEHandler) BroadcastToAllClients(eventType, data string) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msgID := h.getNextMessageID()
	message := fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", msgID, eventType, data)

	for client := range h.clients {
		h.sendMessageToClient(client, message)
	}
}

// sendMessageToClient delivers without blocking; full channels drop
func (h *SSEHandler) sendMessageToClient(client *SSEClient, message string) bool {
	select {
	case client.Channel <- message:
		return true
	default:
		logging.WithPrefix("SSE").Warnf("Client channel full, skipping message")
		return false
	}
}

// startHeartbeat keeps idle connections alive through proxies
func (h *SSEHandler) startHeartbeat() {
	h.heartbeatTicker = time.NewTicker(30 * time.Second)
	go func() {
		for {
			select {
			case <-h.heartbeatTicker.C:
				h.sendHeartbeat()
			case <-h.stopHeartbeat:
				h.heartbeatTicker.Stop()
				return
			}
		}
	}()
}

func (h *SSEHandler) sendHeartbeat() {
	h.BroadcastToAllClients("heartbeat", fmt.Sprintf(`{"time":%d}`, time.Now().UnixMilli()))
}

// Stop shuts down the heartbeat goroutine
func (h *SSEHandler) Stop() {
	close(h.stopHeartbeat)
}
