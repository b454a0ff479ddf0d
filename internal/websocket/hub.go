// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
// This enables clear observability in logs and metrics.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was canceled.
	// This is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	// This may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeVoteRecorded        = "vote_recorded"
	MessageTypeInteractionRecorded = "interaction_recorded"
	MessageTypePing                = "ping"
	MessageTypePong                = "pong"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// Connection timing, resolved from config at construction.
	// pongWait is always twice pingPeriod so a client survives one
	// missed pong before the read deadline declares it dead.
	pingPeriod     time.Duration
	pongWait       time.Duration
	writeWait      time.Duration
	maxMessageSize int64
}

// NewHub creates a new Hub. A nil config selects the built-in defaults.
func NewHub(cfg *config.WebSocketConfig) *Hub {
	pingPeriod := defaultPingPeriod
	writeWait := defaultWriteWait
	maxMessageSize := int64(defaultMaxMessageSize)

	if cfg != nil {
		if cfg.PingInterval > 0 {
			pingPeriod = cfg.PingInterval
		}
		if cfg.WriteTimeout > 0 {
			writeWait = cfg.WriteTimeout
		}
		if cfg.MaxMessageSize > 0 {
			maxMessageSize = cfg.MaxMessageSize
		}
	}

	return &Hub{
		broadcast:      make(chan Message, 256),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		pingPeriod:     pingPeriod,
		pongWait:       2 * pingPeriod,
		writeWait:      writeWait,
		maxMessageSize: maxMessageSize,
	}
}

// Run starts the hub (blocks forever, no context support).
//
// Deprecated: Use RunWithContext for supervised operation.
//
// DETERMINISM: Uses priority-based selection to ensure predictable behavior:
// - Priority 1: Client lifecycle events (Register/Unregister)
// - Priority 2: Broadcast messages
// This ensures client state is always consistent before processing messages.
func (h *Hub) Run() {
	for {
		// DETERMINISM: Priority-based selection prevents non-deterministic
		// ordering when multiple channels are ready simultaneously.
		// When Go's select has multiple ready channels, it picks randomly.
		// Priority selection ensures consistent, predictable behavior.

		// Priority 1: Handle client lifecycle events first (non-blocking check)
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
			// No lifecycle events pending, proceed to broadcast
		}

		// Priority 2: Handle broadcast messages (blocking wait)
		select {
		case client := <-h.Register:
			h.addClient(client)

		case client := <-h.Unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// RunWithContext starts the hub with context support for graceful shutdown.
// This method is designed for use with suture supervision.
//
// When the context is canceled:
//  1. All connected clients are gracefully closed
//  2. The method returns ctx.Err()
//
// This allows the hub to be restarted by a supervisor without leaving
// orphaned connections.
//
// DETERMINISM: Uses priority-based selection to ensure predictable behavior:
// - Priority 1: Context cancellation (shutdown)
// - Priority 2: Client lifecycle events (Register/Unregister)
// - Priority 3: Broadcast messages
//
// OBSERVABILITY: Shutdown logs include:
// - Component identification ("websocket-hub")
// - Shutdown reason (context_canceled, context_deadline)
// - Client count at shutdown time
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// DETERMINISM: Priority-based selection prevents non-deterministic
		// ordering when multiple channels are ready simultaneously.

		// Priority 1: Check for shutdown (highest priority, non-blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
			// Context not canceled, continue
		}

		// Priority 2: Handle client lifecycle events (non-blocking check)
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
			// No lifecycle events pending
		}

		// Priority 3: Handle broadcast messages or wait for any event (blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.addClient(client)

		case client := <-h.Unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// addClient registers a client with the hub.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

// removeClient unregisters a client and closes its send channel.
// Removing an unknown client is a no-op; readPump and broadcastToClients
// can both race to remove the same client.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		metrics.WSConnections.Dec()
	}
	total := len(h.clients)
	h.mu.Unlock()

	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// logGracefulShutdown logs the shutdown with structured fields for observability.
// This method:
//  1. Closes all connected clients
//  2. Logs structured shutdown information without error field
//
// Note: ctx.Err() is NOT logged as an error because context cancellation
// is expected behavior during graceful shutdown. Logging it as .Err() would
// confuse operators monitoring error logs.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()

	h.closeAllClients()

	reason := getShutdownReason(ctx)

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// getShutdownReason determines the shutdown reason from the context error.
// This provides clear observability for operators monitoring logs.
func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.Canceled:
		return ShutdownReasonContextCanceled
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		// Fallback for any future context error types
		return ShutdownReasonContextCanceled
	}
}

// broadcastToClients sends a message to all connected clients in a deterministic order.
// DETERMINISM: Sorts clients by ID to ensure consistent iteration order.
// This prevents non-deterministic message delivery order which could cause:
// - Inconsistent client behavior in tests
// - Non-reproducible race conditions
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	// Sort by client ID for deterministic ordering
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	// Track clients to remove (can't modify map during iteration)
	var toRemove []*Client

	delivered := 0
	for _, client := range clients {
		select {
		case client.send <- message:
			delivered++
		default:
			// Channel full or closed, mark for removal
			toRemove = append(toRemove, client)
		}
	}
	metrics.WSMessagesSent.Add(float64(delivered))

	// Remove failed clients
	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
		metrics.WSMessagesDropped.Inc()
	}
}

// closeAllClients gracefully closes all connected WebSocket clients.
// Called during shutdown to ensure clean termination.
// DETERMINISM: Closes clients in ID order to ensure consistent shutdown behavior.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
	logging.Info().Msg("closed all websocket clients during shutdown")
}

// VoteRecordedData represents data sent with vote_recorded messages.
// Broadcast payloads never carry user or session identifiers; every
// connected client sees every event.
type VoteRecordedData struct {
	Timestamp   string             `json:"timestamp"`
	WinnerID    string             `json:"winner_id"`
	LoserID     string             `json:"loser_id"`
	ContentType models.ContentType `json:"content_type"`
	TotalVotes  int                `json:"total_votes"`
}

// BroadcastVoteRecorded notifies all clients that a vote was recorded.
func (h *Hub) BroadcastVoteRecorded(vote *models.Vote, totalVotes int) {
	data := VoteRecordedData{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		WinnerID:    vote.WinnerID,
		LoserID:     vote.LoserID,
		ContentType: vote.ContentType,
		TotalVotes:  totalVotes,
	}

	message := Message{
		Type: MessageTypeVoteRecorded,
		Data: data,
	}

	select {
	case h.broadcast <- message:
		logging.Debug().
			Int("clients", h.GetClientCount()).
			Str("winner_id", vote.WinnerID).
			Msg("broadcast vote_recorded")
	default:
		metrics.WSMessagesDropped.Inc()
		logging.Warn().Msg("broadcast channel full, dropping vote_recorded message")
	}
}

// InteractionRecordedData represents data sent with interaction_recorded messages.
type InteractionRecordedData struct {
	Timestamp string                 `json:"timestamp"`
	ContentID string                 `json:"content_id"`
	Kind      models.InteractionKind `json:"kind"`
}

// BroadcastInteractionRecorded notifies all clients that a content interaction
// was recorded.
func (h *Hub) BroadcastInteractionRecorded(interaction *models.Interaction) {
	data := InteractionRecordedData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ContentID: interaction.ContentRef,
		Kind:      interaction.Kind,
	}

	message := Message{
		Type: MessageTypeInteractionRecorded,
		Data: data,
	}

	select {
	case h.broadcast <- message:
		logging.Debug().
			Int("clients", h.GetClientCount()).
			Str("content_id", interaction.ContentRef).
			Str("kind", string(interaction.Kind)).
			Msg("broadcast interaction_recorded")
	default:
		metrics.WSMessagesDropped.Inc()
		logging.Warn().Msg("broadcast channel full, dropping interaction_recorded message")
	}
}

// BroadcastJSON sends a JSON message to all connected clients
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{
		Type: messageType,
		Data: data,
	}

	select {
	case h.broadcast <- message:
	default:
		metrics.WSMessagesDropped.Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping JSON message")
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
