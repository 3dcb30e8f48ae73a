package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/engine"
	"github.com/simslyfe/server/internal/events"
	"github.com/simslyfe/server/internal/platform/logger"
	"github.com/simslyfe/server/internal/platform/metrics"
)

// Envelope is the frame every outbound message travels in.
type Envelope struct {
	Type    string      `json:"type"` // "state", "event", "notice"
	Payload interface{} `json:"payload"`
}

// Notice is a user-facing toast pushed over the socket.
type Notice struct {
	Level   string `json:"level"` // "info" or "error"
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	store      *engine.Store
}

// NewHub initializes a new WebSocket Hub bound to the life store.
func NewHub(log *logger.Logger, store *engine.Store) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		store:      store,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("WebSocket client connected")
			// New clients start from the current life.
			client.sendState(h.store.Snapshot())
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.Get().RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) broadcastEnvelope(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("failed to serialize broadcast", "type", env.Type, "error", err)
		return
	}
	h.broadcast <- payload
}

// BroadcastState pushes a full life snapshot to every client.
func (h *Hub) BroadcastState(s life.State) {
	h.broadcastEnvelope(Envelope{Type: "state", Payload: s})
}

// Info implements notify.Notifier by pushing a toast to every client.
func (h *Hub) Info(title, message string) {
	h.broadcastEnvelope(Envelope{Type: "notice", Payload: Notice{Level: "info", Title: title, Message: message}})
}

// Error implements notify.Notifier by pushing an error toast.
func (h *Hub) Error(title, message string) {
	h.broadcastEnvelope(Envelope{Type: "notice", Payload: Notice{Level: "error", Title: title, Message: message}})
}

// StartEventPoller pushes newly audited events to all clients. The hub
// polls rather than subscribing so it runs independently from the
// engine's mutation path.
func (h *Hub) StartEventPoller(ctx context.Context, log *events.Log) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessed := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				total := log.Len()
				if total <= lastProcessed {
					continue
				}
				fresh := log.Recent(total - lastProcessed)
				for _, entry := range fresh {
					h.broadcastEnvelope(Envelope{Type: "event", Payload: entry})
				}
				lastProcessed = total
			}
		}
	}()
}
