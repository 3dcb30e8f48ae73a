package network

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/simslyfe/server/internal/catalog"
	"github.com/simslyfe/server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
	// Minimum interval between commands from one client.
	commandInterval = 250 * time.Millisecond
)

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Command represents an incoming request from the frontend.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client object to hold connection state. Holds a hub ref to allow
// unregister.
type Client struct {
	hub             *Hub
	conn            *websocket.Conn
	send            chan []byte
	lastCommandTime time.Time
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// sendState queues a state envelope for this client only.
func (c *Client) sendState(s interface{}) {
	payload, err := json.Marshal(Envelope{Type: "state", Payload: s})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// ReadPump pumps messages from the websocket connection to the engine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Error("failed to parse command", "error", err)
			continue
		}

		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd Command) {
	// Rate limiting: the frontend has no legitimate reason to burst.
	if time.Since(c.lastCommandTime) < commandInterval {
		c.hub.logger.Warn("command rate limit exceeded", "type", cmd.Type)
		return
	}
	c.lastCommandTime = time.Now()

	store := c.hub.store
	switch cmd.Type {
	case "advance_year":
		store.AdvanceYear()
	case "enroll":
		c.handleEnroll(cmd.Payload)
	case "drop_enrollment":
		var p struct {
			Penalty int `json:"penalty"`
		}
		if len(cmd.Payload) > 0 {
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				c.hub.logger.Warn("bad drop_enrollment payload", "error", err)
				return
			}
		}
		store.DropEnrollment(p.Penalty)
	case "visit_clinic":
		var p struct {
			Cost int `json:"cost"`
		}
		if len(cmd.Payload) > 0 {
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				c.hub.logger.Warn("bad visit_clinic payload", "error", err)
				return
			}
		}
		store.VisitClinic(p.Cost)
	case "take_part_time_work":
		store.TakePartTimeWork()
	case "invest":
		store.Invest()
	case "plan_date":
		store.PlanDate()
	case "exercise":
		store.Exercise()
	case "apply_for_promotion":
		store.ApplyForPromotion()
	case "reset":
		store.Reset()
	case "get_state":
		c.sendState(store.Snapshot())
		return
	default:
		c.hub.logger.Warn("unknown command", "type", cmd.Type)
		return
	}

	// Every mutating command ends with a fresh snapshot for everyone.
	c.hub.BroadcastState(store.Snapshot())
}

func (c *Client) handleEnroll(rawPayload []byte) {
	var p struct {
		CourseID string `json:"courseId"`
		Major    string `json:"major"`
	}
	if err := json.Unmarshal(rawPayload, &p); err != nil {
		c.hub.logger.Warn("bad enroll payload", "error", err)
		return
	}

	snapshot := c.hub.store.Snapshot()
	country := ""
	if snapshot.Profile != nil {
		country = snapshot.Profile.Country
	}
	course, ok := catalog.Lookup(country).CourseByID(p.CourseID)
	if !ok {
		c.hub.logger.Warn("enroll for unknown course", "course", p.CourseID)
		c.hub.Error("Enrollment failed", "Unknown course: "+p.CourseID)
		return
	}

	// Rejections already produce their own notice via the notifier.
	_ = c.hub.store.EnrollCourse(course, p.Major)
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
