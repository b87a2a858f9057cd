// Package monitor serves the blended cue state to remote viewers over websockets.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/logger"
)

const writeTimeout = 200 * time.Millisecond

// Controller is the playback surface exposed to websocket clients.
type Controller interface {
	Next() error
	Previous() error
	GotoCue(id uint32, override *time.Duration) error
}

// Hub broadcasts every frame it receives to the connected clients. It implements cuelist.Sink; frames are handed to a
// broadcaster goroutine and dropped, not queued, when clients fall behind. mu only guards the client set and the
// latest frame and is never held across a network write.
type Hub struct {
	mu      sync.RWMutex
	clock   clock.PassiveClock
	control Controller
	clients map[*websocket.Conn]*client
	latest  []byte
	frameID atomic.Uint64
	started time.Time

	frames chan []byte
}

// client serialises writes to one connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

var _ cuelist.Sink = (*Hub)(nil)

// NewHub creates a hub. control may be nil for a read-only monitor.
func NewHub(clk clock.PassiveClock, control Controller) *Hub {
	return &Hub{
		clock:   clk,
		control: control,
		clients: map[*websocket.Conn]*client{},
		started: clk.Now(),
		frames:  make(chan []byte, 1),
	}
}

// SendFrame encodes the frame and queues it for broadcast.
func (h *Hub) SendFrame(state cuelist.State, view cuelist.View) {
	f := newFrame(h.frameID.Add(1), h.clock.Now(), state, view)

	b, err := json.Marshal(f)
	if err != nil {
		logger.GetProjectLogger().WithError(err).Error("Failed to encode monitor frame")
		return
	}

	h.mu.Lock()
	h.latest = b
	h.mu.Unlock()

	select {
	case h.frames <- b:
	default:
		// the broadcaster is busy; it will pick up a newer frame
	}
}

// Run broadcasts queued frames until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case b := <-h.frames:
			h.broadcast(b)
		}
	}
}

func (h *Hub) broadcast(b []byte) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(b); err != nil {
			logger.GetProjectLogger().WithError(err).Debug("write frame")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handler routes the websocket feed and the health endpoint.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/healthz", h.HandleHealth)
	return mux
}

// HandleFramesWS upgrades the connection, sends the latest frame and then streams frames. Text messages from the
// client are read as control commands.
func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[conn] = c
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		_ = c.write(latest)
	}

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.applyControl(data)
		}
	}()
}

type command struct {
	Op   string   `json:"op"`
	Cue  uint32   `json:"cue"`
	Fade *float64 `json:"fade,omitempty"`
}

func (h *Hub) applyControl(data []byte) {
	logger := logger.GetProjectLogger()
	if h.control == nil {
		return
	}

	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		logger.WithError(err).Debug("Ignoring malformed monitor command")
		return
	}

	var err error
	switch cmd.Op {
	case "go":
		err = h.control.Next()
	case "back":
		err = h.control.Previous()
	case "goto":
		var override *time.Duration
		if cmd.Fade != nil && *cmd.Fade >= 0 {
			d := time.Duration(*cmd.Fade * float64(time.Second))
			override = &d
		}
		err = h.control.GotoCue(cmd.Cue, override)
	default:
		logger.WithFields(logrus.Fields{"op": cmd.Op}).Debug("Ignoring unknown monitor command")
		return
	}
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"op": cmd.Op}).Warn("Monitor command rejected")
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"frame_id": h.frameID.Load(),
		"uptime_s": h.clock.Since(h.started).Seconds(),
		"clients":  len(h.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
