package remote

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"robot3d/internal/pose"
)

const (
	writeWait = 2 * time.Second
	// sendBuffer is how many messages may wait for a slow client before it
	// is dropped.
	sendBuffer = 16
)

// subscriber is one websocket client. Only its writePump writes to conn.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	// closed is guarded by Hub.mu.
	closed bool
}

// Hub accepts websocket clients. Key presses are queued for the host loop,
// which owns the pose; the hub never touches pose state itself.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	keys     chan KeyEvent

	mu   sync.Mutex
	subs map[string]*subscriber
}

// NewHub returns a hub that buffers up to queue pending key presses.
func NewHub(logger *slog.Logger, queue int) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if queue < 1 {
		queue = 64
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		keys: make(chan KeyEvent, queue),
		subs: make(map[string]*subscriber),
	}
}

// Keys returns the queue of received key presses.
func (h *Hub) Keys() <-chan KeyEvent { return h.keys }

// Drain hands every queued key press to fn without blocking and returns how
// many there were.
func (h *Hub) Drain(fn func(KeyEvent)) int {
	n := 0
	for {
		select {
		case ev := <-h.keys:
			fn(ev)
			n++
		default:
			return n
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// ServeHTTP upgrades the request and serves the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := uuid.New().String()
	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.subs[id] = sub
	h.mu.Unlock()
	log := h.logger.With("client", id)
	log.Info("client connected", "remote", r.RemoteAddr)

	go h.writePump(sub, log)
	defer func() {
		h.remove(id, sub)
		conn.Close()
		log.Info("client disconnected")
	}()

	h.enqueue(sub, ServerMessage{Type: TypeHello, ClientID: id})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}

		key, err := DecodeKey(payload)
		if err != nil {
			log.Debug("discarding message", "error", err)
			h.enqueue(sub, ServerMessage{Type: TypeError, Error: err.Error()})
			continue
		}

		select {
		case h.keys <- KeyEvent{ClientID: id, Key: key}:
		default:
			log.Warn("key queue full, dropping key", "key", key.String())
		}
	}
}

// writePump drains sub.send until it is closed or a write fails.
func (h *Hub) writePump(sub *subscriber, log *slog.Logger) {
	defer sub.conn.Close()
	for data := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn("websocket write failed", "error", err)
			return
		}
	}
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// enqueue hands msg to the client's writer without blocking. The message is
// dropped if the buffer is full.
func (h *Hub) enqueue(sub *subscriber, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case sub.send <- data:
	default:
	}
}

// remove unregisters sub and stops its writer. It is a no-op if sub was
// already dropped.
func (h *Hub) remove(id string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	h.drop(id, sub)
}

// drop must be called with h.mu held.
func (h *Hub) drop(id string, sub *subscriber) {
	delete(h.subs, id)
	sub.closed = true
	close(sub.send)
}

// Publish queues p for every connected client and returns without waiting
// for any write. A client whose buffer is full is dropped.
func (h *Hub) Publish(p pose.State) error {
	data, err := json.Marshal(PoseMessage(p))
	if err != nil {
		return fmt.Errorf("remote: encode pose: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	var dropped int
	for id, sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			h.logger.Warn("client too slow, dropping", "client", id)
			h.drop(id, sub)
			dropped++
		}
	}
	if dropped > 0 {
		return fmt.Errorf("remote: dropped %d slow client(s)", dropped)
	}
	return nil
}
