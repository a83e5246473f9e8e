package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tallyhq/tally/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Session tracks one live connection. Room membership is owned by the
// Registry, not the session itself; a session only carries its identity
// and its outbound send capability.
type Session struct {
	// ID is a process-unique session identifier.
	ID string

	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Send queues a frame for delivery. Delivery is best-effort: a full buffer
// or a closed session drops the frame and reports false instead of
// blocking the caller.
func (s *Session) Send(frame []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		metrics.SendDropsTotal.Inc()
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		metrics.SendDropsTotal.Inc()
		return false
	}
}

// closeSend marks the session closed and releases the write pump.
// Idempotent; must only run after the session left the registry, so no
// broadcast can race the channel close.
func (s *Session) closeSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// readPump reads frames from the connection and feeds them to the router.
// It owns connection teardown: when the read loop ends, for whatever
// reason, the session leaves its room and the connection closes.
func (s *Session) readPump(router *Router, registry *Registry) {
	defer func() {
		registry.Leave(s)
		s.closeSend()
		s.conn.Close()
		metrics.ConnectionsActive.Dec()
		slog.Info("Session closed", "session_id", s.ID)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Session read error", "session_id", s.ID, "error", err)
			}
			return
		}
		router.HandleFrame(context.Background(), s, raw)
	}
}

// writePump writes queued frames to the connection and keeps it alive
// with periodic pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
