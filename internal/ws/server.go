// Package ws implements the websocket core: sessions, the room registry,
// the protocol router and room fan-out.
package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tallyhq/tally/internal/metrics"
	"github.com/tallyhq/tally/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The original clients connect from file:// and app origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server owns the registry and router for one process and accepts
// websocket connections.
type Server struct {
	registry *Registry
	router   *Router
}

// NewServer creates a websocket server over the given ledger service.
func NewServer(ledger *service.LedgerService) *Server {
	registry := NewRegistry()
	return &Server{
		registry: registry,
		router:   NewRouter(ledger, registry),
	}
}

// ServeHTTP upgrades the request and runs the session until the
// connection closes.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	s := newSession(conn)
	metrics.ConnectionsActive.Inc()
	slog.Info("Session opened", "session_id", s.ID, "remote_addr", r.RemoteAddr)

	go s.writePump()
	s.readPump(srv.router, srv.registry)
}
