package ws

import (
	"log/slog"

	"github.com/tallyhq/tally/internal/metrics"
)

// Broadcaster shapes outbound envelopes and hands them to the registry
// for fan-out. Delivery is at-most-once; there is no retry or queueing.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster creates a broadcaster over the given registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// Broadcast sends an envelope of the given kind to every session in the room.
func (b *Broadcaster) Broadcast(roomKey string, kind Kind, payload any) {
	frame, err := encode(kind, payload)
	if err != nil {
		slog.Error("Broadcast encode failed", "room", roomKey, "kind", kind, "error", err)
		return
	}

	delivered := b.registry.Broadcast(roomKey, frame)
	metrics.BroadcastsTotal.Inc()
	slog.Debug("Broadcast", "room", roomKey, "kind", kind, "delivered", delivered)
}
