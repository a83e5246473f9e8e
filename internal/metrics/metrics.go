// Package metrics exposes Prometheus instrumentation for the websocket core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsActive tracks currently open websocket sessions.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tally_connections_active",
		Help: "Number of currently connected websocket sessions.",
	})

	// EnvelopesTotal counts inbound envelopes by kind. Unparseable frames
	// are counted under kind "malformed".
	EnvelopesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tally_envelopes_total",
		Help: "Inbound protocol envelopes by kind.",
	}, []string{"kind"})

	// BroadcastsTotal counts room fan-outs.
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_broadcasts_total",
		Help: "Envelopes fanned out to rooms.",
	})

	// SendDropsTotal counts frames dropped because a session's outbound
	// buffer was full or closed.
	SendDropsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_send_drops_total",
		Help: "Outbound frames dropped for slow or closed sessions.",
	})
)
