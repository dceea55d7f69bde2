package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricBroadcasts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "realm_broadcasts_total",
	Help: "Frames delivered to map group members, by event.",
}, []string{"event"})
