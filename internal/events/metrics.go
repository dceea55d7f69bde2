package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "realm_events_total",
	Help: "Inbound client events by name.",
}, []string{"event"})
