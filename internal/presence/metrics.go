package presence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realm_connections_active",
		Help: "Connections with a live socket.",
	})
	metricAuthenticated = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realm_players_authenticated",
		Help: "Connections with a verified account.",
	})
	metricInWorld = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realm_players_in_world",
		Help: "Connections with a character in the world.",
	})
)
