package command

import (
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/metrics"
)

// MetricsConfig configures the prometheus endpoint. A zero port disables it.
type MetricsConfig struct {
	Port uint16 `json:"port"`
	Path string `json:"path,omitempty"`
}

func (c *MetricsConfig) validate() error {
	el := errors.NewErrorList()
	return el.Err()
}

func (c *MetricsConfig) Enabled() bool {
	return c.Port != 0
}

func (c *MetricsConfig) BuildServer() *metrics.Server {
	return metrics.NewServer(c.Port, c.Path)
}
