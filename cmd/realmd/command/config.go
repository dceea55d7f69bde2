package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string         `json:"tick_interval"`
	Listener     ListenerConfig `json:"listener"`
	Database     DatabaseConfig `json:"database"`
	Nats         NatsConfig     `json:"nats"`
	Metrics      MetricsConfig  `json:"metrics"`
	World        WorldConfig    `json:"world"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	el.Add(c.Listener.validate())
	el.Add(c.Database.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Metrics.validate())
	el.Add(c.World.validate())

	return el.Err()
}
