package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const defaultRespawnDelay = 30 * time.Second

type WorldConfig struct {
	ServerID     int64  `json:"server_id"`
	RespawnDelay string `json:"respawn_delay,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.ServerID <= 0 {
		el.Add(fmt.Errorf("server_id must be set to a positive integer"))
	}
	if c.RespawnDelay != "" {
		if _, err := time.ParseDuration(c.RespawnDelay); err != nil {
			el.Add(fmt.Errorf("parsing respawn_delay: %w", err))
		}
	}

	return el.Err()
}

func (c *WorldConfig) respawnDelay() time.Duration {
	if c.RespawnDelay == "" {
		return defaultRespawnDelay
	}
	d, err := time.ParseDuration(c.RespawnDelay)
	if err != nil {
		return defaultRespawnDelay
	}
	return d
}
