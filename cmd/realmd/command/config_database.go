package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/storage"
)

type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

func (c *DatabaseConfig) validate() error {
	el := errors.NewErrorList()

	if c.DSN == "" {
		el.Add(fmt.Errorf("dsn is required"))
	}

	return el.Err()
}

func (c *DatabaseConfig) BuildPostgres() (*storage.Postgres, error) {
	pg, err := storage.NewPostgres(c.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return pg, nil
}
