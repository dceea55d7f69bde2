package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 15
)

type Manager interface {
	Tick(context.Context) error
}

// RealmDriver runs every registered manager once per tick. A failing manager
// is logged and does not stop the others; the periodic work here (presence
// reconciliation, status reporting, respawns) is corrective, not critical.
type RealmDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewRealmDriver(managers []Manager, opts ...RealmDriverOpt) *RealmDriver {
	d := &RealmDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *RealmDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

func (d *RealmDriver) Tick(ctx context.Context) {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			slog.ErrorContext(ctx, "manager tick failed", "error", err)
		}
	}
}
