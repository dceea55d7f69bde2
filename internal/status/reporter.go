package status

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-realm/internal/presence"
	"github.com/pixil98/go-realm/internal/storage"
)

// Reporter publishes this realm's liveness and player count to the server
// status table on every driver tick. A failed write is logged and retried on
// the next tick; status is advisory and never worth failing the process for.
type Reporter struct {
	serverID int64
	tracker  *presence.Tracker
	store    storage.ServerStatusStore
}

func NewReporter(serverID int64, tracker *presence.Tracker, store storage.ServerStatusStore) *Reporter {
	return &Reporter{
		serverID: serverID,
		tracker:  tracker,
		store:    store,
	}
}

func (r *Reporter) Tick(ctx context.Context) error {
	stats := r.tracker.Stats(ctx)
	if err := r.store.UpdateStatus(ctx, r.serverID, "online", stats.InWorld); err != nil {
		slog.WarnContext(ctx, "updating server status",
			"server", r.serverID, "error", err)
	}
	return nil
}
