package status

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-realm/internal/presence"
	"github.com/pixil98/go-testutil"
)

type statusUpdate struct {
	serverID int64
	status   string
	players  int
}

type fakeStatusStore struct {
	updates []statusUpdate
	err     error
}

func (f *fakeStatusStore) UpdateStatus(_ context.Context, serverID int64, status string, playerCount int) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, statusUpdate{serverID: serverID, status: status, players: playerCount})
	return nil
}

type stubSource struct {
	ids []string
}

func (s *stubSource) LiveConnections() ([]string, error) {
	return s.ids, nil
}

func TestReporterPublishesInWorldCount(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{ids: []string{"c1", "c2"}}
	tracker := presence.NewTracker(src)
	tracker.OnConnect("c1")
	tracker.OnConnect("c2")
	tracker.OnAuthenticated(ctx, "c1", 1, "alice")
	tracker.OnWorldEnter(ctx, "c1", 1, "Aria")

	store := &fakeStatusStore{}
	r := NewReporter(42, tracker, store)

	if err := r.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "updates", len(store.updates), 1)
	testutil.AssertEqual(t, "server id", store.updates[0].serverID, int64(42))
	testutil.AssertEqual(t, "status", store.updates[0].status, "online")
	testutil.AssertEqual(t, "players", store.updates[0].players, 1)
}

func TestReporterSwallowsStoreFailure(t *testing.T) {
	tracker := presence.NewTracker(&stubSource{})
	store := &fakeStatusStore{err: errors.New("db down")}
	r := NewReporter(42, tracker, store)

	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("store failure must not propagate, got %v", err)
	}
}
