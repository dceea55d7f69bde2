package presence

import (
	"context"
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

// stubSource is a LiveSource returning a fixed id set or an error.
type stubSource struct {
	ids []string
	err error
}

func (s *stubSource) LiveConnections() ([]string, error) {
	return s.ids, s.err
}

func admit(t *testing.T, tr *Tracker, connID string) {
	t.Helper()
	ctx := context.Background()
	tr.OnConnect(connID)
	tr.OnAuthenticated(ctx, connID, 1, "user-"+connID)
	if !tr.OnWorldEnter(ctx, connID, 10, "char-"+connID) {
		t.Fatalf("world enter rejected for %s", connID)
	}
}

func TestTierContainment(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{}

	tests := map[string]struct {
		run  func(tr *Tracker)
		want Stats
	}{
		"authenticate unknown connection is ignored": {
			run: func(tr *Tracker) {
				tr.OnAuthenticated(ctx, "ghost", 1, "ghost")
			},
			want: Stats{},
		},
		"world enter without authentication is rejected": {
			run: func(tr *Tracker) {
				tr.OnConnect("c1")
				if tr.OnWorldEnter(ctx, "c1", 5, "Aria") {
					t.Error("expected world enter to be rejected")
				}
			},
			want: Stats{Connected: 1},
		},
		"full promotion": {
			run: func(tr *Tracker) {
				admit(t, tr, "c1")
			},
			want: Stats{Connected: 1, Authenticated: 1, InWorld: 1},
		},
		"world leave keeps lower tiers": {
			run: func(tr *Tracker) {
				admit(t, tr, "c1")
				tr.OnWorldLeave("c1")
			},
			want: Stats{Connected: 1, Authenticated: 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tr := NewTracker(src)
			tt.run(tr)

			src.ids = nil
			tr.mu.Lock()
			for id := range tr.connected {
				src.ids = append(src.ids, id)
			}
			tr.mu.Unlock()

			testutil.AssertEqual(t, "stats", tr.Stats(ctx), tt.want)
		})
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{}
	tr := NewTracker(src)

	admit(t, tr, "c1")
	tr.OnDisconnect("c1")
	first := tr.Stats(ctx)
	tr.OnDisconnect("c1")
	second := tr.Stats(ctx)

	testutil.AssertEqual(t, "after first disconnect", first, Stats{})
	testutil.AssertEqual(t, "after second disconnect", second, Stats{})
}

func TestReconcileConvergence(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{}
	tr := NewTracker(src)

	for i := range 4 {
		admit(t, tr, fmt.Sprintf("c%d", i))
	}

	// Transport now only knows about c0 and c2.
	src.ids = []string{"c0", "c2"}
	tr.Reconcile(ctx)

	testutil.AssertEqual(t, "stats", tr.Stats(ctx),
		Stats{Connected: 2, Authenticated: 2, InWorld: 2})

	_, ok := tr.InWorld("c0")
	testutil.AssertEqual(t, "c0 still in world", ok, true)
	_, ok = tr.InWorld("c1")
	testutil.AssertEqual(t, "c1 removed", ok, false)
}

func TestReconcileSkipsCycleOnSourceError(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{err: fmt.Errorf("transport query failed")}
	tr := NewTracker(src)

	admit(t, tr, "c1")
	tr.Reconcile(ctx)

	// Nothing was evicted despite the source reporting no ids.
	_, ok := tr.InWorld("c1")
	testutil.AssertEqual(t, "c1 survives failed cycle", ok, true)
}

func TestAddSourceJoinsReconcile(t *testing.T) {
	ctx := context.Background()
	a := &stubSource{ids: []string{"c1"}}
	tr := NewTracker(a)

	admit(t, tr, "c1")

	// A source registered after construction must be consulted, and
	// registering while a reconcile runs must not trip the race detector.
	b := &stubSource{ids: []string{"c2"}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.AddSource(b)
	}()
	tr.Reconcile(ctx)
	<-done

	admit(t, tr, "c2")
	tr.Reconcile(ctx)

	testutil.AssertEqual(t, "stats", tr.Stats(ctx),
		Stats{Connected: 2, Authenticated: 2, InWorld: 2})
}

func TestReconcileUnionsMultipleSources(t *testing.T) {
	ctx := context.Background()
	a := &stubSource{ids: []string{"c1"}}
	b := &stubSource{ids: []string{"c2"}}
	tr := NewTracker(a, b)

	admit(t, tr, "c1")
	admit(t, tr, "c2")
	admit(t, tr, "c3")
	tr.Reconcile(ctx)

	testutil.AssertEqual(t, "stats", tr.Stats(ctx),
		Stats{Connected: 2, Authenticated: 2, InWorld: 2})
}
