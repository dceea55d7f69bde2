package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LiveSource reports the ground-truth set of live connection ids from a
// transport. Reconciliation trusts it over the tracker's own bookkeeping.
type LiveSource interface {
	LiveConnections() ([]string, error)
}

// ConnectedInfo records a connection that has a live socket.
type ConnectedInfo struct {
	ConnectedAt time.Time
}

// AuthenticatedInfo records a connection that has proven an identity.
type AuthenticatedInfo struct {
	AccountID       int64
	Username        string
	AuthenticatedAt time.Time
}

// WorldInfo records a connection whose character is materialized in the world.
type WorldInfo struct {
	CharacterID   int64
	CharacterName string
	EnteredAt     time.Time
}

// Stats is a consistent snapshot of the three tier counts.
type Stats struct {
	Connected     int
	Authenticated int
	InWorld       int
}

// Tracker owns the three per-connection presence tiers. The tiers are
// strictly nested: every authenticated connection is connected, and every
// in-world connection is authenticated. Connections that vanish without a
// disconnect callback are swept out by Reconcile.
type Tracker struct {
	mu            sync.Mutex
	connected     map[string]ConnectedInfo
	authenticated map[string]AuthenticatedInfo
	inWorld       map[string]WorldInfo

	sources []LiveSource
	now     func() time.Time
}

// NewTracker creates a tracker reconciling against the given live sources.
func NewTracker(sources ...LiveSource) *Tracker {
	return &Tracker{
		connected:     map[string]ConnectedInfo{},
		authenticated: map[string]AuthenticatedInfo{},
		inWorld:       map[string]WorldInfo{},
		sources:       sources,
		now:           time.Now,
	}
}

// AddSource registers another live source for reconciliation. Used when a
// transport is constructed after the tracker it reports to.
func (t *Tracker) AddSource(src LiveSource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sources = append(t.sources, src)
}

// OnConnect registers a new connection in the connected tier.
func (t *Tracker) OnConnect(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected[connID] = ConnectedInfo{ConnectedAt: t.now()}
	metricConnections.Set(float64(len(t.connected)))
}

// OnAuthenticated promotes a connection to the authenticated tier. A
// connection unknown to the connected tier is ignored; that indicates a
// transport wiring bug, not a client error.
func (t *Tracker) OnAuthenticated(ctx context.Context, connID string, accountID int64, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.connected[connID]; !ok {
		slog.WarnContext(ctx, "authentication for unknown connection",
			"conn", connID, "username", username)
		return
	}

	t.authenticated[connID] = AuthenticatedInfo{
		AccountID:       accountID,
		Username:        username,
		AuthenticatedAt: t.now(),
	}
	metricAuthenticated.Set(float64(len(t.authenticated)))
}

// OnWorldEnter promotes a connection to the in-world tier. Requires the
// connection to already be authenticated.
func (t *Tracker) OnWorldEnter(ctx context.Context, connID string, characterID int64, characterName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.authenticated[connID]; !ok {
		slog.WarnContext(ctx, "world enter without authentication",
			"conn", connID, "character", characterName)
		return false
	}

	t.inWorld[connID] = WorldInfo{
		CharacterID:   characterID,
		CharacterName: characterName,
		EnteredAt:     t.now(),
	}
	metricInWorld.Set(float64(len(t.inWorld)))
	return true
}

// OnWorldLeave removes a connection from the in-world tier only; the
// connection stays authenticated and connected.
func (t *Tracker) OnWorldLeave(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inWorld, connID)
	metricInWorld.Set(float64(len(t.inWorld)))
}

// OnDisconnect removes a connection from every tier. Safe to call more than
// once for the same id.
func (t *Tracker) OnDisconnect(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(connID)
	t.updateMetricsLocked()
}

func (t *Tracker) removeLocked(connID string) {
	delete(t.connected, connID)
	delete(t.authenticated, connID)
	delete(t.inWorld, connID)
}

// InWorld returns the world record for a connection, if present.
func (t *Tracker) InWorld(connID string) (WorldInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	info, ok := t.inWorld[connID]
	return info, ok
}

// Authenticated returns the identity record for a connection, if present.
func (t *Tracker) Authenticated(connID string) (AuthenticatedInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	info, ok := t.authenticated[connID]
	return info, ok
}

// Reconcile sweeps every tier against the union of live connection ids
// reported by the transports. If any source fails, the cycle is skipped
// entirely rather than evicting connections on bad information.
func (t *Tracker) Reconcile(ctx context.Context) {
	t.mu.Lock()
	sources := make([]LiveSource, len(t.sources))
	copy(sources, t.sources)
	t.mu.Unlock()

	live := map[string]struct{}{}
	for _, src := range sources {
		ids, err := src.LiveConnections()
		if err != nil {
			slog.WarnContext(ctx, "skipping presence reconcile", "error", err)
			return
		}
		for _, id := range ids {
			live[id] = struct{}{}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var swept int
	for id := range t.connected {
		if _, ok := live[id]; !ok {
			t.removeLocked(id)
			swept++
		}
	}
	// A tier entry without a connected entry violates tier containment;
	// sweep those too rather than letting counts drift.
	for id := range t.authenticated {
		if _, ok := t.connected[id]; !ok {
			t.removeLocked(id)
			swept++
		}
	}
	for id := range t.inWorld {
		if _, ok := t.authenticated[id]; !ok {
			t.removeLocked(id)
			swept++
		}
	}

	if swept > 0 {
		slog.InfoContext(ctx, "presence reconciled", "swept", swept,
			"connected", len(t.connected), "in_world", len(t.inWorld))
	}
	t.updateMetricsLocked()
}

// Stats reconciles and then returns the tier counts.
func (t *Tracker) Stats(ctx context.Context) Stats {
	t.Reconcile(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Connected:     len(t.connected),
		Authenticated: len(t.authenticated),
		InWorld:       len(t.inWorld),
	}
}

func (t *Tracker) updateMetricsLocked() {
	metricConnections.Set(float64(len(t.connected)))
	metricAuthenticated.Set(float64(len(t.authenticated)))
	metricInWorld.Set(float64(len(t.inWorld)))
}

// Tick satisfies the driver Manager interface; each tick is one
// reconciliation cycle.
func (t *Tracker) Tick(ctx context.Context) error {
	t.Reconcile(ctx)
	return nil
}
