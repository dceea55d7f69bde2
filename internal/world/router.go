package world

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pixil98/go-realm/internal/messaging"
)

// Publisher delivers an encoded frame to a single connection. Delivery is
// fire-and-forget; a dead recipient is the transport's problem, not the
// router's.
type Publisher interface {
	PublishToConn(connID string, data []byte) error
}

// Router owns map-keyed group membership and routes locality-bound events to
// every member of a map except the originator.
type Router struct {
	mu     sync.Mutex
	groups map[string]map[string]struct{}
	pub    Publisher
}

// NewRouter creates an empty router publishing through pub.
func NewRouter(pub Publisher) *Router {
	return &Router{
		groups: map[string]map[string]struct{}{},
		pub:    pub,
	}
}

// Join adds a connection to a map group. Idempotent.
func (r *Router) Join(connID, mapID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joinLocked(connID, mapID)
}

func (r *Router) joinLocked(connID, mapID string) {
	group, ok := r.groups[mapID]
	if !ok {
		group = map[string]struct{}{}
		r.groups[mapID] = group
	}
	group[connID] = struct{}{}
}

// Leave removes a connection from a map group. Idempotent; removing an absent
// member is a no-op.
func (r *Router) Leave(connID, mapID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, mapID)
}

func (r *Router) leaveLocked(connID, mapID string) {
	group, ok := r.groups[mapID]
	if !ok {
		return
	}
	delete(group, connID)
	if len(group) == 0 {
		delete(r.groups, mapID)
	}
}

// Members returns a snapshot of the connection ids in a map group.
func (r *Router) Members(mapID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.membersLocked(mapID)
}

func (r *Router) membersLocked(mapID string) []string {
	group := r.groups[mapID]
	members := make([]string, 0, len(group))
	for id := range group {
		members = append(members, id)
	}
	return members
}

// Contains reports whether a connection is a member of a map group.
func (r *Router) Contains(connID, mapID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.groups[mapID][connID]
	return ok
}

// BroadcastToMap sends event/payload to every member of the map group except
// excludeConnID. Membership is snapshotted under the lock; publishing happens
// outside it. Per-recipient failures are logged and do not affect the rest.
func (r *Router) BroadcastToMap(ctx context.Context, mapID, event string, payload any, excludeConnID string) {
	r.mu.Lock()
	members := r.membersLocked(mapID)
	r.mu.Unlock()

	r.publish(ctx, members, mapID, event, payload, excludeConnID)
}

// TransferMap moves a connection between map groups and notifies both. The
// contract is leave, then join, then broadcasts: the connection is never
// observable in zero or two groups, and neither broadcast targets it.
func (r *Router) TransferMap(ctx context.Context, connID, oldMapID, newMapID string, joinedEvent string, joinedPayload any, leftEvent string, leftPayload any) {
	r.mu.Lock()
	r.leaveLocked(connID, oldMapID)
	r.joinLocked(connID, newMapID)
	oldMembers := r.membersLocked(oldMapID)
	newMembers := r.membersLocked(newMapID)
	r.mu.Unlock()

	r.publish(ctx, oldMembers, oldMapID, leftEvent, leftPayload, connID)
	r.publish(ctx, newMembers, newMapID, joinedEvent, joinedPayload, connID)
}

func (r *Router) publish(ctx context.Context, members []string, mapID, event string, payload any, excludeConnID string) {
	data, err := messaging.EncodeEvent(event, payload)
	if err != nil {
		slog.ErrorContext(ctx, "encoding broadcast", "event", event, "error", err)
		return
	}

	sent := 0
	for _, connID := range members {
		if connID == excludeConnID {
			continue
		}
		if err := r.pub.PublishToConn(connID, data); err != nil {
			slog.WarnContext(ctx, "broadcast delivery failed",
				"event", event, "conn", connID, "error", err)
			continue
		}
		sent++
	}
	metricBroadcasts.WithLabelValues(event).Add(float64(sent))
}
