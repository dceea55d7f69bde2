package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-realm/internal/combat"
	"github.com/pixil98/go-realm/internal/presence"
	"github.com/pixil98/go-realm/internal/session"
	"github.com/pixil98/go-realm/internal/storage"
	"github.com/pixil98/go-realm/internal/world"
)

// Request is one inbound client event. A nil Reply means the client expects
// no acknowledgment; that is never an error.
type Request struct {
	Session *session.Session
	Name    string
	Data    json.RawMessage
	Reply   func(payload any)
}

// AttackResolver resolves one attack against a monster.
type AttackResolver interface {
	AttackMonster(ctx context.Context, characterID, monsterID int64) (*combat.Result, error)
}

type handlerFunc func(ctx context.Context, req *Request) (any, error)

// Dispatcher routes named client events to their handlers and converts
// handler failures into the reply shape instead of dropping connections.
type Dispatcher struct {
	tracker  *presence.Tracker
	registry *session.Registry
	router   *world.Router
	accounts storage.AccountVerifier
	chars    storage.CharacterStore
	attacks  AttackResolver

	handlers map[string]handlerFunc
}

func NewDispatcher(
	tracker *presence.Tracker,
	registry *session.Registry,
	router *world.Router,
	accounts storage.AccountVerifier,
	chars storage.CharacterStore,
	attacks AttackResolver,
) *Dispatcher {
	d := &Dispatcher{
		tracker:  tracker,
		registry: registry,
		router:   router,
		accounts: accounts,
		chars:    chars,
		attacks:  attacks,
	}
	d.handlers = map[string]handlerFunc{
		EventLogin:        d.handleLogin,
		EventEnterWorld:   d.handleEnterWorld,
		EventMove:         d.handleMove,
		EventPlayerUpdate: d.handlePlayerUpdate,
		EventSelectTarget: d.handleSelectTarget,
		EventAttack:       d.handleAttack,
	}
	return d
}

// Dispatch runs the handler for req and replies with its result. Failures
// are converted to {success:false, error} replies; only persistence and
// internal failures are logged as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) {
	handler, ok := d.handlers[req.Name]
	if !ok {
		slog.WarnContext(ctx, "unknown event", "event", req.Name, "conn", req.Session.ConnID)
		d.reply(req, failure(fmt.Sprintf("unknown event %q", req.Name)))
		return
	}
	// Only recognized events become label values; client-chosen names
	// would grow the vector without bound.
	metricEvents.WithLabelValues(req.Name).Inc()

	resp, err := handler(ctx, req)
	if err != nil {
		var userErr *UserError
		var valErr *ValidationError
		switch {
		case errors.As(err, &userErr):
			d.reply(req, failure(userErr.Message))
		case errors.As(err, &valErr):
			slog.WarnContext(ctx, "invalid payload",
				"event", req.Name, "conn", req.Session.ConnID, "error", valErr.Err)
			d.reply(req, failure(valErr.Error()))
		default:
			slog.ErrorContext(ctx, "event handler failed",
				"event", req.Name, "conn", req.Session.ConnID, "error", err)
			d.reply(req, failure("internal error"))
		}
		return
	}
	d.reply(req, resp)
}

func (d *Dispatcher) reply(req *Request, payload any) {
	if req.Reply == nil {
		return
	}
	req.Reply(payload)
}

func failure(msg string) Ack {
	return Ack{Success: false, Error: msg}
}

// Disconnect tears down everything attached to a connection: presence tiers,
// the session record, and, when a character was in the world, its map group
// membership plus a player_left broadcast to the map it occupied.
func (d *Dispatcher) Disconnect(ctx context.Context, connID string) {
	d.tracker.OnDisconnect(connID)

	sess := d.registry.Remove(connID)
	if sess == nil {
		return
	}

	char, ok := sess.Character()
	if !ok {
		return
	}

	d.router.Leave(connID, char.Map)
	d.router.BroadcastToMap(ctx, char.Map, EventPlayerLeft, PlayerLeftPayload{
		CharacterID:   char.ID,
		CharacterName: char.Name,
	}, connID)

	slog.InfoContext(ctx, "player left world",
		"conn", connID, "character", char.ID, "map", char.Map)
}

func decode[T interface{ Validate() error }](data json.RawMessage, payload T) error {
	if len(data) > 0 {
		if err := json.Unmarshal(data, payload); err != nil {
			return &ValidationError{Err: fmt.Errorf("malformed payload: %w", err)}
		}
	}
	if err := payload.Validate(); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
