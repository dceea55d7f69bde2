package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-realm/internal/storage"
)

// handleEnterWorld admits an authenticated connection's character into the
// world: claim the character, promote the presence tier, install the session
// snapshot, join the map group, and announce the arrival to the map. A
// character already in the world on another connection is rejected; the
// first session keeps playing.
func (d *Dispatcher) handleEnterWorld(ctx context.Context, req *Request) (any, error) {
	var payload EnterWorldPayload
	if err := decode(req.Data, &payload); err != nil {
		return nil, err
	}

	accountID, _, ok := req.Session.Account()
	if !ok {
		return nil, NewUserError("not authenticated")
	}

	// One world session per connection. Re-admission would leave the
	// connection in two map groups and strand the first character's claim.
	if _, ok := req.Session.Character(); ok {
		return nil, NewUserError("already in world")
	}

	char, err := d.chars.Get(ctx, payload.CharacterID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, NewUserError("character not found")
		}
		return nil, fmt.Errorf("loading character: %w", err)
	}
	if char.AccountID != accountID {
		return nil, NewUserError("character does not belong to this account")
	}

	connID := req.Session.ConnID
	if err := d.registry.AdmitCharacter(connID, char.ID); err != nil {
		return nil, NewUserError(err.Error())
	}

	if !d.tracker.OnWorldEnter(ctx, connID, char.ID, char.Name) {
		d.registry.ReleaseCharacter(connID, char.ID)
		return nil, fmt.Errorf("connection %s not in authenticated tier", connID)
	}

	req.Session.SetCharacter(char)
	d.router.Join(connID, char.Map)
	d.router.BroadcastToMap(ctx, char.Map, EventPlayerJoined,
		PlayerJoinedPayload{Character: *char}, connID)

	if err := d.chars.UpdateLastPlayed(ctx, char.ID); err != nil {
		slog.WarnContext(ctx, "updating last played", "character", char.ID, "error", err)
	}

	slog.InfoContext(ctx, "player entered world",
		"conn", connID, "character", char.ID, "name", char.Name, "map", char.Map)

	return EnterWorldResponse{
		Ack:       Ack{Success: true},
		Character: char,
	}, nil
}
