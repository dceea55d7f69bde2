package events

import (
	"context"
	"fmt"
)

// handlePlayerUpdate persists new HP/MP vitals and tells the map group. The
// snapshot follows the write, never precedes it.
func (d *Dispatcher) handlePlayerUpdate(ctx context.Context, req *Request) (any, error) {
	var payload PlayerUpdatePayload
	if err := decode(req.Data, &payload); err != nil {
		return nil, err
	}

	char, ok := req.Session.Character()
	if !ok {
		return nil, NewUserError("not in world")
	}

	hp, mp := *payload.HP, *payload.MP
	if err := d.chars.UpdateVitals(ctx, char.ID, hp, mp); err != nil {
		return nil, fmt.Errorf("persisting vitals: %w", err)
	}

	req.Session.SetVitals(hp, mp)
	d.router.BroadcastToMap(ctx, char.Map, EventPlayerStatsUpdated, PlayerStatsUpdatedPayload{
		CharacterID: char.ID,
		HP:          hp,
		MP:          mp,
	}, req.Session.ConnID)

	return Ack{Success: true}, nil
}
