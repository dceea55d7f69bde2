package events

import (
	"context"
	"fmt"
)

// handleMove persists a position change and notifies the map group. The
// session snapshot is updated only after the persistence write confirms.
// A map change performs the leave/join transfer and announces the character
// to the destination map.
func (d *Dispatcher) handleMove(ctx context.Context, req *Request) (any, error) {
	var payload MovePayload
	if err := decode(req.Data, &payload); err != nil {
		return nil, err
	}

	char, ok := req.Session.Character()
	if !ok {
		return nil, NewUserError("not in world")
	}

	newMap := payload.Map
	if newMap == "" {
		newMap = char.Map
	}
	x, y, z := *payload.PosX, *payload.PosY, *payload.PosZ

	if err := d.chars.UpdatePosition(ctx, char.ID, x, y, z, newMap); err != nil {
		return nil, fmt.Errorf("persisting position: %w", err)
	}

	req.Session.SetPosition(x, y, z)
	connID := req.Session.ConnID

	if newMap != char.Map {
		req.Session.SetMap(newMap)
		moved, _ := req.Session.Character()
		d.router.TransferMap(ctx, connID, char.Map, newMap,
			EventPlayerJoined, PlayerJoinedPayload{Character: moved},
			EventPlayerLeft, PlayerLeftPayload{CharacterID: char.ID, CharacterName: char.Name})
		return Ack{Success: true}, nil
	}

	d.router.BroadcastToMap(ctx, char.Map, EventPlayerMoved, PlayerMovedPayload{
		CharacterID: char.ID,
		PosX:        x,
		PosY:        y,
		PosZ:        z,
		Map:         char.Map,
	}, connID)

	return Ack{Success: true}, nil
}
