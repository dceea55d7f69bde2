package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-realm/internal/combat"
	"github.com/pixil98/go-realm/internal/session"
)

// handleSelectTarget records the combat target on the session. Targets are
// transient and never persisted.
func (d *Dispatcher) handleSelectTarget(ctx context.Context, req *Request) (any, error) {
	var payload SelectTargetPayload
	if err := decode(req.Data, &payload); err != nil {
		return nil, err
	}

	if _, ok := req.Session.Character(); !ok {
		return nil, NewUserError("not in world")
	}

	req.Session.SetTarget(payload.TargetID, session.TargetType(payload.TargetType))
	return Ack{Success: true}, nil
}

// handleAttack resolves an attack against the previously selected target,
// broadcasts the outcome to the map group, and replies with the same
// payload. A kill clears the selected target.
func (d *Dispatcher) handleAttack(ctx context.Context, req *Request) (any, error) {
	char, ok := req.Session.Character()
	if !ok {
		return nil, NewUserError("not in world")
	}

	target, ok := req.Session.Target()
	if !ok {
		return nil, NewUserError("no target selected")
	}
	if target.Type == session.TargetPlayer {
		return nil, NewUserError("PVP is not implemented")
	}

	result, err := d.attacks.AttackMonster(ctx, char.ID, target.ID)
	if err != nil {
		if errors.Is(err, combat.ErrTargetDead) {
			req.Session.ClearTarget()
			return nil, NewUserError("target is already dead")
		}
		return nil, fmt.Errorf("resolving attack: %w", err)
	}

	update := CombatUpdatePayload{
		AttackerID: char.ID,
		TargetID:   target.ID,
		TargetType: string(target.Type),
		Result:     string(result.Outcome),
		Damage:     result.Damage,
		IsCritical: result.IsCritical,
		MonsterHP:  result.MonsterHP,
		ExpGained:  result.ExpGained,
		LeveledUp:  result.LeveledUp,
		NewLevel:   result.NewLevel,
	}

	if result.Outcome == combat.OutcomeKill {
		req.Session.ClearTarget()
	}

	d.router.BroadcastToMap(ctx, char.Map, EventCombatUpdate, update, req.Session.ConnID)

	return AttackResponse{
		Ack:                 Ack{Success: true},
		CombatUpdatePayload: update,
	}, nil
}
