package events

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/session"
)

// Inbound payloads. Numeric position fields are pointers so a missing field
// is distinguishable from a legitimate zero coordinate.

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p *LoginPayload) Validate() error {
	el := errors.NewErrorList()
	if p.Username == "" {
		el.Add(fmt.Errorf("username is required"))
	}
	if p.Password == "" {
		el.Add(fmt.Errorf("password is required"))
	}
	return el.Err()
}

type EnterWorldPayload struct {
	CharacterID int64 `json:"characterId"`
}

func (p *EnterWorldPayload) Validate() error {
	el := errors.NewErrorList()
	if p.CharacterID <= 0 {
		el.Add(fmt.Errorf("characterId is required"))
	}
	return el.Err()
}

type MovePayload struct {
	PosX *float64 `json:"posX"`
	PosY *float64 `json:"posY"`
	PosZ *float64 `json:"posZ"`
	Map  string   `json:"map,omitempty"`
}

func (p *MovePayload) Validate() error {
	el := errors.NewErrorList()
	if p.PosX == nil {
		el.Add(fmt.Errorf("posX is required"))
	}
	if p.PosY == nil {
		el.Add(fmt.Errorf("posY is required"))
	}
	if p.PosZ == nil {
		el.Add(fmt.Errorf("posZ is required"))
	}
	return el.Err()
}

type PlayerUpdatePayload struct {
	HP *int `json:"hp"`
	MP *int `json:"mp"`
}

func (p *PlayerUpdatePayload) Validate() error {
	el := errors.NewErrorList()
	if p.HP == nil {
		el.Add(fmt.Errorf("hp is required"))
	}
	if p.MP == nil {
		el.Add(fmt.Errorf("mp is required"))
	}
	return el.Err()
}

type SelectTargetPayload struct {
	TargetID   int64  `json:"targetId"`
	TargetType string `json:"targetType"`
}

func (p *SelectTargetPayload) Validate() error {
	el := errors.NewErrorList()
	if p.TargetID <= 0 {
		el.Add(fmt.Errorf("targetId is required"))
	}
	if !session.TargetType(p.TargetType).Valid() {
		el.Add(fmt.Errorf("targetType must be %q or %q", session.TargetMonster, session.TargetPlayer))
	}
	return el.Err()
}
