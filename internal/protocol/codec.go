package protocol

import (
	"encoding/json"
	"fmt"

	"governor/internal/engine"
)

// ActionPayload is the wire shape shared by every action kind. Each kind
// reads only the fields it needs.
type ActionPayload struct {
	Role        string   `json:"role,omitempty"`
	CardID      string   `json:"card_id,omitempty"`
	PaymentIDs  []string `json:"payment_ids,omitempty"`
	Coins       int      `json:"coins,omitempty"`
	ReplaceID   string   `json:"replace_id,omitempty"`
	BuildingIDs []string `json:"building_ids,omitempty"`
	BuildingID  string   `json:"building_id,omitempty"`
	KeepIDs     []string `json:"keep_ids,omitempty"`
	DiscardIDs  []string `json:"discard_ids,omitempty"`
}

// LoggedAction is one entry of a downloadable action log.
type LoggedAction struct {
	Kind     engine.ActionKind `json:"kind"`
	PlayerID string            `json:"player_id,omitempty"`
	Payload  ActionPayload     `json:"payload"`
}

// IsAction reports whether the message type names an engine action.
func IsAction(typ string) bool {
	switch engine.ActionKind(typ) {
	case engine.ActionSelectRole, engine.ActionBuild, engine.ActionProduce, engine.ActionTrade,
		engine.ActionCouncilDraw, engine.ActionCouncilKeep, engine.ActionProspect,
		engine.ActionPass, engine.ActionEndRound, engine.ActionChapel:
		return true
	}
	return false
}

// DecodeAction builds the engine action for a message sent by playerID.
func DecodeAction(kind engine.ActionKind, playerID string, raw json.RawMessage) (engine.Action, error) {
	var p ActionPayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", kind, err)
		}
	}
	return p.Action(kind, playerID)
}

// Action converts the payload to the engine action of the given kind.
func (p ActionPayload) Action(kind engine.ActionKind, playerID string) (engine.Action, error) {
	switch kind {
	case engine.ActionSelectRole:
		role := engine.RoleNone
		if p.Role != "" {
			if role = engine.ParseRole(p.Role); role == engine.RoleNone {
				return nil, fmt.Errorf("unknown role %q", p.Role)
			}
		}
		return engine.SelectRole{PlayerID: playerID, Role: role}, nil
	case engine.ActionBuild:
		return engine.Build{
			PlayerID: playerID, CardID: p.CardID, PaymentIDs: p.PaymentIDs,
			Coins: p.Coins, ReplaceID: p.ReplaceID,
		}, nil
	case engine.ActionProduce:
		return engine.Produce{PlayerID: playerID, BuildingIDs: p.BuildingIDs}, nil
	case engine.ActionTrade:
		return engine.Trade{PlayerID: playerID, BuildingID: p.BuildingID}, nil
	case engine.ActionCouncilDraw:
		return engine.CouncilDraw{PlayerID: playerID}, nil
	case engine.ActionCouncilKeep:
		return engine.CouncilKeep{PlayerID: playerID, KeepIDs: p.KeepIDs, DiscardIDs: p.DiscardIDs}, nil
	case engine.ActionProspect:
		return engine.Prospect{PlayerID: playerID}, nil
	case engine.ActionPass:
		return engine.Pass{PlayerID: playerID}, nil
	case engine.ActionEndRound:
		return engine.EndRound{}, nil
	case engine.ActionChapel:
		return engine.Chapel{PlayerID: playerID, CardID: p.CardID}, nil
	}
	return nil, fmt.Errorf("unknown action %q", kind)
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a engine.Action) LoggedAction {
	l := LoggedAction{Kind: a.Kind(), PlayerID: a.Actor()}
	switch a := a.(type) {
	case engine.SelectRole:
		if a.Role != engine.RoleNone {
			l.Payload.Role = a.Role.String()
		}
	case engine.Build:
		l.Payload = ActionPayload{CardID: a.CardID, PaymentIDs: a.PaymentIDs, Coins: a.Coins, ReplaceID: a.ReplaceID}
	case engine.Produce:
		l.Payload.BuildingIDs = a.BuildingIDs
	case engine.Trade:
		l.Payload.BuildingID = a.BuildingID
	case engine.CouncilKeep:
		l.Payload.KeepIDs = a.KeepIDs
		l.Payload.DiscardIDs = a.DiscardIDs
	case engine.Chapel:
		l.Payload.CardID = a.CardID
	}
	return l
}
