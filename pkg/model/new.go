package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewPlayer(number int, name, position string) (Player, error) {
	if strings.TrimSpace(name) == "" {
		return Player{}, fmt.Errorf("player name is required")
	}
	return Player{
		ID:       uuid.NewString(),
		Number:   number,
		Name:     name,
		Position: position,
	}, nil
}

func NewGame(opponent string, date time.Time, status GameStatus) (GameSummary, error) {
	if strings.TrimSpace(opponent) == "" {
		return GameSummary{}, fmt.Errorf("opponent is required")
	}
	if !status.Valid() {
		return GameSummary{}, fmt.Errorf("invalid game status %q", status)
	}
	return GameSummary{
		ID:       uuid.NewString(),
		Opponent: opponent,
		Date:     date.UTC().Format(time.RFC3339),
		Status:   status,
	}, nil
}

// NewEvent assigns an id and creation time to e after checking its enums.
// Penalty details are dropped from events that are not penalties.
func NewEvent(e GameEvent, now time.Time) (GameEvent, error) {
	if strings.TrimSpace(e.GameID) == "" {
		return GameEvent{}, fmt.Errorf("game id is required")
	}
	if !e.Type.Valid() {
		return GameEvent{}, fmt.Errorf("invalid event type %q", e.Type)
	}
	if !e.Strength.Valid() {
		return GameEvent{}, fmt.Errorf("invalid strength %q", e.Strength)
	}
	if e.Type == EventPenalty {
		if e.PenaltySeverity != "" && !e.PenaltySeverity.Valid() {
			return GameEvent{}, fmt.Errorf("invalid penalty severity %q", e.PenaltySeverity)
		}
	} else {
		e.PenaltyPlayerID = ""
		e.PenaltyInfraction = ""
		e.PenaltySeverity = ""
		e.PenaltyMinutes = nil
	}
	e.ID = uuid.NewString()
	e.CreatedAt = now.UTC().Format(time.RFC3339)
	if e.AssistIDs == nil {
		e.AssistIDs = []string{}
	}
	if e.PlusPlayerIDs == nil {
		e.PlusPlayerIDs = []string{}
	}
	if e.MinusPlayerIDs == nil {
		e.MinusPlayerIDs = []string{}
	}
	return e, nil
}
