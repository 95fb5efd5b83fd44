package model

type GameStatus string

const (
	GameLive      GameStatus = "live"
	GameFinal     GameStatus = "final"
	GameScheduled GameStatus = "scheduled"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameLive, GameFinal, GameScheduled:
		return true
	}
	return false
}

type EventType string

const (
	EventGoalFor     EventType = "goalFor"
	EventGoalAgainst EventType = "goalAgainst"
	EventPenalty     EventType = "penalty"
)

func (t EventType) Valid() bool {
	switch t {
	case EventGoalFor, EventGoalAgainst, EventPenalty:
		return true
	}
	return false
}

type Strength string

const (
	StrengthEven        Strength = "EVEN"
	StrengthPowerPlay   Strength = "PP"
	StrengthShortHanded Strength = "SH"
)

func (s Strength) Valid() bool {
	switch s {
	case StrengthEven, StrengthPowerPlay, StrengthShortHanded:
		return true
	}
	return false
}

type PenaltySeverity string

const (
	SeverityMinor      PenaltySeverity = "Minor"
	SeverityMajor      PenaltySeverity = "Major"
	SeverityMisconduct PenaltySeverity = "Misconduct"
)

func (s PenaltySeverity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityMisconduct:
		return true
	}
	return false
}

type Player struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

type GameSummary struct {
	ID       string     `json:"id"`
	Opponent string     `json:"opponent"`
	Date     string     `json:"date"`
	Status   GameStatus `json:"status"`
}

// GameEvent is one logged occurrence in a game. The penalty fields are only
// meaningful when Type is EventPenalty.
type GameEvent struct {
	ID                string          `json:"id"`
	GameID            string          `json:"gameId"`
	CreatedAt         string          `json:"createdAt"`
	Period            int             `json:"period"`
	Clock             string          `json:"clock"`
	Type              EventType       `json:"type"`
	Strength          Strength        `json:"strength"`
	GoalPlayerID      string          `json:"goalPlayerId,omitempty"`
	AssistIDs         []string        `json:"assistIds"`
	PlusPlayerIDs     []string        `json:"plusPlayerIds"`
	MinusPlayerIDs    []string        `json:"minusPlayerIds"`
	PenaltyPlayerID   string          `json:"penaltyPlayerId,omitempty"`
	PenaltyInfraction string          `json:"penaltyInfraction,omitempty"`
	PenaltySeverity   PenaltySeverity `json:"penaltySeverity,omitempty"`
	PenaltyMinutes    *int            `json:"penaltyMinutes,omitempty"`
	Notes             string          `json:"notes"`
}

// Snapshot is the full persisted state: roster, game list and event log.
type Snapshot struct {
	Players []Player      `json:"players"`
	Games   []GameSummary `json:"games"`
	Events  []GameEvent   `json:"events"`
}

// Normalize replaces nil collections with empty ones so a snapshot always
// serialises with arrays, never null.
func (s *Snapshot) Normalize() {
	if s.Players == nil {
		s.Players = []Player{}
	}
	if s.Games == nil {
		s.Games = []GameSummary{}
	}
	if s.Events == nil {
		s.Events = []GameEvent{}
	}
	for i := range s.Events {
		e := &s.Events[i]
		if e.AssistIDs == nil {
			e.AssistIDs = []string{}
		}
		if e.PlusPlayerIDs == nil {
			e.PlusPlayerIDs = []string{}
		}
		if e.MinusPlayerIDs == nil {
			e.MinusPlayerIDs = []string{}
		}
	}
}

// IntPtr returns a pointer to the given int value.
func IntPtr(i int) *int {
	return &i
}
