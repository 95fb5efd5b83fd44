package sheets

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"rinklog/pkg/model"

	"github.com/tidwall/gjson"
)

func PlayerToRow(p model.Player) []string {
	return []string{
		p.ID,
		strconv.Itoa(p.Number),
		p.Name,
		p.Position,
	}
}

func GameToRow(g model.GameSummary) []string {
	return []string{
		g.ID,
		g.Opponent,
		g.Date,
		string(g.Status),
	}
}

func EventToRow(e model.GameEvent) []string {
	return []string{
		e.ID,
		e.GameID,
		e.CreatedAt,
		strconv.Itoa(e.Period),
		e.Clock,
		string(e.Type),
		string(e.Strength),
		e.GoalPlayerID,
		encodeList(e.AssistIDs),
		encodeList(e.PlusPlayerIDs),
		encodeList(e.MinusPlayerIDs),
		e.PenaltyPlayerID,
		e.PenaltyInfraction,
		string(e.PenaltySeverity),
		optionalInt(e.PenaltyMinutes),
		e.Notes,
	}
}

func RowToPlayer(r Row) model.Player {
	return model.Player{
		ID:       r.Value(ColumnPlayerID),
		Number:   intOrZero(r.Value(ColumnNumber)),
		Name:     r.Value(ColumnName),
		Position: r.Value(ColumnPosition),
	}
}

func RowToGame(r Row) model.GameSummary {
	return model.GameSummary{
		ID:       r.Value(ColumnGameID),
		Opponent: r.Value(ColumnOpponent),
		Date:     r.Value(ColumnDate),
		Status:   model.GameStatus(r.Value(ColumnStatus)),
	}
}

func RowToEvent(r Row) model.GameEvent {
	e := model.GameEvent{
		ID:                r.Value(ColumnEventID),
		GameID:            r.Value(ColumnGameID),
		CreatedAt:         r.Value(ColumnCreatedAt),
		Period:            intOrZero(r.Value(ColumnPeriod)),
		Clock:             r.Value(ColumnClock),
		Type:              model.EventType(r.Value(ColumnType)),
		Strength:          model.Strength(r.Value(ColumnStrength)),
		GoalPlayerID:      r.Value(ColumnGoalPlayerID),
		AssistIDs:         decodeList(r.Value(ColumnAssistIDs)),
		PlusPlayerIDs:     decodeList(r.Value(ColumnPlusPlayerIDs)),
		MinusPlayerIDs:    decodeList(r.Value(ColumnMinusPlayerIDs)),
		PenaltyPlayerID:   r.Value(ColumnPenaltyPlayerID),
		PenaltyInfraction: r.Value(ColumnPenaltyInfraction),
		PenaltySeverity:   model.PenaltySeverity(r.Value(ColumnPenaltySeverity)),
		Notes:             r.Value(ColumnNotes),
	}
	if n, ok := parseNumber(r.Value(ColumnPenaltyMinutes)); ok {
		e.PenaltyMinutes = model.IntPtr(n)
	}
	return e
}

func PlayersToRows(players []model.Player) [][]string {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = PlayerToRow(p)
	}
	return rows
}

func GamesToRows(games []model.GameSummary) [][]string {
	rows := make([][]string, len(games))
	for i, g := range games {
		rows[i] = GameToRow(g)
	}
	return rows
}

func EventsToRows(events []model.GameEvent) [][]string {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = EventToRow(e)
	}
	return rows
}

func RowsToPlayers(rows []Row) []model.Player {
	players := make([]model.Player, 0, len(rows))
	for _, r := range rows {
		if p := RowToPlayer(r); !blank(p.ID) {
			players = append(players, p)
		}
	}
	return players
}

func RowsToGames(rows []Row) []model.GameSummary {
	games := make([]model.GameSummary, 0, len(rows))
	for _, r := range rows {
		if g := RowToGame(r); !blank(g.ID) {
			games = append(games, g)
		}
	}
	return games
}

func RowsToEvents(rows []Row) []model.GameEvent {
	events := make([]model.GameEvent, 0, len(rows))
	for _, r := range rows {
		if e := RowToEvent(r); !blank(e.ID) {
			events = append(events, e)
		}
	}
	return events
}

// parseNumber reports false for empty or blank cells and for anything that is
// not a finite number inside the int range. Fractions are truncated toward
// zero. Unsigned 0x, 0o and 0b integers are accepted as well.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if base, digits, ok := integerPrefix(s); ok {
		if digits == "" || strings.ContainsAny(digits, "+-_") {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, base, 0)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	// float64(math.MaxInt) rounds up to a power of two, so compare against
	// the negated minimum instead.
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

func integerPrefix(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

func intOrZero(s string) int {
	n, _ := parseNumber(s)
	return n
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// encodeList writes a non-empty list as a compact JSON array and an empty one
// as an empty cell.
func encodeList(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeList never fails. A cell that is empty, not valid JSON, or not a JSON
// array decodes to an empty list so that one corrupt cell cannot block a
// whole load. Non-scalar elements are skipped.
func decodeList(cell string) []string {
	ids := []string{}
	if strings.TrimSpace(cell) == "" || !gjson.Valid(cell) {
		return ids
	}
	parsed := gjson.Parse(cell)
	if !parsed.IsArray() {
		return ids
	}
	for _, item := range parsed.Array() {
		switch item.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			ids = append(ids, item.String())
		}
	}
	return ids
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
