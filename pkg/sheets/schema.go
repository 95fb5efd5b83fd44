package sheets

import "strings"

type Kind string

const (
	KindRoster Kind = "roster"
	KindGames  Kind = "games"
	KindEvents Kind = "events"
)

// Column names as they appear in the workbook header rows.
const (
	ColumnPlayerID = "PlayerId"
	ColumnNumber   = "number"
	ColumnName     = "name"
	ColumnPosition = "position"

	ColumnGameID   = "GameId"
	ColumnOpponent = "opponent"
	ColumnDate     = "date"
	ColumnStatus   = "status"

	ColumnEventID           = "EventId"
	ColumnCreatedAt         = "createdAt"
	ColumnPeriod            = "period"
	ColumnClock             = "clock"
	ColumnType              = "type"
	ColumnStrength          = "strength"
	ColumnGoalPlayerID      = "goalPlayerId"
	ColumnAssistIDs         = "assistIds"
	ColumnPlusPlayerIDs     = "plusPlayerIds"
	ColumnMinusPlayerIDs    = "minusPlayerIds"
	ColumnPenaltyPlayerID   = "penaltyPlayerId"
	ColumnPenaltyInfraction = "penaltyInfraction"
	ColumnPenaltySeverity   = "penaltySeverity"
	ColumnPenaltyMinutes    = "penaltyMinutes"
	ColumnNotes             = "notes"
)

// Schema is the required, ordered column set of one record kind. The order is
// the order the Row Codec encodes cells in.
type Schema struct {
	Kind     Kind
	Columns  []string
	IDColumn string
}

var (
	RosterSchema = Schema{
		Kind:     KindRoster,
		Columns:  []string{ColumnPlayerID, ColumnNumber, ColumnName, ColumnPosition},
		IDColumn: ColumnPlayerID,
	}
	GamesSchema = Schema{
		Kind:     KindGames,
		Columns:  []string{ColumnGameID, ColumnOpponent, ColumnDate, ColumnStatus},
		IDColumn: ColumnGameID,
	}
	EventsSchema = Schema{
		Kind: KindEvents,
		Columns: []string{
			ColumnEventID,
			ColumnGameID,
			ColumnCreatedAt,
			ColumnPeriod,
			ColumnClock,
			ColumnType,
			ColumnStrength,
			ColumnGoalPlayerID,
			ColumnAssistIDs,
			ColumnPlusPlayerIDs,
			ColumnMinusPlayerIDs,
			ColumnPenaltyPlayerID,
			ColumnPenaltyInfraction,
			ColumnPenaltySeverity,
			ColumnPenaltyMinutes,
			ColumnNotes,
		},
		IDColumn: ColumnEventID,
	}
)

// SchemaFor returns the registered schema of a kind.
func SchemaFor(kind Kind) (Schema, bool) {
	switch kind {
	case KindRoster:
		return RosterSchema, true
	case KindGames:
		return GamesSchema, true
	case KindEvents:
		return EventsSchema, true
	}
	return Schema{}, false
}

// Width is the number of cells the codec produces for this kind.
func (s Schema) Width() int {
	return len(s.Columns)
}

// canonical is the case and whitespace insensitive form of a column name.
func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
