package workbook

import (
	"context"
	"errors"
	"testing"

	"rinklog/pkg/config"
	"rinklog/pkg/model"
	"rinklog/pkg/sheets"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTables = config.Tables{Roster: "Roster", Games: "Games", Events: "Events"}

func newTestRepository(t *testing.T, store sheets.Store) *Repository {
	t.Helper()
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	repo, err := New(testTables, store, logger)
	require.NoError(t, err)
	return repo
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Players: []model.Player{
			{ID: "p1", Number: 7, Name: "Ann", Position: "C"},
			{ID: "p2", Number: 12, Name: "Bea", Position: "D"},
			{ID: "p3", Number: 30, Name: "Cat", Position: "G"},
		},
		Games: []model.GameSummary{
			{ID: "g1", Opponent: "Sharks", Date: "2025-01-04T19:00:00Z", Status: model.GameFinal},
		},
		Events: []model.GameEvent{
			{
				ID: "e1", GameID: "g1", CreatedAt: "2025-01-04T19:20:00Z",
				Period: 1, Clock: "12:34", Type: model.EventGoalFor, Strength: model.StrengthEven,
				GoalPlayerID:   "p1",
				AssistIDs:      []string{"p2"},
				PlusPlayerIDs:  []string{"p1", "p2", "p3"},
				MinusPlayerIDs: []string{},
			},
			{
				ID: "e2", GameID: "g1", CreatedAt: "2025-01-04T19:45:00Z",
				Period: 2, Clock: "05:00", Type: model.EventPenalty, Strength: model.StrengthEven,
				AssistIDs:         []string{},
				PlusPlayerIDs:     []string{},
				MinusPlayerIDs:    []string{},
				PenaltyPlayerID:   "p2",
				PenaltyInfraction: "Hooking",
				PenaltySeverity:   model.SeverityMinor,
				PenaltyMinutes:    model.IntPtr(2),
				Notes:             "late in the period",
			},
		},
	}
}

func TestNewRequiresTableNames(t *testing.T) {
	_, err := New(config.Tables{Roster: "Roster"}, newMemStore(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)
	assert.Contains(t, err.Error(), "GAMES_TABLE")
	assert.Contains(t, err.Error(), "EVENTS_TABLE")
}

func TestSaveThenLoad(t *testing.T) {
	store := newMemStore()
	repo := newTestRepository(t, store)
	ctx := context.Background()

	want := testSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSaveShrinksAndGrows(t *testing.T) {
	store := newMemStore()
	repo := newTestRepository(t, store)
	ctx := context.Background()

	snap := testSnapshot()
	require.NoError(t, repo.Save(ctx, snap))
	assert.Len(t, store.tables["Roster"].rows, 3)

	snap.Players = snap.Players[:1]
	require.NoError(t, repo.Save(ctx, snap))
	// The table keeps its size; the rows that fell away are blank.
	assert.Len(t, store.tables["Roster"].rows, 3)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Players, got.Players)

	snap.Players = append(snap.Players,
		model.Player{ID: "p4", Number: 4, Name: "Dee"},
		model.Player{ID: "p5", Number: 5, Name: "Eve"},
		model.Player{ID: "p6", Number: 6, Name: "Fay"},
	)
	require.NoError(t, repo.Save(ctx, snap))
	assert.Len(t, store.tables["Roster"].rows, 4)

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Players, got.Players)
}

func TestSaveEmptySnapshot(t *testing.T) {
	store := newMemStore()
	repo := newTestRepository(t, store)
	ctx := context.Background()

	var snap model.Snapshot
	snap.Normalize()
	require.NoError(t, repo.Save(ctx, snap))

	for _, name := range []string{"Roster", "Games", "Events"} {
		assert.Len(t, store.tables[name].rows, 1, name)
	}

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Players)
	assert.Empty(t, got.Games)
	assert.Empty(t, got.Events)
	assert.NotNil(t, got.Players)
}

func TestLoadFailures(t *testing.T) {
	t.Run("schema mismatch", func(t *testing.T) {
		store := newMemStore()
		store.tables["Events"].header = sheets.EventsSchema.Columns[:10]
		repo := newTestRepository(t, store)

		snap, err := repo.Load(context.Background())
		assert.Nil(t, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, sheets.ErrSchema)
		assert.Contains(t, err.Error(), "Events")
		assert.Contains(t, err.Error(), "notes")
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemStore()
		store.failOn["Rows:Games"] = errors.New("throttled")
		repo := newTestRepository(t, store)

		snap, err := repo.Load(context.Background())
		assert.Nil(t, snap)
		assert.ErrorIs(t, err, sheets.ErrStore)
	})
}

func TestLoadIgnoresBlankRows(t *testing.T) {
	store := newMemStore()
	store.tables["Roster"].rows = [][]interface{}{
		{"", "", "", ""},
		{"p1", float64(7), "Ann", "C"},
		{nil, nil, nil, nil},
	}
	repo := newTestRepository(t, store)

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Player{{ID: "p1", Number: 7, Name: "Ann", Position: "C"}}, snap.Players)
}

func TestSavePartialFailure(t *testing.T) {
	store := newMemStore()
	store.failOn["WriteRange:Games"] = errors.New("locked for editing")
	repo := newTestRepository(t, store)

	err := repo.Save(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.ErrorIs(t, err, sheets.ErrStore)
	assert.Contains(t, err.Error(), "save games")
	assert.Contains(t, err.Error(), "locked for editing")

	// The other tables were written regardless.
	assert.Equal(t, "p1", store.tables["Roster"].rows[0][0])
	assert.Equal(t, "e1", store.tables["Events"].rows[0][0])
}
