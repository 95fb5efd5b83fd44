// Package workbook keeps the roster, game list and event log in sync with
// their three tables in the remote workbook.
package workbook

import (
	"context"
	"fmt"

	"rinklog/pkg/config"
	"rinklog/pkg/model"
	"rinklog/pkg/sheets"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Repository loads and saves whole snapshots. It assumes it is the only
// writer: two concurrent saves against the same tables can interleave.
type Repository struct {
	tables config.Tables
	store  sheets.Store
	writer *sheets.Writer
	logger log.FieldLogger
}

func New(tables config.Tables, store sheets.Store, logger log.FieldLogger) (*Repository, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Repository{
		tables: tables,
		store:  store,
		writer: sheets.NewWriter(store, logger),
		logger: logger,
	}, nil
}

// Load reads all three tables concurrently. Any failure fails the whole load
// and no partial snapshot is returned.
func (r *Repository) Load(ctx context.Context) (*model.Snapshot, error) {
	var players, games, events []sheets.Row

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		players, err = sheets.ReadTable(gctx, r.store, r.tables.Roster, sheets.RosterSchema)
		return err
	})
	g.Go(func() (err error) {
		games, err = sheets.ReadTable(gctx, r.store, r.tables.Games, sheets.GamesSchema)
		return err
	})
	g.Go(func() (err error) {
		events, err = sheets.ReadTable(gctx, r.store, r.tables.Events, sheets.EventsSchema)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.WithError(err).Error("failed to load workbook tables")
		return nil, err
	}

	snap := &model.Snapshot{
		Players: sheets.RowsToPlayers(players),
		Games:   sheets.RowsToGames(games),
		Events:  sheets.RowsToEvents(events),
	}
	r.logger.WithFields(log.Fields{
		"players": len(snap.Players),
		"games":   len(snap.Games),
		"events":  len(snap.Events),
	}).Info("loaded workbook tables")
	return snap, nil
}

// Save replaces the contents of all three tables concurrently. The writes are
// independent: one table failing neither cancels nor rolls back the others,
// so a failed save may leave some tables updated. The first error is returned.
func (r *Repository) Save(ctx context.Context, snap model.Snapshot) error {
	jobs := []struct {
		table  string
		schema sheets.Schema
		rows   [][]string
	}{
		{r.tables.Roster, sheets.RosterSchema, sheets.PlayersToRows(snap.Players)},
		{r.tables.Games, sheets.GamesSchema, sheets.GamesToRows(snap.Games)},
		{r.tables.Events, sheets.EventsSchema, sheets.EventsToRows(snap.Events)},
	}

	var g errgroup.Group
	for _, job := range jobs {
		g.Go(func() error {
			if _, err := r.writer.ReplaceRows(ctx, job.table, job.schema, job.rows); err != nil {
				r.logger.WithField("table", job.table).WithError(err).Error("failed to save table")
				return fmt.Errorf("save %s: %w", job.schema.Kind, err)
			}
			return nil
		})
	}
	return g.Wait()
}
