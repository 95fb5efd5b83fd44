package workbook

import (
	"context"
	"fmt"

	"rinklog/pkg/config"
	"rinklog/pkg/sheets"
	"rinklog/pkg/sheets/google"
	"rinklog/pkg/sheets/graph"

	log "github.com/sirupsen/logrus"
)

// Open validates cfg and connects the configured backend. Nothing remote is
// called when the configuration is incomplete.
func Open(ctx context.Context, cfg *config.Config, logger log.FieldLogger) (*Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store sheets.Store
	switch cfg.Backend {
	case config.BackendGraph:
		store = graph.NewClient(ctx, cfg.Graph)
	case config.BackendGoogle:
		s, err := google.NewStore(ctx, cfg.Google)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return New(cfg.Tables, store, logger)
}
