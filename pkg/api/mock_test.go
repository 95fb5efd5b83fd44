package api

import (
	"context"

	"rinklog/pkg/model"
)

type mockRepository struct {
	LoadFunc  func(ctx context.Context) (*model.Snapshot, error)
	SaveFunc  func(ctx context.Context, snap model.Snapshot) error
	SaveCalls []model.Snapshot
}

func (m *mockRepository) Load(ctx context.Context) (*model.Snapshot, error) {
	return m.LoadFunc(ctx)
}

func (m *mockRepository) Save(ctx context.Context, snap model.Snapshot) error {
	m.SaveCalls = append(m.SaveCalls, snap)
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, snap)
}
