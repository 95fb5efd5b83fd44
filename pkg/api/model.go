package api

import (
	"context"

	"rinklog/pkg/model"
)

// Repository is the persistence behind the load and save endpoints.
type Repository interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap model.Snapshot) error
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type indexResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}
