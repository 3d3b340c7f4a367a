package server

import (
	"context"

	"github.com/etnz/wealth/store"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// StoreHealthService verifies the record store is reachable.
type StoreHealthService struct {
	Store store.Store
}

// Probe implements the HealthService interface.
func (s StoreHealthService) Probe(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	return store.Ping(ctx, s.Store)
}
