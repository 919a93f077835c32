package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded runs.
type HistoryService struct {
	store driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit runs, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.store == nil {
		return []domain.Run{}, nil
	}
	return s.store.List(ctx, limit)
}

// Get returns the run with the given ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
	}
	return s.store.Get(ctx, id)
}
