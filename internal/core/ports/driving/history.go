package driving

import (
	"context"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// HistoryService reports previously recorded runs.
type HistoryService interface {
	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.Run, error)

	// Get returns one run by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Run, error)
}
