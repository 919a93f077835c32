package driving

import (
	"context"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// SyncService reads the records of a selected stream.
type SyncService interface {
	// Sync fetches the selected range and converts its rows into records.
	// An empty range yields an empty slice and no error.
	Sync(ctx context.Context, selection domain.Selection) ([]domain.Record, error)
}
