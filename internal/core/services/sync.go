package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// SyncService reads one stream and converts it into records.
type SyncService struct {
	credentials driven.CredentialProvider
	factory     driven.SpreadsheetServiceFactory
	runs        runRecorder
}

// NewSyncService creates a new sync service.
// runs may be nil, in which case no history is kept.
func NewSyncService(
	credentials driven.CredentialProvider,
	factory driven.SpreadsheetServiceFactory,
	runs driven.RunStore,
) *SyncService {
	return &SyncService{
		credentials: credentials,
		factory:     factory,
		runs:        newRunRecorder(runs),
	}
}

// Sync fetches the selection's range and builds records keyed by the header row.
func (s *SyncService) Sync(ctx context.Context, selection domain.Selection) ([]domain.Record, error) {
	if selection.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: selection has no spreadsheet", domain.ErrNoStreamSelected)
	}
	if selection.Range == "" {
		selection.Range = domain.DefaultRange
	}

	run := s.runs.start(domain.RunSync, selection.StreamID)
	logger.Info("Syncing stream %s (range %s)", selection.StreamID, selection.Range)

	records, err := s.read(ctx, selection)
	s.runs.finish(ctx, run, len(records), err)
	if err != nil {
		return nil, err
	}

	logger.Info("Read %d records from stream %s", len(records), selection.StreamID)
	return records, nil
}

func (s *SyncService) read(ctx context.Context, selection domain.Selection) ([]domain.Record, error) {
	svc, err := connect(ctx, s.credentials, s.factory)
	if err != nil {
		return nil, err
	}

	rows, err := svc.GetValues(ctx, selection.SpreadsheetID, selection.Range)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", selection.StreamID, err)
	}
	if len(rows) == 0 {
		logger.Info("No data found.")
	}

	return domain.BuildRecords(rows), nil
}
