package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// runRecorder writes run history. A nil store disables recording.
type runRecorder struct {
	store driven.RunStore
	now   func() time.Time
}

func newRunRecorder(store driven.RunStore) runRecorder {
	return runRecorder{store: store, now: time.Now}
}

func (r runRecorder) start(mode domain.RunMode, streamID string) domain.Run {
	return domain.Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		StreamID:  streamID,
		StartedAt: r.now(),
	}
}

// finish stamps the run and saves it. History is best effort: a failed
// save is logged and never fails the run itself.
func (r runRecorder) finish(ctx context.Context, run domain.Run, items int, runErr error) {
	run.FinishedAt = r.now()
	run.Items = items
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, run); err != nil {
		logger.Warn("Could not record %s run %s: %v", run.Mode, run.ID, err)
	}
}
