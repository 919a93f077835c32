package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

func runSync(ctx context.Context, cmd *cobra.Command, cfg domain.Config) error {
	catalog, err := file.LoadCatalog(propertiesPath)
	if err != nil {
		return err
	}

	if statePath != "" {
		state, err := file.LoadState(statePath)
		if err != nil {
			return err
		}
		logger.Debug("Loaded state from %s (%d bytes)", statePath, len(state.Raw))
	}

	entry, err := selectStream(catalog, streamID)
	if err != nil {
		return err
	}

	rng := rangeOverride
	if rng == "" {
		rng = cfg.Range
	}
	selection := domain.SelectionFromEntry(entry, rng)

	app, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	records, err := app.sync.Sync(ctx, selection)
	if err != nil {
		explain(err, app.credentialsPath)
		return fmt.Errorf("sync: %w", err)
	}

	return writeRecords(cmd.OutOrStdout(), selection.Stream, records)
}

// selectStream picks the entry named by id, or the first entry when id is empty.
func selectStream(catalog *domain.Catalog, id string) (domain.CatalogEntry, error) {
	if id != "" {
		entry, ok := catalog.Find(id)
		if !ok {
			return domain.CatalogEntry{}, fmt.Errorf("%w: stream %q is not in the properties", domain.ErrNotFound, id)
		}
		return entry, nil
	}

	if len(catalog.Streams) == 0 {
		return domain.CatalogEntry{}, fmt.Errorf("%w: properties list no streams", domain.ErrNoStreamSelected)
	}
	return catalog.Streams[0], nil
}
