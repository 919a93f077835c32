package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

func runDiscover(ctx context.Context, cmd *cobra.Command, cfg domain.Config) error {
	app, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	catalog, err := app.catalog.Discover(ctx)
	if err != nil {
		explain(err, app.credentialsPath)
		return fmt.Errorf("discover: %w", err)
	}

	return writeCatalog(cmd.OutOrStdout(), catalog)
}
