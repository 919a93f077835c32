package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/auth"
	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tap-sheets/internal/adapters/driving/oauth"
	"github.com/custodia-labs/tap-sheets/internal/connectors/google"
	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
	"github.com/custodia-labs/tap-sheets/internal/core/services"
)

// tapApp holds the services used by one command invocation.
type tapApp struct {
	catalog driving.CatalogService
	sync    driving.SyncService
	closer  func() error

	// credentialsPath is the cached token file, named in auth hints.
	credentialsPath string
}

// Close releases the run store.
func (a *tapApp) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// Service constructors; replaced in tests.
var (
	newApp     = wireApp
	newHistory = wireHistory
)

func wireApp(cmd *cobra.Command, cfg domain.Config) (*tapApp, error) {
	oauthCfg, err := google.LoadOAuthConfig(cfg.ClientSecretFile, cfg.Scopes)
	if err != nil {
		return nil, err
	}

	credentials, err := auth.NewFileCredentialProvider(cfg.CredentialsDir, oauthCfg, selectFlow(cmd))
	if err != nil {
		return nil, err
	}

	factory := google.NewServiceFactory(oauthCfg, google.FactoryOptions{
		UserAgent: cfg.ApplicationName,
		RateLimit: cfg.RateLimit,
		PageSize:  cfg.PageSize,
		OnRefresh: credentials.Save,
	})

	runs, closer, err := openRunStore(cfg.HistoryDir)
	if err != nil {
		return nil, err
	}

	return &tapApp{
		catalog: services.NewCatalogService(credentials, factory, runs),
		sync:    services.NewSyncService(credentials, factory, runs),
		closer:  closer,

		credentialsPath: credentials.Path(),
	}, nil
}

func wireHistory(cfg domain.Config) (driving.HistoryService, func() error, error) {
	runs, closer, err := openRunStore(cfg.HistoryDir)
	if err != nil {
		return nil, nil, err
	}
	return services.NewHistoryService(runs), closer, nil
}

// openRunStore opens SQLite history when dir is set and memory otherwise.
func openRunStore(dir string) (driven.RunStore, func() error, error) {
	if dir == "" {
		return memory.NewRunStore(), func() error { return nil }, nil
	}

	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open run history: %w", err)
	}
	return store.RunStore(), store.Close, nil
}

// selectFlow picks the interactive authorization flow from the auth flags.
func selectFlow(cmd *cobra.Command) auth.Flow {
	if noLocalWebserver {
		return &oauth.PasteCodeFlow{Out: cmd.ErrOrStderr()}
	}
	return &oauth.LocalServerFlow{Port: authHostPort, Out: cmd.ErrOrStderr()}
}
