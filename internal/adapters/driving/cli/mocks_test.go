package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

type mockCatalogService struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (m *mockCatalogService) ListPage(_ context.Context, _ string) (*domain.CatalogPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	page := &domain.CatalogPage{}
	if m.catalog != nil {
		page.Entries = m.catalog.Streams
	}
	return page, nil
}

func (m *mockCatalogService) Discover(_ context.Context) (*domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

type mockSyncService struct {
	records  []domain.Record
	err      error
	selected []domain.Selection
}

func (m *mockSyncService) Sync(_ context.Context, selection domain.Selection) ([]domain.Record, error) {
	m.selected = append(m.selected, selection)
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

type mockHistoryService struct {
	runs  []domain.Run
	err   error
	limit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.Run, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// testConfig is the configuration returned by the stubbed loadConfig.
func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.ClientSecretFile = "/tmp/client_secret.json"
	return cfg
}

// resetFlags returns every flag to its default and restores the
// package-level seams when the test ends.
func resetFlags(t *testing.T) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	reset(rootCmd.Flags())
	reset(historyCmd.Flags())

	origLoad, origApp, origHistory := loadConfig, newApp, newHistory
	loadConfig = func(string) (domain.Config, error) { return testConfig(), nil }

	t.Cleanup(func() {
		loadConfig, newApp, newHistory = origLoad, origApp, origHistory
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logger.LevelInfo)
	})
}

// stubApp makes newApp return the given services.
func stubApp(catalog driving.CatalogService, sync driving.SyncService) {
	newApp = func(*cobra.Command, domain.Config) (*tapApp, error) {
		return &tapApp{catalog: catalog, sync: sync}, nil
	}
}

// execute runs the root command and returns its stdout and stderr.
func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := t.TempDir() + "/" + name
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
