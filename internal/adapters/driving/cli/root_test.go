package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

const testProperties = `{
  "streams": [
    {"tap_stream_id": "budget-q1", "stream": "q1", "database": "budget&sheet-1", "table": "q1-0"},
    {"tap_stream_id": "budget-q2", "stream": "q2", "database": "budget&sheet-1", "table": "q2-1"}
  ]
}`

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tap-sheets", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"discover", "properties", "stream", "state", "range"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "logging-level", "noauth-local-webserver", "auth-host-port"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "INFO", rootCmd.PersistentFlags().Lookup("logging-level").DefValue)
	assert.Equal(t, "8080", rootCmd.PersistentFlags().Lookup("auth-host-port").DefValue)
}

func TestRootCmd_RequiresConfig(t *testing.T) {
	resetFlags(t)

	_, _, err := execute("--discover")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag "config" not set`)
}

func TestRootCmd_ConfigLoadError(t *testing.T) {
	resetFlags(t)
	loadConfig = func(string) (domain.Config, error) {
		return domain.Config{}, domain.ErrInvalidInput
	}

	_, _, err := execute("--config", "config.json", "--discover")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "load config")
}

func TestRootCmd_InvalidLoggingLevel(t *testing.T) {
	resetFlags(t)

	_, _, err := execute("--config", "config.json", "--logging-level", "chatty")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown logging level")
}

func TestRootCmd_NoMode(t *testing.T) {
	resetFlags(t)
	catalog := &mockCatalogService{}
	stubApp(catalog, &mockSyncService{})

	stdout, stderr, err := execute("--config", "config.json")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "[INFO] No properties were selected")
	assert.Zero(t, catalog.calls)
}

func TestRootCmd_DiscoverAndPropertiesExclusive(t *testing.T) {
	resetFlags(t)
	stubApp(&mockCatalogService{}, &mockSyncService{})

	_, _, err := execute("--config", "config.json", "--discover", "--properties", "p.json")

	assert.Error(t, err)
}

func TestRootCmd_Discover(t *testing.T) {
	resetFlags(t)
	want := &domain.Catalog{Streams: []domain.CatalogEntry{
		domain.NewCatalogEntry(domain.Spreadsheet{ID: "sheet-1", Name: "Budget"}, domain.Tab{Title: "Q1", Index: 0}),
		domain.NewCatalogEntry(domain.Spreadsheet{ID: "sheet-1", Name: "Budget"}, domain.Tab{Title: "Q2", Index: 1}),
	}}
	stubApp(&mockCatalogService{catalog: want}, &mockSyncService{})

	stdout, _, err := execute("--config", "config.json", "--discover")
	require.NoError(t, err)

	var got domain.Catalog
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, *want, got)
	assert.Contains(t, stdout, `"tap_stream_id": "budget-q1"`)
}

func TestRootCmd_DiscoverEmpty(t *testing.T) {
	resetFlags(t)
	stubApp(&mockCatalogService{catalog: &domain.Catalog{Streams: []domain.CatalogEntry{}}}, &mockSyncService{})

	stdout, _, err := execute("--config", "config.json", "--discover")

	require.NoError(t, err)
	assert.JSONEq(t, `{"streams": []}`, stdout)
}

func TestRootCmd_DiscoverError(t *testing.T) {
	resetFlags(t)
	stubApp(&mockCatalogService{err: domain.ErrRateLimited}, &mockSyncService{})

	stdout, _, err := execute("--config", "config.json", "--discover")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Empty(t, stdout)
}

func TestRootCmd_SyncFirstStream(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	sync := &mockSyncService{records: []domain.Record{
		{"name": "Alice", "age": "30"},
		{"name": "Bob"},
	}}
	stubApp(&mockCatalogService{}, sync)

	stdout, _, err := execute("--config", "config.json", "--properties", props)
	require.NoError(t, err)

	require.Len(t, sync.selected, 1)
	assert.Equal(t, domain.Selection{
		StreamID:      "budget-q1",
		Stream:        "q1",
		SpreadsheetID: "sheet-1",
		Range:         domain.DefaultRange,
	}, sync.selected[0])

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"RECORD","stream":"q1","record":{"name":"Alice","age":"30"}}`, lines[0])
	assert.JSONEq(t, `{"type":"RECORD","stream":"q1","record":{"name":"Bob"}}`, lines[1])
}

func TestRootCmd_SyncNamedStream(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	sync := &mockSyncService{records: []domain.Record{}}
	stubApp(&mockCatalogService{}, sync)

	stdout, _, err := execute("--config", "config.json", "--properties", props, "--stream", "budget-q2")

	require.NoError(t, err)
	require.Len(t, sync.selected, 1)
	assert.Equal(t, "budget-q2", sync.selected[0].StreamID)
	assert.Empty(t, stdout)
}

func TestRootCmd_SyncRange(t *testing.T) {
	t.Run("from config", func(t *testing.T) {
		resetFlags(t)
		loadConfig = func(string) (domain.Config, error) {
			cfg := testConfig()
			cfg.Range = "A1:Z"
			return cfg, nil
		}
		props := writeFile(t, "properties.json", testProperties)
		sync := &mockSyncService{}
		stubApp(&mockCatalogService{}, sync)

		_, _, err := execute("--config", "config.json", "--properties", props)

		require.NoError(t, err)
		assert.Equal(t, "A1:Z", sync.selected[0].Range)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		resetFlags(t)
		props := writeFile(t, "properties.json", testProperties)
		sync := &mockSyncService{}
		stubApp(&mockCatalogService{}, sync)

		_, _, err := execute("--config", "config.json", "--properties", props, "--range", "B2:C9")

		require.NoError(t, err)
		assert.Equal(t, "B2:C9", sync.selected[0].Range)
	})
}

func TestRootCmd_SyncUnknownStream(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	sync := &mockSyncService{}
	stubApp(&mockCatalogService{}, sync)

	_, _, err := execute("--config", "config.json", "--properties", props, "--stream", "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, sync.selected)
}

func TestRootCmd_SyncEmptyProperties(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", `{"streams": []}`)
	stubApp(&mockCatalogService{}, &mockSyncService{})

	_, _, err := execute("--config", "config.json", "--properties", props)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoStreamSelected)
}

func TestRootCmd_SyncMissingProperties(t *testing.T) {
	resetFlags(t)
	stubApp(&mockCatalogService{}, &mockSyncService{})

	_, _, err := execute("--config", "config.json", "--properties", "/nonexistent/properties.json")

	assert.Error(t, err)
}

func TestRootCmd_SyncWithState(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	state := writeFile(t, "state.json", `{"bookmarks": {}}`)
	sync := &mockSyncService{}
	stubApp(&mockCatalogService{}, sync)

	_, stderr, err := execute("--config", "config.json", "--properties", props, "--state", state,
		"--logging-level", "DEBUG")

	require.NoError(t, err)
	assert.Len(t, sync.selected, 1)
	assert.Contains(t, stderr, "Loaded state from")
}

func TestRootCmd_SyncInvalidState(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	state := writeFile(t, "state.json", `{not json`)
	sync := &mockSyncService{}
	stubApp(&mockCatalogService{}, sync)

	_, _, err := execute("--config", "config.json", "--properties", props, "--state", state)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, sync.selected)
}

func TestRootCmd_SyncError(t *testing.T) {
	resetFlags(t)
	props := writeFile(t, "properties.json", testProperties)
	stubApp(&mockCatalogService{}, &mockSyncService{err: domain.ErrAuthRequired})

	stdout, _, err := execute("--config", "config.json", "--properties", props)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthRequired))
	assert.Empty(t, stdout)
}
