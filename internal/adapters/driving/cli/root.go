// Package cli implements the tap-sheets command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// defaultAuthHostPort is the first port tried for the OAuth callback server.
const defaultAuthHostPort = 8080

var rootCmd = &cobra.Command{
	Use:   "tap-sheets",
	Short: "Singer tap for Google Sheets",
	Long: `tap-sheets discovers the spreadsheets visible to the authorised Google
account and emits one catalog stream per tab (--discover), or reads one
selected stream and writes its rows as Singer RECORD messages (--properties).

Catalog and records are written to stdout; logs go to stderr.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runTap,
}

// version will be set by main
var version = "dev"

// Flags.
var (
	configPath       string
	discoverMode     bool
	propertiesPath   string
	streamID         string
	statePath        string
	rangeOverride    string
	loggingLevel     string
	noLocalWebserver bool
	authHostPort     int
)

// loadConfig reads and validates the --config file.
var loadConfig = func(path string) (domain.Config, error) {
	store, err := file.NewConfigStore(path)
	if err != nil {
		return domain.Config{}, err
	}
	return file.BuildConfig(store)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "tap-sheets version %s\n" .Version}}`)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (JSON, or TOML with a .toml extension)")
	pf.StringVar(&loggingLevel, "logging-level", "INFO", "Log level: DEBUG, INFO, WARN or ERROR")
	pf.BoolVar(&noLocalWebserver, "noauth-local-webserver", false,
		"Authorise by pasting a code instead of running a local callback server")
	pf.IntVar(&authHostPort, "auth-host-port", defaultAuthHostPort, "Port for the local OAuth callback server")

	f := rootCmd.Flags()
	f.BoolVarP(&discoverMode, "discover", "d", false, "Discover streams and print the catalog")
	f.StringVarP(&propertiesPath, "properties", "p", "", "Catalog file selecting the stream to sync")
	f.StringVar(&streamID, "stream", "", "tap_stream_id to sync (defaults to the first stream in --properties)")
	f.StringVarP(&statePath, "state", "s", "", "State file from a previous run")
	f.StringVar(&rangeOverride, "range", "", "A1 range to read (overrides the configured range)")
	rootCmd.MarkFlagsMutuallyExclusive("discover", "properties")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())

	level, err := logger.ParseLevel(loggingLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// requireConfig loads the configuration named by --config.
func requireConfig() (domain.Config, error) {
	if configPath == "" {
		return domain.Config{}, errors.New(`required flag "config" not set`)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return domain.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runTap(cmd *cobra.Command, _ []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case discoverMode:
		return runDiscover(ctx, cmd, cfg)
	case propertiesPath != "":
		return runSync(ctx, cmd, cfg)
	default:
		logger.Info("No properties were selected")
		return nil
	}
}
