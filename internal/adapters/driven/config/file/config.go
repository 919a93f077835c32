package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyScopes           = "scopes"
	KeyClientSecretFile = "client_secret_file"
	KeyApplicationName  = "application_name"
	KeyCredentialsDir   = "credentials_dir"
	KeyRateLimit        = "rate_limit"
	KeyPageSize         = "page_size"
	KeyRange            = "range"
	KeyHistoryDir       = "history_dir"
)

// requiredKeys must be present in every config file.
var requiredKeys = []string{KeyScopes, KeyClientSecretFile, KeyApplicationName}

// BuildConfig reads the tap configuration from store, applies defaults for
// absent optional keys and validates the result. A missing required key
// fails with domain.ErrInvalidInput naming the key.
func BuildConfig(store driven.ConfigStore) (domain.Config, error) {
	for _, key := range requiredKeys {
		if _, ok := store.Get(key); !ok {
			return domain.Config{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, key)
		}
	}

	cfg := domain.DefaultConfig()
	cfg.Scopes = store.GetStringSlice(KeyScopes)
	cfg.ClientSecretFile = expandHome(store.GetString(KeyClientSecretFile))
	cfg.ApplicationName = store.GetString(KeyApplicationName)
	cfg.CredentialsDir = expandHome(store.GetString(KeyCredentialsDir))
	if _, ok := store.Get(KeyRateLimit); ok {
		cfg.RateLimit = store.GetFloat(KeyRateLimit)
	}
	if _, ok := store.Get(KeyPageSize); ok {
		cfg.PageSize = int64(store.GetInt(KeyPageSize))
	}
	if rng := store.GetString(KeyRange); rng != "" {
		cfg.Range = rng
	}
	cfg.HistoryDir = expandHome(store.GetString(KeyHistoryDir))

	// Relative secret paths are resolved against the config file.
	if cfg.ClientSecretFile != "" && !filepath.IsAbs(cfg.ClientSecretFile) {
		if _, err := os.Stat(cfg.ClientSecretFile); err != nil {
			candidate := filepath.Join(filepath.Dir(store.Path()), cfg.ClientSecretFile)
			if _, err := os.Stat(candidate); err == nil {
				cfg.ClientSecretFile = candidate
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
