package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tap-sheets/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a read-only file-based implementation of driven.ConfigStore.
// Files ending in .toml are parsed as TOML, everything else as JSON.
// Nested tables are flattened into dot-notation keys.
type ConfigStore struct {
	*memory.ConfigStore
	filePath string
}

// NewConfigStore loads the configuration file at path.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: config file path is required", domain.ErrInvalidInput)
	}

	s := &ConfigStore{
		ConfigStore: memory.NewConfigStore(),
		filePath:    path,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads configuration from the file.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var loaded map[string]any
	if strings.EqualFold(filepath.Ext(s.filePath), ".toml") {
		err = toml.Unmarshal(data, &loaded)
	} else {
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return fmt.Errorf("%w: parse config %s: %v", domain.ErrInvalidInput, s.filePath, err)
	}

	s.Replace(flattenMap(loaded, ""))
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
