package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// LoadState reads the --state file. The content is kept verbatim.
func LoadState(path string) (domain.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.State{}, fmt.Errorf("read state: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return domain.State{}, fmt.Errorf("%w: state file %s is not valid JSON", domain.ErrInvalidInput, path)
	}
	return domain.State{Raw: data}, nil
}

// LoadCatalog reads a --properties file. Both a catalog object and the
// legacy list of catalogs are accepted; lists are merged in order.
func LoadCatalog(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog JSON in either accepted form.
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: properties are empty", domain.ErrInvalidInput)
	}

	if trimmed[0] == '[' {
		var list []domain.Catalog
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: parse properties: %v", domain.ErrInvalidInput, err)
		}
		merged := &domain.Catalog{Streams: []domain.CatalogEntry{}}
		for _, c := range list {
			merged.Streams = append(merged.Streams, c.Streams...)
		}
		return merged, nil
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(trimmed, &catalog); err != nil {
		return nil, fmt.Errorf("%w: parse properties: %v", domain.ErrInvalidInput, err)
	}
	if catalog.Streams == nil {
		catalog.Streams = []domain.CatalogEntry{}
	}
	return &catalog, nil
}
