package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// recordMessage is a Singer RECORD message.
type recordMessage struct {
	Type   string        `json:"type"`
	Stream string        `json:"stream"`
	Record domain.Record `json:"record"`
}

// writeCatalog prints the catalog as indented JSON.
func writeCatalog(w io.Writer, catalog *domain.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(catalog); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// writeRecords prints one RECORD message per line.
func writeRecords(w io.Writer, stream string, records []domain.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		msg := recordMessage{Type: "RECORD", Stream: stream, Record: record}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}
