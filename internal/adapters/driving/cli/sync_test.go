package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

func TestSelectStream(t *testing.T) {
	catalog := &domain.Catalog{Streams: []domain.CatalogEntry{
		{TapStreamID: "a-one", Stream: "one", Database: "a&id-a", Table: "one-0"},
		{TapStreamID: "b-two", Stream: "two", Database: "b&id-b", Table: "two-0"},
	}}

	t.Run("first by default", func(t *testing.T) {
		entry, err := selectStream(catalog, "")
		require.NoError(t, err)
		assert.Equal(t, "a-one", entry.TapStreamID)
	})

	t.Run("by id", func(t *testing.T) {
		entry, err := selectStream(catalog, "b-two")
		require.NoError(t, err)
		assert.Equal(t, "id-b", entry.SpreadsheetID())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := selectStream(catalog, "c-three")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty catalog", func(t *testing.T) {
		_, err := selectStream(&domain.Catalog{}, "")
		assert.ErrorIs(t, err, domain.ErrNoStreamSelected)
	})
}
