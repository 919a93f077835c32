package driving

import (
	"context"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// CatalogService discovers the streams available to the authorised user.
type CatalogService interface {
	// ListPage builds catalog entries for one page of the spreadsheet listing.
	// An empty pageToken requests the first page.
	ListPage(ctx context.Context, pageToken string) (*domain.CatalogPage, error)

	// Discover walks every page and returns the full catalog.
	Discover(ctx context.Context) (*domain.Catalog, error)
}
