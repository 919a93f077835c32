package driven

import (
	"context"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// SpreadsheetService reads spreadsheets from the document service.
type SpreadsheetService interface {
	// ListSpreadsheets returns one page of spreadsheets visible to the user.
	// An empty pageToken requests the first page.
	ListSpreadsheets(ctx context.Context, pageToken string) (*domain.SpreadsheetPage, error)

	// ListTabs returns the tabs of a spreadsheet in API order.
	// Calls are rate limited by the implementation.
	ListTabs(ctx context.Context, spreadsheetID string) ([]domain.Tab, error)

	// GetValues returns a range as row-major formatted display strings.
	// Returns an empty slice when the range holds no values.
	GetValues(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// SpreadsheetServiceFactory builds a SpreadsheetService authorised with credentials.
type SpreadsheetServiceFactory interface {
	Create(ctx context.Context, creds *domain.Credentials) (SpreadsheetService, error)
}
