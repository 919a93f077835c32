package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driving"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService builds the stream catalog from the user's spreadsheets.
type CatalogService struct {
	credentials driven.CredentialProvider
	factory     driven.SpreadsheetServiceFactory
	runs        runRecorder
}

// NewCatalogService creates a new catalog service.
// runs may be nil, in which case no history is kept.
func NewCatalogService(
	credentials driven.CredentialProvider,
	factory driven.SpreadsheetServiceFactory,
	runs driven.RunStore,
) *CatalogService {
	return &CatalogService{
		credentials: credentials,
		factory:     factory,
		runs:        newRunRecorder(runs),
	}
}

// ListPage lists one page of spreadsheets and expands each into one entry
// per tab. Credentials are acquired afresh for every page.
func (s *CatalogService) ListPage(ctx context.Context, pageToken string) (*domain.CatalogPage, error) {
	svc, err := connect(ctx, s.credentials, s.factory)
	if err != nil {
		return nil, err
	}

	listing, err := svc.ListSpreadsheets(ctx, pageToken)
	if err != nil {
		return nil, fmt.Errorf("list spreadsheets: %w", err)
	}

	page := &domain.CatalogPage{
		Entries:       []domain.CatalogEntry{},
		NextPageToken: listing.NextPageToken,
	}
	for _, sheet := range listing.Spreadsheets {
		tabs, err := svc.ListTabs(ctx, sheet.ID)
		if err != nil {
			return nil, fmt.Errorf("list tabs of %q: %w", sheet.Name, err)
		}
		if len(tabs) == 0 {
			logger.Debug("Spreadsheet %q has no tabs", sheet.Name)
		}
		for _, tab := range tabs {
			page.Entries = append(page.Entries, domain.NewCatalogEntry(sheet, tab))
		}
	}

	return page, nil
}

// Discover walks the listing until no page token remains.
func (s *CatalogService) Discover(ctx context.Context) (*domain.Catalog, error) {
	run := s.runs.start(domain.RunDiscover, "")
	logger.Info("Starting discovery")

	catalog := &domain.Catalog{Streams: []domain.CatalogEntry{}}
	pageToken := ""
	pages := 0
	for {
		page, err := s.ListPage(ctx, pageToken)
		if err != nil {
			err = fmt.Errorf("discover page %d: %w", pages+1, err)
			s.runs.finish(ctx, run, len(catalog.Streams), err)
			return nil, err
		}
		pages++
		catalog.Streams = append(catalog.Streams, page.Entries...)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	for _, id := range catalog.DuplicateStreamIDs() {
		logger.Warn("Stream ID %q is used by more than one tab", id)
	}

	logger.Info("Discovered %d streams across %d pages", len(catalog.Streams), pages)
	s.runs.finish(ctx, run, len(catalog.Streams), nil)
	return catalog, nil
}
