package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

var validCreds = &domain.Credentials{AccessToken: "token", RefreshToken: "refresh"}

// mockCredentialProvider implements driven.CredentialProvider.
type mockCredentialProvider struct {
	cached         *domain.Credentials
	cachedErr      error
	interactive    *domain.Credentials
	interactiveErr error

	loadCalls        int
	interactiveCalls int
}

func (m *mockCredentialProvider) LoadCached(_ context.Context) (*domain.Credentials, error) {
	m.loadCalls++
	return m.cached, m.cachedErr
}

func (m *mockCredentialProvider) AuthorizeInteractively(_ context.Context) (*domain.Credentials, error) {
	m.interactiveCalls++
	return m.interactive, m.interactiveErr
}

// mockSpreadsheetService implements driven.SpreadsheetService.
type mockSpreadsheetService struct {
	pages     map[string]*domain.SpreadsheetPage
	tabs      map[string][]domain.Tab
	values    map[string][][]string
	listErr   error
	tabsErr   error
	valuesErr error

	listTokens []string
	tabCalls   []string
	valueCalls []string
}

func (m *mockSpreadsheetService) ListSpreadsheets(_ context.Context, pageToken string) (*domain.SpreadsheetPage, error) {
	m.listTokens = append(m.listTokens, pageToken)
	if m.listErr != nil {
		return nil, m.listErr
	}
	page, ok := m.pages[pageToken]
	if !ok {
		return nil, errors.New("unknown page token " + pageToken)
	}
	return page, nil
}

func (m *mockSpreadsheetService) ListTabs(_ context.Context, id string) ([]domain.Tab, error) {
	m.tabCalls = append(m.tabCalls, id)
	if m.tabsErr != nil {
		return nil, m.tabsErr
	}
	return m.tabs[id], nil
}

func (m *mockSpreadsheetService) GetValues(_ context.Context, id, rng string) ([][]string, error) {
	m.valueCalls = append(m.valueCalls, id+"!"+rng)
	if m.valuesErr != nil {
		return nil, m.valuesErr
	}
	return m.values[id], nil
}

// mockFactory implements driven.SpreadsheetServiceFactory.
type mockFactory struct {
	svc       driven.SpreadsheetService
	err       error
	creates   int
	lastCreds *domain.Credentials
}

func (m *mockFactory) Create(_ context.Context, creds *domain.Credentials) (driven.SpreadsheetService, error) {
	m.creates++
	m.lastCreds = creds
	if m.err != nil {
		return nil, m.err
	}
	return m.svc, nil
}

// failingRunStore implements driven.RunStore and rejects every save.
type failingRunStore struct{}

func (failingRunStore) Save(context.Context, domain.Run) error { return errors.New("disk full") }
func (failingRunStore) Get(context.Context, string) (*domain.Run, error) {
	return nil, domain.ErrNotFound
}
func (failingRunStore) List(context.Context, int) ([]domain.Run, error) { return nil, nil }
