package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// acquireCredentials returns cached credentials when they are usable and
// falls back to the interactive authorization flow otherwise.
func acquireCredentials(ctx context.Context, provider driven.CredentialProvider) (*domain.Credentials, error) {
	if provider == nil {
		return nil, domain.ErrAuthRequired
	}

	creds, err := provider.LoadCached(ctx)
	if err != nil {
		logger.Warn("Ignoring stored credentials: %v", err)
		creds = nil
	}
	if creds.IsValid() {
		return creds, nil
	}

	logger.Info("No valid stored credentials, starting authorization")
	creds, err = provider.AuthorizeInteractively(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	if !creds.IsValid() {
		return nil, domain.ErrAuthRequired
	}
	return creds, nil
}

// connect acquires credentials and builds an authorised spreadsheet service.
func connect(
	ctx context.Context,
	provider driven.CredentialProvider,
	factory driven.SpreadsheetServiceFactory,
) (driven.SpreadsheetService, error) {
	if factory == nil {
		return nil, fmt.Errorf("create spreadsheet service: factory not configured")
	}

	creds, err := acquireCredentials(ctx, provider)
	if err != nil {
		return nil, err
	}

	svc, err := factory.Create(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("create spreadsheet service: %w", err)
	}
	return svc, nil
}
