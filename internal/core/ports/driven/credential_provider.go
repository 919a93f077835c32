package driven

import (
	"context"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// CredentialProvider supplies OAuth credentials for Google API calls.
// Core services never perform authorization I/O themselves.
type CredentialProvider interface {
	// LoadCached returns previously stored credentials.
	// Returns nil (and no error) when nothing usable is stored.
	LoadCached(ctx context.Context) (*domain.Credentials, error)

	// AuthorizeInteractively runs the user-facing authorization flow,
	// stores the resulting credentials and returns them.
	AuthorizeInteractively(ctx context.Context) (*domain.Credentials, error)
}
