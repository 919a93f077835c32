package google

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// RefreshFunc receives credentials after the access token has been refreshed.
type RefreshFunc func(creds *domain.Credentials) error

// TokenSourceAdapter wraps an oauth2.TokenSource and reports every new access
// token to a RefreshFunc so it can be written back to the credential store.
type TokenSourceAdapter struct {
	base      oauth2.TokenSource
	onRefresh RefreshFunc

	mu   sync.Mutex
	last string
}

// NewTokenSource creates an oauth2.TokenSource for creds that refreshes
// through cfg. onRefresh may be nil.
// The returned TokenSource can be used with option.WithTokenSource() when
// creating Google API services.
func NewTokenSource(
	ctx context.Context, cfg *oauth2.Config, creds *domain.Credentials, onRefresh RefreshFunc,
) oauth2.TokenSource {
	return &TokenSourceAdapter{
		base:      cfg.TokenSource(ctx, ToOAuth2Token(creds)),
		onRefresh: onRefresh,
		last:      creds.AccessToken,
	}
}

// Token implements oauth2.TokenSource interface.
// Called by Google API clients when they need an access token.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	token, err := t.base.Token()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	refreshed := token.AccessToken != t.last
	t.last = token.AccessToken
	t.mu.Unlock()

	if refreshed && t.onRefresh != nil {
		// A failed save only costs a refresh on the next run.
		if err := t.onRefresh(FromOAuth2Token(token)); err != nil {
			logger.Warn("Could not store refreshed credentials: %v", err)
		}
	}

	return token, nil
}
