package google

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
)

// LoadOAuthConfig reads an OAuth client secrets file as downloaded from the
// Google Cloud console and returns the oauth2 configuration for scopes.
func LoadOAuthConfig(clientSecretFile string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(clientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse client secret file: %v", domain.ErrAuthInvalid, err)
	}

	return cfg, nil
}

// ToOAuth2Token converts domain credentials to an oauth2 token.
func ToOAuth2Token(creds *domain.Credentials) *oauth2.Token {
	tokenType := creds.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    tokenType,
		Expiry:       creds.Expiry,
	}
}

// FromOAuth2Token converts an oauth2 token to domain credentials.
func FromOAuth2Token(token *oauth2.Token) *domain.Credentials {
	return &domain.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	}
}
