// Package auth provides credential providers for the Google APIs.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/tap-sheets/internal/connectors/google"
	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// Ensure FileCredentialProvider implements the CredentialProvider interface.
var _ driven.CredentialProvider = (*FileCredentialProvider)(nil)

// defaultCredentialsDir is used when no credentials_dir is configured.
const defaultCredentialsDir = ".credentials"

// Flow obtains a new token from the user.
type Flow interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// FileCredentialProvider caches OAuth credentials in a JSON token file and
// runs an interactive Flow when the cache is empty or unusable.
type FileCredentialProvider struct {
	mu    sync.Mutex
	path  string
	oauth *oauth2.Config
	flow  Flow
}

// NewFileCredentialProvider creates a provider storing its token in dir.
// If dir is empty, defaults to ~/.credentials. flow may be nil, in which
// case interactive authorization is unavailable.
func NewFileCredentialProvider(dir string, cfg *oauth2.Config, flow Flow) (*FileCredentialProvider, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, defaultCredentialsDir)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating credentials directory: %w", err)
	}

	return &FileCredentialProvider{
		path:  filepath.Join(dir, domain.CredentialsFileName),
		oauth: cfg,
		flow:  flow,
	}, nil
}

// Path returns the token file path.
func (p *FileCredentialProvider) Path() string {
	return p.path
}

// LoadCached reads the token file. A missing file is not an error.
func (p *FileCredentialProvider) LoadCached(_ context.Context) (*domain.Credentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: parse credentials %s: %v", domain.ErrAuthInvalid, p.path, err)
	}

	return &creds, nil
}

// AuthorizeInteractively runs the flow and stores the resulting credentials.
func (p *FileCredentialProvider) AuthorizeInteractively(ctx context.Context) (*domain.Credentials, error) {
	if p.flow == nil || p.oauth == nil {
		return nil, domain.ErrAuthRequired
	}

	token, err := p.flow.Authorize(ctx, p.oauth)
	if err != nil {
		return nil, err
	}

	creds := google.FromOAuth2Token(token)
	if err := p.Save(creds); err != nil {
		return nil, err
	}

	logger.Info("Storing credentials to %s", p.path)
	return creds, nil
}

// Save writes credentials to the token file with owner-only permissions.
// It also serves as the refresh callback for the Google service factory.
func (p *FileCredentialProvider) Save(creds *domain.Credentials) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	// Write via a temp file so a crash never leaves a truncated token.
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
