package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultScopes, cfg.Scopes)
	assert.Equal(t, "Client", cfg.ApplicationName)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, int64(1000), cfg.PageSize)
	assert.Equal(t, "A1:D", cfg.Range)
	assert.Empty(t, cfg.ClientSecretFile)
}

func TestDefaultConfig_ScopesAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scopes[0] = "changed"

	assert.NotEqual(t, "changed", DefaultScopes[0])
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.ClientSecretFile = "client_secret.json"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing scopes", func(c *Config) { c.Scopes = nil }, "scopes"},
		{"missing client secret", func(c *Config) { c.ClientSecretFile = "" }, "client_secret_file"},
		{"missing application name", func(c *Config) { c.ApplicationName = "" }, "application_name"},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, "rate_limit"},
		{"page size too large", func(c *Config) { c.PageSize = 1001 }, "page_size"},
		{"page size zero", func(c *Config) { c.PageSize = 0 }, "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
