package domain

import "time"

// Credentials holds the OAuth tokens used to call Google APIs.
type Credentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the access token has expired.
func (c *Credentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// IsValid reports whether the credentials can authorize a request,
// either directly or after a refresh.
func (c *Credentials) IsValid() bool {
	if c == nil {
		return false
	}
	if c.RefreshToken != "" {
		return true
	}
	return c.AccessToken != "" && !c.IsExpired()
}
