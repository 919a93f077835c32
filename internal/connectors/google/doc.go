// Package google implements the spreadsheet ports on top of the Google Drive
// and Google Sheets APIs.
//
// This package contains:
//   - Client: driven.SpreadsheetService backed by drive/v3 and sheets/v4
//   - ServiceFactory: builds authorised Clients from domain.Credentials
//   - TokenSource adapter that reports refreshed tokens for persistence
//   - Rate limiting for tab metadata calls
//   - Error handling for common Google API errors (401, 403, 404, 429)
//
// # Usage
//
//	cfg, err := google.LoadOAuthConfig("client_secret.json", scopes)
//	factory := google.NewServiceFactory(cfg, google.FactoryOptions{UserAgent: "Client"})
//	svc, err := factory.Create(ctx, creds)
//
// # OAuth2 Scopes
//
// The default configuration requests:
//   - https://www.googleapis.com/auth/spreadsheets
//   - https://www.googleapis.com/auth/drive
//
// Read-only variants of both scopes are sufficient for discovery and sync.
package google
