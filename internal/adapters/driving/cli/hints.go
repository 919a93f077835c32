package cli

import (
	"github.com/custodia-labs/tap-sheets/internal/connectors/google"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// explain logs what the user can do about a failed discover or sync.
func explain(err error, credentialsPath string) {
	switch {
	case google.IsRateLimited(err):
		logger.Warn("Google API rate limit reached; lower rate_limit in the config or re-run after the quota resets")
	case google.IsUnauthorized(err):
		logger.Warn("Stored credentials were rejected; delete %s and re-run to authorise again", credentialsPath)
	case google.IsNotFound(err):
		logger.Warn("Spreadsheet not found; it may have been deleted or unshared, re-run with --discover")
	}
}
