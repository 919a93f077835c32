package domain

import "fmt"

// Configuration defaults.
const (
	DefaultApplicationName = "Client"
	DefaultRateLimit       = 1.0
	DefaultPageSize        = 1000
	CredentialsFileName    = "sheets.googleapis.com-singer-tap.json"
)

// DefaultScopes are the scopes the tap needs for discovery and sync.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// Config holds the tap configuration loaded from the --config file.
type Config struct {
	// Scopes are the OAuth scopes requested during authorization.
	Scopes []string

	// ClientSecretFile is the path of the OAuth client secrets JSON.
	ClientSecretFile string

	// ApplicationName is sent to Google as the user agent.
	ApplicationName string

	// CredentialsDir holds the cached token file. Empty means ~/.credentials.
	CredentialsDir string

	// RateLimit is the maximum number of tab metadata calls per second.
	RateLimit float64

	// PageSize is the number of spreadsheets requested per list page.
	PageSize int64

	// Range is the cell range read by a sync.
	Range string

	// HistoryDir holds the run history database. Empty keeps history in memory.
	HistoryDir string
}

// DefaultConfig returns a Config with every optional field defaulted.
func DefaultConfig() Config {
	return Config{
		Scopes:          append([]string(nil), DefaultScopes...),
		ApplicationName: DefaultApplicationName,
		RateLimit:       DefaultRateLimit,
		PageSize:        DefaultPageSize,
		Range:           DefaultRange,
	}
}

// Validate checks that the required fields are present and sane.
func (c Config) Validate() error {
	if len(c.Scopes) == 0 {
		return fmt.Errorf("%w: scopes is required", ErrInvalidInput)
	}
	if c.ClientSecretFile == "" {
		return fmt.Errorf("%w: client_secret_file is required", ErrInvalidInput)
	}
	if c.ApplicationName == "" {
		return fmt.Errorf("%w: application_name is required", ErrInvalidInput)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit must be positive", ErrInvalidInput)
	}
	if c.PageSize <= 0 || c.PageSize > DefaultPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalidInput, DefaultPageSize)
	}
	return nil
}
