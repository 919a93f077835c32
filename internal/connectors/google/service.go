package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/tap-sheets/internal/core/domain"
	"github.com/custodia-labs/tap-sheets/internal/core/ports/driven"
	"github.com/custodia-labs/tap-sheets/internal/logger"
)

// Ensure the adapters implement the ports.
var (
	_ driven.SpreadsheetService        = (*Client)(nil)
	_ driven.SpreadsheetServiceFactory = (*ServiceFactory)(nil)
)

// Value rendering used by GetValues.
const (
	valueRenderOption    = "FORMATTED_VALUE"
	dateTimeRenderOption = "FORMATTED_STRING"
	majorDimension       = "ROWS"
)

// spreadsheetQuery restricts the Drive listing to Google Sheets documents.
var spreadsheetQuery = fmt.Sprintf("mimeType='%s'", domain.SpreadsheetMIMEType)

// Client reads spreadsheets through the Drive and Sheets APIs.
type Client struct {
	drive    *drive.Service
	sheets   *sheets.Service
	pageSize int64
	listTabs func(context.Context, string) ([]domain.Tab, error)
}

// NewClient creates a Client. Tab metadata calls wait on limiter.
func NewClient(driveSvc *drive.Service, sheetsSvc *sheets.Service, limiter *RateLimiter, pageSize int64) *Client {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	c := &Client{
		drive:    driveSvc,
		sheets:   sheetsSvc,
		pageSize: pageSize,
	}
	c.listTabs = Throttle(limiter, c.fetchTabs)
	return c
}

// ListSpreadsheets returns one page of spreadsheets visible to the user.
func (c *Client) ListSpreadsheets(ctx context.Context, pageToken string) (*domain.SpreadsheetPage, error) {
	call := c.drive.Files.List().
		Context(ctx).
		Q(spreadsheetQuery).
		PageSize(c.pageSize).
		Fields("nextPageToken, files(id, name)")
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list spreadsheets: %w", WrapError(err))
	}

	page := &domain.SpreadsheetPage{
		Spreadsheets:  make([]domain.Spreadsheet, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		page.Spreadsheets = append(page.Spreadsheets, domain.Spreadsheet{ID: f.Id, Name: f.Name})
	}

	logger.Debug("Listed %d spreadsheets (next page: %t)", len(page.Spreadsheets), page.NextPageToken != "")
	return page, nil
}

// ListTabs returns the tabs of a spreadsheet in API order.
func (c *Client) ListTabs(ctx context.Context, spreadsheetID string) ([]domain.Tab, error) {
	return c.listTabs(ctx, spreadsheetID)
}

func (c *Client) fetchTabs(ctx context.Context, spreadsheetID string) ([]domain.Tab, error) {
	resp, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("sheets(properties(title))").
		Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, WrapError(err))
	}

	tabs := make([]domain.Tab, 0, len(resp.Sheets))
	for i, sheet := range resp.Sheets {
		title := ""
		if sheet.Properties != nil {
			title = sheet.Properties.Title
		}
		tabs = append(tabs, domain.Tab{Title: title, Index: i})
	}

	logger.Debug("Spreadsheet %s has %d tabs", spreadsheetID, len(tabs))
	return tabs, nil
}

// GetValues returns a range as row-major formatted strings.
func (c *Client) GetValues(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, rng).
		Context(ctx).
		ValueRenderOption(valueRenderOption).
		DateTimeRenderOption(dateTimeRenderOption).
		MajorDimension(majorDimension).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s!%s: %w", spreadsheetID, rng, WrapError(err))
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// FactoryOptions configures the services built by a ServiceFactory.
type FactoryOptions struct {
	// UserAgent is sent with every request (the configured application name).
	UserAgent string

	// RateLimit is the maximum number of tab metadata calls per second.
	// Zero uses DefaultRateLimits.
	RateLimit float64

	// PageSize is the number of spreadsheets per list page.
	PageSize int64

	// OnRefresh receives refreshed credentials. May be nil.
	OnRefresh RefreshFunc

	// ClientOptions are appended to the options of both services.
	ClientOptions []option.ClientOption
}

// ServiceFactory builds authorised Clients.
// Every Client it creates shares one RateLimiter, so the rate holds
// across catalog pages.
type ServiceFactory struct {
	oauth   *oauth2.Config
	opts    FactoryOptions
	limiter *RateLimiter
}

// NewServiceFactory creates a factory that refreshes tokens through cfg.
func NewServiceFactory(cfg *oauth2.Config, opts FactoryOptions) *ServiceFactory {
	limiter := NewRateLimiter(ServiceSheetsMetadata)
	if opts.RateLimit > 0 {
		limiter = NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: opts.RateLimit, BurstSize: 1})
	}
	logger.Debug("Tab metadata calls spaced %s apart", limiter.Interval())

	return &ServiceFactory{
		oauth:   cfg,
		opts:    opts,
		limiter: limiter,
	}
}

// Create returns a Client authorised with creds.
func (f *ServiceFactory) Create(ctx context.Context, creds *domain.Credentials) (driven.SpreadsheetService, error) {
	if !creds.IsValid() {
		return nil, domain.ErrAuthRequired
	}

	ts := NewTokenSource(ctx, f.oauth, creds, f.opts.OnRefresh)
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if f.opts.UserAgent != "" {
		opts = append(opts, option.WithUserAgent(f.opts.UserAgent))
	}
	opts = append(opts, f.opts.ClientOptions...)

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewClient(driveSvc, sheetsSvc, f.limiter, f.opts.PageSize), nil
}
