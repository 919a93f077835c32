package domain

import (
	"strconv"
	"strings"
)

// CatalogEntry describes one discoverable stream: a single tab of a spreadsheet.
type CatalogEntry struct {
	// TapStreamID is "<spreadsheet>-<tab>", both normalised.
	// Not guaranteed unique: two spreadsheets may normalise to the same name.
	TapStreamID string `json:"tap_stream_id"`

	// Stream is the normalised tab title.
	Stream string `json:"stream"`

	// Database is "<spreadsheet>&<spreadsheet ID>".
	Database string `json:"database"`

	// Table is "<tab>-<zero-based tab index>".
	Table string `json:"table"`
}

// Catalog is the list of streams produced by a discovery pass.
type Catalog struct {
	Streams []CatalogEntry `json:"streams"`
}

// Normalise lowercases a name and strips every space from it.
func Normalise(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// NewCatalogEntry builds the catalog entry for the tab at index of a spreadsheet.
func NewCatalogEntry(sheet Spreadsheet, tab Tab) CatalogEntry {
	name := Normalise(sheet.Name)
	title := Normalise(tab.Title)

	return CatalogEntry{
		TapStreamID: name + "-" + title,
		Stream:      title,
		Database:    name + "&" + sheet.ID,
		Table:       title + "-" + strconv.Itoa(tab.Index),
	}
}

// SpreadsheetID recovers the spreadsheet ID from the Database field.
// Entries whose Database carries no ID fall back to TapStreamID.
func (e CatalogEntry) SpreadsheetID() string {
	if i := strings.LastIndex(e.Database, "&"); i >= 0 && i < len(e.Database)-1 {
		return e.Database[i+1:]
	}
	return e.TapStreamID
}

// Find returns the first entry with the given stream ID.
func (c *Catalog) Find(tapStreamID string) (CatalogEntry, bool) {
	for _, entry := range c.Streams {
		if entry.TapStreamID == tapStreamID {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// DuplicateStreamIDs lists stream IDs that occur more than once, in first-seen order.
func (c *Catalog) DuplicateStreamIDs() []string {
	seen := make(map[string]int, len(c.Streams))
	var dups []string
	for _, entry := range c.Streams {
		seen[entry.TapStreamID]++
		if seen[entry.TapStreamID] == 2 {
			dups = append(dups, entry.TapStreamID)
		}
	}
	return dups
}
