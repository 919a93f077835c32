package domain

// SpreadsheetMIMEType is the Drive MIME type of a Google Sheets document.
const SpreadsheetMIMEType = "application/vnd.google-apps.spreadsheet"

// Spreadsheet identifies a spreadsheet document returned by the document list.
type Spreadsheet struct {
	ID   string
	Name string
}

// Tab is one sheet inside a spreadsheet, in API order.
type Tab struct {
	Title string
	Index int
}

// SpreadsheetPage is one page of the spreadsheet listing.
// An empty NextPageToken means the listing is complete.
type SpreadsheetPage struct {
	Spreadsheets  []Spreadsheet
	NextPageToken string
}

// CatalogPage is the catalog built from one SpreadsheetPage.
type CatalogPage struct {
	Entries       []CatalogEntry
	NextPageToken string
}
