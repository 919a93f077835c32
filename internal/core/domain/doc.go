// Package domain defines the core entities of the Google Sheets tap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CatalogEntry / Catalog: discoverable streams, one per spreadsheet tab
//   - Record: a header-keyed row of cell values
//   - Selection: the stream chosen for a sync run
//   - Config / State: tap configuration and the opaque prior-state blob
//   - Credentials: OAuth tokens handed out by a credential provider
//   - Run: a recorded discover or sync invocation
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
