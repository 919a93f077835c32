package domain

// DefaultRange is the cell range read by a sync when none is configured.
const DefaultRange = "A1:D"

// Selection identifies the stream a sync run reads.
type Selection struct {
	// StreamID is the tap_stream_id of the selected catalog entry.
	StreamID string

	// Stream is the stream name used when emitting records.
	Stream string

	// SpreadsheetID is the document the range is read from.
	SpreadsheetID string

	// Range is the A1 notation range to fetch.
	Range string
}

// SelectionFromEntry builds a Selection for a catalog entry.
// An empty rng selects DefaultRange.
func SelectionFromEntry(entry CatalogEntry, rng string) Selection {
	if rng == "" {
		rng = DefaultRange
	}
	return Selection{
		StreamID:      entry.TapStreamID,
		Stream:        entry.Stream,
		SpreadsheetID: entry.SpreadsheetID(),
		Range:         rng,
	}
}
