package domain

import "time"

// RunMode identifies what a recorded run did.
type RunMode string

const (
	// RunDiscover is a catalog discovery pass.
	RunDiscover RunMode = "discover"
	// RunSync is a single-stream sync.
	RunSync RunMode = "sync"
)

// Run records one invocation of the tap.
type Run struct {
	// ID is a UUID assigned when the run starts.
	ID string

	// Mode is discover or sync.
	Mode RunMode

	// StreamID is the synced stream. Empty for discovery.
	StreamID string

	// StartedAt and FinishedAt bracket the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Items counts catalog entries (discover) or records (sync).
	Items int

	// Error is the failure message, empty on success.
	Error string
}

// Succeeded reports whether the run finished without error.
func (r Run) Succeeded() bool {
	return r.Error == ""
}

// Duration is the wall-clock length of a finished run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
