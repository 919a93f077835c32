package domain

// State is the opaque prior-state blob passed with --state.
// The tap carries it but never reads or mutates it.
type State struct {
	Raw []byte
}

// IsEmpty reports whether no state was supplied.
func (s State) IsEmpty() bool {
	return len(s.Raw) == 0
}
