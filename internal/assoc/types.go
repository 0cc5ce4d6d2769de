package assoc

// Item is an identity-bearing entity under association. The associator
// never looks past Key(); everything else about an item is reached only
// through Gates and Measures.
type Item interface {
	// Key returns a stable identifier, unique within one Associate call.
	Key() string
}

// State is one timestamped sub-state of a sequenced item. Timestamps are
// Unix nanoseconds; the temporal measure keys states by exact int64
// equality, so producers must not mix clock representations.
type State interface {
	UnixNanos() int64
}

// Sequenced is implemented by items that carry an ordered history of
// timestamped states, oldest first. The temporal measure compares the
// most recent entries of two such histories.
type Sequenced interface {
	Item

	// States returns the item's states ordered oldest to newest.
	States() []State
}

// Association is a confirmed one-to-one match between one item from each
// input set.
type Association struct {
	A Item
	B Item

	// Score is the cost-matrix cell the pair was accepted under.
	Score float64

	// Measured is false when Score is the fail-gate sentinel rather than
	// a real measure output (a gate rejected the pair, or the measure
	// found it incomparable, yet the configured threshold still admitted
	// the sentinel value).
	Measured bool
}

// AssociationSet collects the accepted associations of one Associate call.
// By construction no item appears in more than one association.
type AssociationSet struct {
	Associations []Association
}

// Len returns the number of associations in the set.
func (s AssociationSet) Len() int {
	return len(s.Associations)
}

// ItemKeys returns the keys of every item, from either side, appearing in
// any association.
func (s AssociationSet) ItemKeys() map[string]bool {
	keys := make(map[string]bool, 2*len(s.Associations))
	for _, a := range s.Associations {
		keys[a.A.Key()] = true
		keys[a.B.Key()] = true
	}
	return keys
}
