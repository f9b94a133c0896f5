package collision

import (
	"github.com/opalstore/opal/errs"
)

// Tracker detects column name problems while a blob is being built: the
// same name used twice, and two distinct names hashing to the same ID.
// Blobs store only name IDs, so an ID collision cannot be represented and
// must fail the encode.
type Tracker struct {
	names map[uint64]string // ID → name mapping
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// TrackColumn records a column name with its ID.
//
// Returns errs.ErrInvalidColumnName for an empty name,
// errs.ErrDuplicateColumnName when the same name is tracked twice, and
// errs.ErrHashCollision when a different name maps to an already tracked
// ID.
func (t *Tracker) TrackColumn(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidColumnName
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return errs.ErrDuplicateColumnName
		}

		return errs.ErrHashCollision
	}

	t.names[id] = name

	return nil
}

// Count returns the number of tracked columns.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked columns, allowing the tracker to be reused for
// a new blob.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
}
