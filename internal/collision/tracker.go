package collision

import (
	"github.com/arloliu/fcb/errs"
)

// Collision is a name rejected because its hash already belonged to
// another name.
type Collision struct {
	Hash    uint32
	Kept    string
	Dropped string
}

// Tracker maps name hashes to the first name registered for them and
// records every later name that hashes to an already taken value.
type Tracker struct {
	names      map[uint32]string // hash → first registered name
	collisions []Collision
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint32]string),
	}
}

// Track registers name under hash.
//
// Returns false when hash already belongs to a different name; the existing
// name is kept and the pair is recorded as a collision. Registering the same
// name twice is not a collision. Returns ErrEmptyName for an empty name.
func (t *Tracker) Track(name string, hash uint32) (bool, error) {
	if name == "" {
		return false, errs.ErrEmptyName
	}

	if existing, exists := t.names[hash]; exists {
		if existing == name {
			return true, nil
		}

		t.collisions = append(t.collisions, Collision{Hash: hash, Kept: existing, Dropped: name})

		return false, nil
	}

	t.names[hash] = name

	return true, nil
}

// Lookup returns the name registered for hash.
func (t *Tracker) Lookup(hash uint32) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return len(t.collisions) > 0
}

// Collisions returns the recorded collisions in the order they occurred.
func (t *Tracker) Collisions() []Collision {
	out := make([]Collision, len(t.collisions))
	copy(out, t.collisions)

	return out
}

// Count returns the number of distinct hashes tracked.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all names and collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	t.collisions = t.collisions[:0]
}
