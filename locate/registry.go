package locate

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
)

// ErrLocationCollision signals that two distinct structural nodes mapped to
// the same Location. This is an internal invariant violation and always
// fatal; it indicates a bug in the registry, not a user error.
var ErrLocationCollision = errors.New("location collision")

// Registry issues Locations during a resolution pass.
//
// The registry maintains a mapping from (structural path, content key) to an
// occurrence count. Each Assign for the same (path, key) pair within one pass
// increments the occurrence index, so value-identical content inserted
// repeatedly receives distinct Locations in insertion order. Locations are
// derived deterministically from path, key and occurrence index and are
// therefore stable across passes as long as the document's shape is stable.
//
// A Registry is owned by the fixpoint driver for the duration of a pass and
// is rebuilt (Reset) between passes.
type Registry struct {
	disambiguation map[uint64]uint32   // (path+key) hash → occurrence count
	issued         map[Location]uint64 // locations of the current pass
	sequence       []Location          // issue order of the current pass
}

// NewRegistry creates an empty location registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset prepares the registry for a new resolution pass. Occurrence counters
// are cleared and the set of issued Locations is rebuilt from scratch;
// Locations issued during earlier passes for nodes that are absent from the
// new pass become invalid (see Valid).
func (r *Registry) Reset() {
	r.disambiguation = make(map[uint64]uint32)
	r.issued = make(map[Location]uint64)
	r.sequence = r.sequence[:0]
}

// Assign issues the Location for a node at the given structural path. key is
// a shallow checksum of the node's content value, used to keep Locations
// stable when siblings are inserted or removed between passes.
func (r *Registry) Assign(path Path, key uint64) (Location, error) {
	h := mix(path.hash(), key)
	d := r.disambiguation[h]
	r.disambiguation[h] = d + 1
	loc := Location(mix(mix(h, uint64(d)), prime64))
	if loc == None {
		loc = Location(prime64) // keep the zero value reserved
	}
	if prev, ok := r.issued[loc]; ok && prev != h {
		tracer().Errorf("locations collide: %s for %s and source hash %x", loc, path, prev)
		return None, fmt.Errorf("%w: %s issued twice within one pass", ErrLocationCollision, loc)
	}
	r.issued[loc] = h
	r.sequence = append(r.sequence, loc)
	tracer().P("path", path.String()).Debugf("assigned %s, occurrence %d", loc, d)
	return loc, nil
}

// Valid is a predicate for Locations issued during the current pass.
// Locations from earlier passes whose nodes vanished are not valid and must
// be excluded from queries.
func (r *Registry) Valid(loc Location) bool {
	_, ok := r.issued[loc]
	return ok
}

// Sequence returns all Locations of the current pass in issue order, i.e.
// resolution order. This is the best-available approximation of document
// order before layout has run.
func (r *Registry) Sequence() []Location {
	return r.sequence
}

// Count returns the number of Locations issued during the current pass.
func (r *Registry) Count() int {
	return len(r.issued)
}
