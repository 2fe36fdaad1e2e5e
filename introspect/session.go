package introspect

import (
	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/sel"
)

// Session is the introspection facade handed to resolution: it answers
// counter displays and queries from the best-available snapshot (the
// previous pass, or the void snapshot on the first pass) and records every
// handed-out value as an observation in the current pass's log. The
// fixpoint driver replays the observations against the next snapshot to
// decide convergence.
type Session struct {
	snapshot *Introspector
	log      *Log
}

// NewSession pairs a frozen snapshot with the log of the pass about to run.
func NewSession(snapshot *Introspector, log *Log) *Session {
	return &Session{snapshot: snapshot, log: log}
}

// Snapshot returns the underlying frozen snapshot.
func (s *Session) Snapshot() *Introspector {
	return s.snapshot
}

// Log returns the mutable log of the current pass.
func (s *Session) Log() *Log {
	return s.log
}

// CounterDisplay renders a counter at a Location and records the handed-out
// value.
func (s *Session) CounterDisplay(name, format string, at locate.Location) string {
	value := s.snapshot.Display(name, format, at)
	s.log.RecordObservation(Observation{
		Loc:     at,
		Counter: name,
		Format:  format,
		Value:   value,
	})
	return value
}

// Query runs a selector query at a Location and records a digest of the
// handed-out result. An empty result is a regular answer, never an error.
func (s *Session) Query(q sel.Selector, at locate.Location) []*content.Node {
	matches := s.snapshot.Query(q, at)
	s.log.RecordObservation(Observation{
		Loc:     at,
		Query:   q,
		IsQuery: true,
		Value:   QueryDigest(matches),
	})
	return matches
}
