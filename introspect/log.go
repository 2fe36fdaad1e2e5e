package introspect

import (
	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/sel"
)

// Update is one recorded counter operation, tagged with the Location at
// which it was issued.
type Update struct {
	Loc    locate.Location
	Action CounterAction
}

// Observation records one introspection value handed out during resolution:
// a counter display or a query result. The driver re-evaluates observations
// under the final order after layout; any deviation means the pass has not
// converged.
type Observation struct {
	Loc     locate.Location
	Counter string // counter name; "" for query observations
	Format  string
	Query   sel.Selector
	IsQuery bool
	Value   string // the value used during resolution
}

// Subject names the observed counter or query, for divergence reports.
func (o Observation) Subject() string {
	if o.IsQuery {
		return "query(" + o.Query.String() + ")"
	}
	return "counter(" + o.Counter + ")"
}

// Log is the mutable introspection record of one resolution pass: counter
// updates, realized nodes and handed-out observations, all in resolution
// order. It is owned exclusively by the fixpoint driver for the duration of
// a pass and rebuilt between passes.
type Log struct {
	updates      map[string][]Update
	realized     []*content.Node
	observations []Observation
}

// NewLog creates an empty per-pass introspection log.
func NewLog() *Log {
	return &Log{updates: make(map[string][]Update)}
}

// RecordUpdate appends a counter step/update, tagged with the Location at
// which it was issued.
func (l *Log) RecordUpdate(loc locate.Location, action CounterAction) {
	l.updates[action.Name] = append(l.updates[action.Name], Update{Loc: loc, Action: action})
	tracer().P("counter", action.Name).Debugf("update recorded at %s", loc)
}

// RecordNode appends a realized node. The node must already carry its
// assigned Location.
func (l *Log) RecordNode(n *content.Node) {
	l.realized = append(l.realized, n)
}

// RecordObservation appends an introspection value handed out during
// resolution.
func (l *Log) RecordObservation(obs Observation) {
	l.observations = append(l.observations, obs)
}

// Observations returns all recorded observations, in resolution order.
func (l *Log) Observations() []Observation {
	return l.observations
}

// CounterNames returns the names of all counters touched during the pass.
func (l *Log) CounterNames() []string {
	names := make([]string, 0, len(l.updates))
	for name := range l.updates {
		names = append(names, name)
	}
	return names
}
