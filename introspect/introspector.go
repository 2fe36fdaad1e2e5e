package introspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/sel"
)

// Introspector is a frozen introspection snapshot: the definitive document
// order of Locations as reported by layout, the realized nodes of a pass,
// and the pass's counter update log. Snapshots are immutable; the dispatcher
// reads the previous pass's snapshot while the driver builds the next one.
type Introspector struct {
	pos     map[locate.Location]int // definitive document order
	nodes   []*content.Node         // realized nodes, sorted by order
	updates map[string][]Update     // counter logs, sorted by order
}

// Empty returns the void snapshot used by the first resolution pass: no
// locations are ordered, counters fold to zero, queries return nothing.
func Empty() *Introspector {
	return &Introspector{pos: make(map[locate.Location]int)}
}

// Freeze builds a snapshot from a pass's log and the definitive order of
// Locations which layout reported for that pass. Locations absent from the
// order (nodes which vanished, or content laid out invisibly) are excluded
// from all answers.
func Freeze(log *Log, order []locate.Location) *Introspector {
	in := &Introspector{
		pos:     make(map[locate.Location]int, len(order)),
		updates: make(map[string][]Update, len(log.updates)),
	}
	for i, loc := range order {
		if _, ok := in.pos[loc]; !ok {
			in.pos[loc] = i
		}
	}
	for _, n := range log.realized {
		if _, ok := in.pos[n.Location()]; ok {
			in.nodes = append(in.nodes, n)
		}
	}
	sort.SliceStable(in.nodes, func(i, j int) bool {
		return in.pos[in.nodes[i].Location()] < in.pos[in.nodes[j].Location()]
	})
	for name, ups := range log.updates {
		ordered := make([]Update, 0, len(ups))
		for _, u := range ups {
			if _, ok := in.pos[u.Loc]; ok {
				ordered = append(ordered, u)
			}
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			return in.pos[ordered[i].Loc] < in.pos[ordered[j].Loc]
		})
		in.updates[name] = ordered
	}
	tracer().Debugf("froze snapshot: %d located nodes, %d counters", len(in.nodes), len(in.updates))
	return in
}

// Knows is a predicate for Locations present in the snapshot's order.
func (in *Introspector) Knows(loc locate.Location) bool {
	_, ok := in.pos[loc]
	return ok
}

// Precedes reports wether a comes before b in definitive document order.
// Locations unknown to the snapshot precede nothing.
func (in *Introspector) Precedes(a, b locate.Location) bool {
	pa, oka := in.pos[a]
	pb, okb := in.pos[b]
	return oka && okb && pa < pb
}

// CounterAt folds the counter's updates whose Location strictly precedes at
// in definitive order. An unknown at folds nothing and returns the
// counter's initial value, zero; the fixpoint driver will rerun resolution
// once the Location becomes known.
func (in *Introspector) CounterAt(name string, at locate.Location) int {
	patt, ok := in.pos[at]
	if !ok {
		return 0
	}
	value := 0
	for _, u := range in.updates[name] {
		if in.pos[u.Loc] >= patt {
			break
		}
		switch u.Action.Op {
		case StepOp:
			value += u.Action.Amount
		case UpdateOp:
			if u.Action.Func != nil {
				value = u.Action.Func(value)
			} else {
				value = u.Action.Value
			}
		}
	}
	return value
}

// Display renders the counter's folded value at a Location in the given
// numbering format.
func (in *Introspector) Display(name, format string, at locate.Location) string {
	return FormatValue(in.CounterAt(name, at), format)
}

// Query returns the realized nodes matching a selector whose Location is at
// or before at in definitive order. The result is produced eagerly per
// query, not as a live view. An unknown at yields no matches.
func (in *Introspector) Query(s sel.Selector, at locate.Location) []*content.Node {
	patt, ok := in.pos[at]
	if !ok {
		return nil
	}
	var matches []*content.Node
	for _, n := range in.nodes {
		if in.pos[n.Location()] > patt {
			break
		}
		if s.Matches(n) {
			matches = append(matches, n)
		}
	}
	return matches
}

// QueryAll returns all realized nodes matching a selector, in definitive
// order.
func (in *Introspector) QueryAll(s sel.Selector) []*content.Node {
	var matches []*content.Node
	for _, n := range in.nodes {
		if s.Matches(n) {
			matches = append(matches, n)
		}
	}
	return matches
}

// Recompute re-evaluates an observation against this snapshot and returns
// the value it would produce now. The driver compares it with the value
// recorded during resolution to detect unstabilized passes.
func (in *Introspector) Recompute(obs Observation) string {
	if obs.IsQuery {
		return QueryDigest(in.Query(obs.Query, obs.Loc))
	}
	return in.Display(obs.Counter, obs.Format, obs.Loc)
}

// QueryDigest renders a query result into a comparable string form.
func QueryDigest(matches []*content.Node) string {
	var b strings.Builder
	for i, n := range matches {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.Tag())
		b.WriteByte('@')
		b.WriteString(n.Location().String())
	}
	return b.String()
}
