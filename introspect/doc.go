/*
Package introspect implements counters and structural queries.

Overview

A counter is a named, ordered sequence of update operations, each tagged
with the Location at which it was issued. Its displayed value at a query
Location is the fold of all updates whose Location precedes the query
Location in final document order. Final order is a layout result, not
resolution order, so counters queried during the first resolution pass use
the best-available snapshot from the previous pass; the fixpoint driver
reruns resolution until those snapshots stabilize.

The Introspector is one such snapshot: the definitive order of Locations as
reported by layout, the realized nodes of the pass, and the counter update
log. It answers counter folds and selector queries. The Log is the mutable
per-pass record the dispatcher writes into; the driver freezes it into an
Introspector after layout returns.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package introspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.introspect'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.introspect")
}
