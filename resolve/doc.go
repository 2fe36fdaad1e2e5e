/*
Package resolve implements the show/revoke dispatcher.

Overview

The dispatcher traverses a content tree depth-first, left to right, with a
style chain threaded through the call stack. At every node it collects the
active show rules whose selector matches, already filtered for revocation,
ordered innermost scope first and most recently inserted first. The first
remaining candidate wins and is applied exactly once; the produced content
re-enters resolution against the same chain with the applied rule excluded,
so newly introduced rules nested in the output still apply with correct
scoping while self-application cannot recurse forever.

Text and regex selectors match spans inside contiguous text runs. A matched
span is lifted into a synthetic text node, splitting the surrounding text as
needed, and only the span is handed to the transformation.

Nodes which no show rule transforms are returned unchanged except for their
style annotation and their assigned Location. Function nodes (locate
callbacks, counter operations) are realized here as well: updates are
recorded in the pass's introspection log, displays are substituted from the
best-available snapshot.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.resolve'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.resolve")
}
