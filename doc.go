/*
Package cascade is a style-resolution and introspection engine for
markup-to-document compilers.

Overview

The engine turns a parsed content tree plus a set of scoped styling
directives (set, show and revoke rules) into a fully resolved, renderable
tree, and answers structural queries (counters, labels, locations) whose
correct values depend on final page geometry. Geometry is only known after
layout, layout needs resolved content, and resolution needs counter values:
this circularity is resolved by an explicit bounded fixpoint loop. The
Driver repeats (resolve → layout → check) passes until no introspected value
changes, or fails with a divergence report once its pass budget is
exhausted.

Lexing and parsing of markup, line breaking, page layout and output encoding
are external collaborators. Layout is consumed through the Layouter
interface; parsing simply produces a content tree (see package content and
the HTML adapter under content/htmladapter).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cascade

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.driver'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.driver")
}
