/*
Package rules implements scoped styling rules and the style chain.

Overview

A style chain is an ordered, append-only sequence of scopes, built while
walking the content tree. Each scope holds property overrides (set rules)
and show/revoke records; it is exclusively owned by the traversal frame that
created it and goes away when that frame returns. Lookups walk from the
innermost to the outermost scope.

Rules are tagged variants. A set rule carries a selector-free property
patch; a conditional set ("set-if") is an ordinary set rule whose patch is
empty unless its guard held at registration time. A show rule pairs a
selector with a transformation: a function over the matched node, a literal
content payload, or a property patch. A revoke rule disables every earlier
show rule whose selector is equal to or more specific than the revoked one,
for the remainder of the revoking scope.

Every rule carries its creation scope depth and a chain-wide serial number;
strict insertion order is the final tie-break whenever two rules are equally
specific, so dispatch is never ambiguous.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rules

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.rules'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.rules")
}
