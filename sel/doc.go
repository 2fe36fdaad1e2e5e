/*
Package sel implements selectors: predicates over content nodes.

Selector variants are element type, field-filtered element type, literal
text, regular expression, label, and the universal selector. Matching is
pure predicate evaluation without any state.

Selectors are partially ordered by generality: the universal selector is
more general than all text and regex selectors, which are more general than
element-type selectors, which are more general than their field-filtered
specializations. Label selectors are incomparable to type-based ones. This
order drives revocation: revoking a selector disables every show rule with
an equal or more specific selector.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sel

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.sel'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.sel")
}
