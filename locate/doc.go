/*
Package locate assigns stable identities to realized content nodes.

A Location identifies one realized node of a document. It is derived from
the node's structural path, i.e. the sequence of traversal steps leading
from the document root to the node, plus an occurrence index. The occurrence
index disambiguates value-identical content inserted repeatedly at the same
structural position: a reusable fragment rendered twice receives two distinct
Locations, in insertion order.

Locations are stable across resolution passes as long as the structural path
and the occurrence sequence do not change. They carry no ordering themselves;
the definitive document order of Locations is only known after layout and is
managed by the introspection layer.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package locate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.locate'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.locate")
}
