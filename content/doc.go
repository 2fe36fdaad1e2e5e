/*
Package content implements the immutable content tree of a document.

Overview

A content Node is a tagged variant: a text run, a heading, strong emphasis,
a raw block, or a generic element. Every node carries a map from field names
to values, an optional label (a string identity, unique across the document
but independent of tree position), and, once resolved, an assigned Location.

Content is immutable once constructed. Transformations never mutate a node;
they produce fresh nodes, sharing untouched children with the original. The
With… helpers implement this clone-on-write discipline.

Some node kinds carry behavior rather than content: scoped blocks hold a
rule-registration hook, and function nodes hold callbacks which run during
resolution. These attachments are opaque payloads here; the packages that
create such nodes (rules, introspect) define the concrete payload types, and
the dispatcher decodes them.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package content

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.content'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.content")
}
