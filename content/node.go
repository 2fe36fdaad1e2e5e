package content

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/style"
)

// Kind discriminates the content node variants.
type Kind int8

// The content node variants.
const (
	TextKind    Kind = iota + 1 // a run of literal text
	HeadingKind                 // a section heading with a level field
	StrongKind                  // strong emphasis
	RawKind                     // raw (preformatted) text, inline or block
	ElemKind                    // a generic element with an arbitrary tag
	GroupKind                   // an anonymous sequence of children
	ScopedKind                  // a block bracketing a style scope
	FuncKind                    // a node carrying a resolution-time callback
)

var kindTags = map[Kind]string{
	TextKind:    "text",
	HeadingKind: "heading",
	StrongKind:  "strong",
	RawKind:     "raw",
	GroupKind:   "group",
	ScopedKind:  "scoped",
}

func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	if k == ElemKind {
		return "elem"
	}
	if k == FuncKind {
		return "func"
	}
	return "invalid"
}

// Node is a single node of the content tree. Nodes are immutable once
// constructed; use the With… helpers to derive modified nodes.
type Node struct {
	kind     Kind
	tag      string
	fields   map[string]Value
	label    string
	children []*Node
	payload  any
	styles   *style.PropertyMap
	location locate.Location
}

// --- Constructors ----------------------------------------------------------

// Text creates a run of literal text.
func Text(text string) *Node {
	return &Node{kind: TextKind, fields: map[string]Value{"text": Str(text)}}
}

// Heading creates a heading of the given level with inline title content.
func Heading(level int, title ...*Node) *Node {
	return &Node{
		kind:     HeadingKind,
		fields:   map[string]Value{"level": Int(int64(level))},
		children: title,
	}
}

// Strong creates strongly emphasized content.
func Strong(inner ...*Node) *Node {
	return &Node{kind: StrongKind, children: inner}
}

// Raw creates raw (preformatted) text. block distinguishes display blocks
// from inline code spans.
func Raw(text string, block bool) *Node {
	return &Node{
		kind:   RawKind,
		fields: map[string]Value{"text": Str(text), "block": Bool(block)},
	}
}

// Elem creates a generic element with the given tag.
func Elem(tag string, children ...*Node) *Node {
	return &Node{kind: ElemKind, tag: tag, children: children}
}

// Group creates an anonymous sequence of content.
func Group(children ...*Node) *Node {
	return &Node{kind: GroupKind, children: children}
}

// Scoped creates a block which brackets a style scope. The payload is an
// opaque rule-registration hook; package rules defines its concrete type and
// the dispatcher decodes it when the block's scope is pushed.
func Scoped(payload any, children ...*Node) *Node {
	return &Node{kind: ScopedKind, payload: payload, children: children}
}

// Func creates a node carrying a resolution-time callback or introspection
// record as its opaque payload. The tag keeps structurally distinct function
// nodes distinguishable for location assignment.
func Func(tag string, payload any) *Node {
	return &Node{kind: FuncKind, tag: tag, payload: payload}
}

// --- Accessors -------------------------------------------------------------

// Kind returns the node's variant discriminator.
func (n *Node) Kind() Kind {
	return n.kind
}

// Tag returns the node's element tag. Built-in variants report canonical
// tags ("heading", "strong", "raw", "text"), so selector matching by element
// type is uniform across built-in and generic elements.
func (n *Node) Tag() string {
	if n.kind == ElemKind || n.kind == FuncKind {
		return n.tag
	}
	return kindTags[n.kind]
}

// Field returns the value for a field name; the zero Value if unset.
func (n *Node) Field(key string) Value {
	return n.fields[key]
}

// FieldNames returns the names of all set fields, sorted.
func (n *Node) FieldNames() []string {
	names := make([]string, 0, len(n.fields))
	for k := range n.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Text returns the node's literal text, i.e. the "text" field. Only text
// and raw nodes carry one.
func (n *Node) Text() string {
	return n.fields["text"].AsString()
}

// Label returns the node's label, or "" if unlabeled.
func (n *Node) Label() string {
	return n.label
}

// Payload returns the node's opaque attachment, if any.
func (n *Node) Payload() any {
	return n.payload
}

// Styles returns the node's computed style annotation. It is nil until the
// node has been resolved.
func (n *Node) Styles() *style.PropertyMap {
	return n.styles
}

// Location returns the node's assigned Location. It is locate.None until
// the node has been realized by a resolution pass.
func (n *Node) Location() locate.Location {
	return n.location
}

// ChildCount returns the number of children of a node.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns child number i of a node.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Children returns the children of a node. The returned slice is shared
// with the node and must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) String() string {
	if n == nil {
		return "(none)"
	}
	return fmt.Sprintf("(%s #ch=%d)", n.Tag(), len(n.children))
}

// --- Derivation ------------------------------------------------------------

// clone copies a node shallowly. Field maps are duplicated; children are
// shared, as they are immutable themselves.
func (n *Node) clone() *Node {
	nn := &Node{
		kind:     n.kind,
		tag:      n.tag,
		label:    n.label,
		payload:  n.payload,
		styles:   n.styles,
		location: n.location,
		children: n.children,
	}
	if n.fields != nil {
		nn.fields = make(map[string]Value, len(n.fields))
		for k, v := range n.fields {
			nn.fields[k] = v
		}
	}
	return nn
}

// WithLabel derives a node carrying the given label.
func (n *Node) WithLabel(label string) *Node {
	nn := n.clone()
	nn.label = label
	return nn
}

// WithField derives a node with a field set to a new value.
func (n *Node) WithField(key string, v Value) *Node {
	nn := n.clone()
	if nn.fields == nil {
		nn.fields = make(map[string]Value, 1)
	}
	nn.fields[key] = v
	return nn
}

// WithChildren derives a node with a replaced list of children.
func (n *Node) WithChildren(children ...*Node) *Node {
	nn := n.clone()
	nn.children = children
	return nn
}

// WithStyles derives a node annotated with computed styles.
func (n *Node) WithStyles(styles *style.PropertyMap) *Node {
	nn := n.clone()
	nn.styles = styles
	return nn
}

// WithLocation derives a node with its assigned Location.
func (n *Node) WithLocation(loc locate.Location) *Node {
	nn := n.clone()
	nn.location = loc
	return nn
}

// --- Identity --------------------------------------------------------------

// Checksum returns a shallow hash over the node's kind, tag, label and
// fields. Children do not contribute, so the checksum is stable under
// changes deeper in the subtree; the location registry combines it with the
// structural path and an occurrence index to mint Locations.
func (n *Node) Checksum() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", n.kind, n.tag, n.label)
	for _, key := range n.FieldNames() {
		fmt.Fprintf(h, "|%s=%s", key, n.fields[key])
	}
	return h.Sum64()
}
