package sel

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/npillmayer/cascade/content"
)

// Kind discriminates the selector variants.
type Kind int8

// The selector variants.
const (
	TypeSel  Kind = iota + 1 // element type, by tag
	FieldSel                 // element type plus field predicates
	TextSel                  // literal text
	RegexSel                 // regular expression over text
	LabelSel                 // label identity
	AllSel                   // the universal selector
)

func (k Kind) String() string {
	switch k {
	case TypeSel:
		return "type"
	case FieldSel:
		return "where"
	case TextSel:
		return "text"
	case RegexSel:
		return "regex"
	case LabelSel:
		return "label"
	case AllSel:
		return "everything"
	}
	return "invalid"
}

// Error is a selector registration error: a malformed regex pattern or a
// reference to an unknown field. It surfaces synchronously to the caller
// registering the rule and halts compilation of that rule.
type Error struct {
	Sel    string // textual form of the offending selector
	Reason string
	Err    error // underlying error, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("selector %s: %s: %v", e.Sel, e.Reason, e.Err)
	}
	return fmt.Sprintf("selector %s: %s", e.Sel, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Selector is a predicate over content nodes. The zero Selector is invalid;
// use the constructors.
type Selector struct {
	kind    Kind
	tag     string
	filter  map[string]content.Value
	text    string
	pattern string
	re      *regexp.Regexp
	label   string
}

// --- Constructors ----------------------------------------------------------

// Type selects elements by tag ("heading", "raw", …).
func Type(tag string) Selector {
	return Selector{kind: TypeSel, tag: tag}
}

// Where specializes an element-type selector with field predicates: the
// node must carry every listed field with exactly the given value. Unset
// fields never match. Referring to a field unknown for the tag is an error.
func (s Selector) Where(fields map[string]content.Value) (Selector, error) {
	if s.kind != TypeSel && s.kind != FieldSel {
		return Selector{}, &Error{Sel: s.String(), Reason: "only element-type selectors can be field-filtered"}
	}
	filter := make(map[string]content.Value, len(s.filter)+len(fields))
	for k, v := range s.filter {
		filter[k] = v
	}
	for k, v := range fields {
		if !fieldKnown(s.tag, k) {
			return Selector{}, &Error{Sel: s.String(), Reason: fmt.Sprintf("unknown field %q for element %q", k, s.tag)}
		}
		filter[k] = v
	}
	return Selector{kind: FieldSel, tag: s.tag, filter: filter}, nil
}

// Text selects contiguous runs of literal text containing lit.
func Text(lit string) Selector {
	return Selector{kind: TextSel, text: lit}
}

// Regex selects contiguous runs of literal text matching a pattern.
// A malformed pattern is rejected immediately.
func Regex(pattern string) (Selector, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("regex selector rejected: %v", err)
		return Selector{}, &Error{Sel: "/" + pattern + "/", Reason: "malformed pattern", Err: err}
	}
	return Selector{kind: RegexSel, pattern: pattern, re: re}, nil
}

// Label selects the node carrying exactly this label.
func Label(name string) Selector {
	return Selector{kind: LabelSel, label: name}
}

// All is the universal selector; it matches any node.
func All() Selector {
	return Selector{kind: AllSel}
}

// --- Predicates ------------------------------------------------------------

// Kind returns the selector's variant discriminator.
func (s Selector) Kind() Kind {
	return s.kind
}

// Matches decides wether a content node matches the selector.
func (s Selector) Matches(n *content.Node) bool {
	if n == nil {
		return false
	}
	switch s.kind {
	case TypeSel:
		return n.Tag() == s.tag
	case FieldSel:
		if n.Tag() != s.tag {
			return false
		}
		for key, want := range s.filter {
			have := n.Field(key)
			if !have.IsSet() || !have.Equal(want) {
				return false
			}
		}
		return true
	case TextSel:
		return n.Kind() == content.TextKind && s.text != "" &&
			strings.Contains(n.Text(), s.text)
	case RegexSel:
		return n.Kind() == content.TextKind && s.re.MatchString(n.Text())
	case LabelSel:
		return n.Label() != "" && n.Label() == s.label
	case AllSel:
		return true
	}
	return false
}

// TextSpan returns the first span of n's literal text matched by a text or
// regex selector, as [start, end) byte offsets. Other selector kinds, and
// non-matching text, report ok=false.
func (s Selector) TextSpan(text string) (start, end int, ok bool) {
	switch s.kind {
	case TextSel:
		if s.text == "" {
			return 0, 0, false
		}
		i := strings.Index(text, s.text)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(s.text), true
	case RegexSel:
		span := s.re.FindStringIndex(text)
		if span == nil || span[0] == span[1] {
			return 0, 0, false
		}
		return span[0], span[1], true
	}
	return 0, 0, false
}

// Equal compares two selectors for structural equality.
func (s Selector) Equal(other Selector) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case TypeSel:
		return s.tag == other.tag
	case FieldSel:
		if s.tag != other.tag || len(s.filter) != len(other.filter) {
			return false
		}
		for k, v := range s.filter {
			if w, ok := other.filter[k]; !ok || !v.Equal(w) {
				return false
			}
		}
		return true
	case TextSel:
		return s.text == other.text
	case RegexSel:
		return s.pattern == other.pattern
	case LabelSel:
		return s.label == other.label
	case AllSel:
		return true
	}
	return false
}

// Generality reports wether a is equal to or more general than b. The
// partial order is documented in the package comment; revocation uses it to
// find the show rules an active revoke disables.
func Generality(a, b Selector) bool {
	if a.Equal(b) {
		return true
	}
	switch a.kind {
	case AllSel:
		return true
	case TextSel, RegexSel:
		return b.kind == TypeSel || b.kind == FieldSel
	case TypeSel:
		return b.kind == FieldSel && b.tag == a.tag
	case FieldSel:
		if b.kind != FieldSel || b.tag != a.tag || len(a.filter) > len(b.filter) {
			return false
		}
		for k, v := range a.filter { // a's predicates must be a subset of b's
			if w, ok := b.filter[k]; !ok || !v.Equal(w) {
				return false
			}
		}
		return true
	}
	return false // labels are incomparable to everything but themselves
}

func (s Selector) String() string {
	switch s.kind {
	case TypeSel:
		return s.tag
	case FieldSel:
		keys := make([]string, 0, len(s.filter))
		for k := range s.filter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		fmt.Fprintf(&b, "%s.where(", s.tag)
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", k, s.filter[k])
		}
		b.WriteByte(')')
		return b.String()
	case TextSel:
		return fmt.Sprintf("%q", s.text)
	case RegexSel:
		return "/" + s.pattern + "/"
	case LabelSel:
		return "<" + s.label + ">"
	case AllSel:
		return "*"
	}
	return "invalid"
}

// Known fields of the built-in element types. Generic elements accept
// arbitrary fields.
var knownFields = map[string][]string{
	"text":    {"text"},
	"heading": {"level"},
	"raw":     {"text", "block"},
	"strong":  {},
}

func fieldKnown(tag, field string) bool {
	fields, ok := knownFields[tag]
	if !ok {
		return true // generic element, any field goes
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}
