package rules

import (
	"fmt"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/sel"
	"github.com/npillmayer/cascade/style"
)

// Kind discriminates the rule variants.
type Kind int8

// The rule variants.
const (
	SetRule    Kind = iota + 1 // selector-free property patch
	ShowRule                   // selector-driven content transformation
	RevokeRule                 // scoped disabling of show rules
)

func (k Kind) String() string {
	switch k {
	case SetRule:
		return "set"
	case ShowRule:
		return "show"
	case RevokeRule:
		return "revoke"
	}
	return "invalid"
}

// Transform is the callback of a functional show rule. It receives the
// matched node and returns replacement content; it must not mutate its
// argument.
type Transform func(n *content.Node) *content.Node

// Rule is a single styling rule record. Rules are immutable once registered
// with a scope.
type Rule struct {
	kind      Kind
	patch     style.Patch  // set rules and styling show rules
	selector  sel.Selector // show and revoke rules
	transform Transform    // functional show rules
	payload   *content.Node
	revoked   sel.Selector // revoking show rules
	hasRevoke bool
	depth     int    // scope depth at creation
	serial    uint32 // chain-wide insertion order
}

// Kind returns the rule's variant discriminator.
func (r Rule) Kind() Kind {
	return r.kind
}

// Selector returns the rule's selector. Set rules have none.
func (r Rule) Selector() sel.Selector {
	return r.selector
}

// Patch returns the property patch of a set rule or of a styling show rule.
func (r Rule) Patch() style.Patch {
	return r.patch
}

// Depth returns the scope depth at which the rule was registered.
func (r Rule) Depth() int {
	return r.depth
}

// Serial returns the rule's chain-wide insertion number. Serials strictly
// increase with registration order and never repeat.
func (r Rule) Serial() uint32 {
	return r.serial
}

// IsStyling is a predicate for show rules which carry a property patch
// instead of replacement content ("show raw: set color red").
func (r Rule) IsStyling() bool {
	return r.kind == ShowRule && r.transform == nil && r.payload == nil && !r.hasRevoke
}

// IsRevoking is a predicate for show rules whose transformation is a revoke
// ("show raw.where(block: true): revoke raw"): matched nodes resolve under
// a nested scope in which the revocation is active.
func (r Rule) IsRevoking() bool {
	return r.kind == ShowRule && r.hasRevoke
}

// Revoked returns the selector revoked by a revoking show rule.
func (r Rule) Revoked() sel.Selector {
	return r.revoked
}

// Apply runs a show rule's transformation on a matched node. Literal
// payloads ignore the node and substitute their content. Styling show rules
// are not applied through Apply; the dispatcher folds their patch into the
// chain instead.
func (r Rule) Apply(n *content.Node) *content.Node {
	if r.transform != nil {
		return r.transform(n)
	}
	return r.payload
}

func (r Rule) String() string {
	switch r.kind {
	case SetRule:
		return fmt.Sprintf("set#%d%v", r.serial, r.patch)
	case ShowRule:
		return fmt.Sprintf("show#%d(%v)", r.serial, r.selector)
	case RevokeRule:
		return fmt.Sprintf("revoke#%d(%v)", r.serial, r.selector)
	}
	return "invalid rule"
}
