package rules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/sel"
	"github.com/npillmayer/cascade/style"
)

// Scope is one frame of a style chain. Rules are appended to the scope while
// its traversal frame is active; the scope is discarded when the frame
// returns.
type Scope struct {
	parent *Scope
	depth  int
	rules  []Rule
}

// Chain is an ordered stack of scopes. Chains are small values threaded
// through the traversal call stack: Push derives a chain with a fresh
// innermost scope, and the scope is released simply by returning from the
// frame which pushed it, on every exit path. There is no explicit pop and
// therefore no way to leak a scope.
//
// The serial counter is shared along the whole chain, so insertion order is
// totally ordered across scopes.
type Chain struct {
	scope  *Scope
	serial *uint32
}

// NewChain creates a style chain with a single root scope.
func NewChain() Chain {
	var serial uint32
	return Chain{scope: &Scope{}, serial: &serial}
}

// Push derives a chain with a fresh innermost scope. The receiver is left
// untouched; the caller's chain value still ends at the previous scope.
func (c Chain) Push() Chain {
	return Chain{
		scope:  &Scope{parent: c.scope, depth: c.scope.depth + 1},
		serial: c.serial,
	}
}

// Depth returns the nesting depth of the innermost scope.
func (c Chain) Depth() int {
	return c.scope.depth
}

func (c Chain) register(r Rule) Rule {
	*c.serial++
	r.serial = *c.serial
	r.depth = c.scope.depth
	c.scope.rules = append(c.scope.rules, r)
	tracer().P("depth", c.scope.depth).Debugf("registered %v", r)
	return r
}

// --- Registration ----------------------------------------------------------

// Set registers a property patch with the current scope. Its effect never
// outlives the scope. Patches referring to unknown property keys are
// rejected.
func (c Chain) Set(patch style.Patch) error {
	for _, kv := range patch.Properties() {
		if !style.IsKnownKey(kv.Key) {
			return fmt.Errorf("set rule: unknown property key %q", kv.Key)
		}
	}
	c.register(Rule{kind: SetRule, patch: patch})
	return nil
}

// SetIf registers a conditional property patch. The guard is evaluated once,
// by the caller, at registration time; a false guard registers an ordinary
// set rule with an empty patch.
func (c Chain) SetIf(patch style.Patch, guard bool) error {
	if !guard {
		c.register(Rule{kind: SetRule})
		return nil
	}
	return c.Set(patch)
}

// Show registers a functional show rule: transform receives the matched
// node and returns replacement content.
func (c Chain) Show(s sel.Selector, transform Transform) error {
	if s.Kind() == 0 {
		return &sel.Error{Sel: "(zero)", Reason: "show rule without a selector"}
	}
	if transform == nil {
		return fmt.Errorf("show rule %v: missing transform", s)
	}
	c.register(Rule{kind: ShowRule, selector: s, transform: transform})
	return nil
}

// ShowContent registers a show rule with a literal payload: a degenerate
// transform which ignores the matched node and substitutes the payload.
func (c Chain) ShowContent(s sel.Selector, payload *content.Node) error {
	if s.Kind() == 0 {
		return &sel.Error{Sel: "(zero)", Reason: "show rule without a selector"}
	}
	c.register(Rule{kind: ShowRule, selector: s, payload: payload})
	return nil
}

// ShowPatch registers a styling show rule ("show raw: set color red"): the
// matched node and its subtree are resolved under the given patch.
func (c Chain) ShowPatch(s sel.Selector, patch style.Patch) error {
	if s.Kind() == 0 {
		return &sel.Error{Sel: "(zero)", Reason: "show rule without a selector"}
	}
	for _, kv := range patch.Properties() {
		if !style.IsKnownKey(kv.Key) {
			return fmt.Errorf("show rule %v: unknown property key %q", s, kv.Key)
		}
	}
	c.register(Rule{kind: ShowRule, selector: s, patch: patch})
	return nil
}

// ShowRevoke registers a show rule whose transformation is a revoke:
// matched nodes and their subtrees resolve with the revocation active, so
// earlier show rules covered by the revoked selector no longer apply there.
func (c Chain) ShowRevoke(s, revoked sel.Selector) error {
	if s.Kind() == 0 || revoked.Kind() == 0 {
		return &sel.Error{Sel: "(zero)", Reason: "show-revoke rule without a selector"}
	}
	c.register(Rule{kind: ShowRule, selector: s, revoked: revoked, hasRevoke: true})
	return nil
}

// Revoke registers a revoke rule: every show rule registered earlier whose
// selector is equal to or more specific than s is disabled for the
// remainder of the current scope. A revoke matching no active show rule is
// a no-op, not an error.
func (c Chain) Revoke(s sel.Selector) {
	c.register(Rule{kind: RevokeRule, selector: s})
}

// --- Lookup ----------------------------------------------------------------

// Lookup returns the nearest (innermost) override for a property key,
// falling back to the process-wide default if no scope sets it.
func (c Chain) Lookup(key string) style.Property {
	for scope := c.scope; scope != nil; scope = scope.parent {
		for i := len(scope.rules) - 1; i >= 0; i-- {
			r := scope.rules[i]
			if r.kind != SetRule {
				continue
			}
			if p, ok := r.patch.Get(key); ok {
				return p
			}
		}
	}
	p, _ := style.Default(key)
	return p
}

// PropertyMap materializes the composition of all set-rule patches visible
// at the current point as a style annotation, innermost override winning.
// The result is never nil: a chain without overrides yields a root map
// which answers every lookup from the process-wide defaults.
func (c Chain) PropertyMap() *style.PropertyMap {
	var build func(scope *Scope) *style.PropertyMap
	build = func(scope *Scope) *style.PropertyMap {
		if scope == nil {
			return nil
		}
		parent := build(scope.parent)
		var merged style.Patch
		for _, r := range scope.rules {
			if r.kind != SetRule || r.patch.IsEmpty() {
				continue
			}
			if merged == nil {
				merged = make(style.Patch)
			}
			for _, kv := range r.patch.Properties() {
				merged[kv.Key] = kv.Value
			}
		}
		if merged == nil {
			return parent
		}
		return style.NewPropertyMap(merged, parent)
	}
	if pmap := build(c.scope); pmap != nil {
		return pmap
	}
	return style.NewPropertyMap(nil, nil)
}

// ActiveShows returns the show rules visible at the current point, ordered
// innermost scope first and, within a scope, most recently inserted first.
// Rules disabled by an active revoke are already filtered: a revoke affects
// every show rule registered before it whose selector is equal to or more
// specific than the revoked selector.
func (c Chain) ActiveShows() []Rule {
	var revokes []Rule
	for scope := c.scope; scope != nil; scope = scope.parent {
		for _, r := range scope.rules {
			if r.kind == RevokeRule {
				revokes = append(revokes, r)
			}
		}
	}
	var shows []Rule
	for scope := c.scope; scope != nil; scope = scope.parent {
		for i := len(scope.rules) - 1; i >= 0; i-- {
			r := scope.rules[i]
			if r.kind != ShowRule {
				continue
			}
			if revoked(r, revokes) {
				tracer().Debugf("show rule %v is revoked", r)
				continue
			}
			shows = append(shows, r)
		}
	}
	return shows
}

func revoked(show Rule, revokes []Rule) bool {
	for _, v := range revokes {
		if v.serial > show.serial && sel.Generality(v.selector, show.selector) {
			return true
		}
	}
	return false
}
