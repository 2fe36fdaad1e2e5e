package resolve

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/introspect"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/rules"
	"github.com/npillmayer/cascade/sel"
)

// Runtime bundles the per-pass collaborators of the dispatcher: the
// location registry and the introspection session. Both are owned by the
// fixpoint driver and rebuilt between passes.
type Runtime struct {
	Registry *locate.Registry
	Session  *introspect.Session
}

// Resolve runs the dispatcher over a content tree and returns the resolved
// tree. Every realized node of the result carries its assigned Location and
// a computed style annotation.
func Resolve(doc *content.Node, chain rules.Chain, rt *Runtime) (*content.Node, error) {
	return resolveNode(doc, chain, locate.Path{}, nil, rt)
}

// exclusion is the set of show-rule serials which must not be applied along
// the current branch: a rule enters the set when it is applied, so its own
// output cannot trigger it again.
type exclusion map[uint32]bool

func (x exclusion) with(serial uint32) exclusion {
	y := make(exclusion, len(x)+1)
	for s := range x {
		y[s] = true
	}
	y[serial] = true
	return y
}

func resolveNode(n *content.Node, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind() {
	case content.ScopedKind:
		return resolveScoped(n, chain, path, excl, rt)
	case content.FuncKind:
		return resolveFunc(n, chain, path, excl, rt)
	}
	if winner, found := pickShow(n, chain, excl); found {
		k := winner.Selector().Kind()
		if n.Kind() == content.TextKind && (k == sel.TextSel || k == sel.RegexSel) {
			return resolveTextSpan(n, winner, chain, path, excl, rt)
		}
		return applyShow(n, winner, chain, path, excl, rt)
	}
	return realize(n, chain, path, excl, rt)
}

// pickShow returns the winning show rule for a node: among the active,
// unrevoked, not-yet-applied rules whose selector matches, the one from the
// innermost scope wins, most recently inserted first. Serial order makes
// the choice deterministic in all cases.
func pickShow(n *content.Node, chain rules.Chain, excl exclusion) (rules.Rule, bool) {
	for _, r := range chain.ActiveShows() {
		if excl[r.Serial()] {
			continue
		}
		if r.Selector().Matches(n) {
			return r, true
		}
	}
	return rules.Rule{}, false
}

// applyShow applies a show rule exactly once. The produced content re-enters
// resolution against the same chain with the rule excluded. Styling show
// rules do not replace content; they resolve the matched node under a
// nested scope holding their patch.
func applyShow(n *content.Node, winner rules.Rule, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	tracer().P("rule", winner.String()).Debugf("applying show rule to %v", n)
	next := excl.with(winner.Serial())
	if winner.IsRevoking() {
		inner := chain.Push()
		inner.Revoke(winner.Revoked())
		return resolveNode(n, inner, path, next, rt)
	}
	if winner.IsStyling() {
		inner := chain.Push()
		if err := inner.Set(winner.Patch()); err != nil {
			return nil, err
		}
		return resolveNode(n, inner, path, next, rt)
	}
	out := winner.Apply(n)
	if out == nil {
		out = content.Group()
	}
	return resolveNode(out, chain, path, next, rt)
}

// resolveTextSpan lifts the span of a text run matched by a text or regex
// selector into a synthetic node, splits the surrounding text, and hands
// only the span to the transformation. The remainder after the span is
// resolved with the rule still active, so later occurrences match again.
func resolveTextSpan(n *content.Node, winner rules.Rule, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	text := n.Text()
	start, end, ok := winner.Selector().TextSpan(text)
	if !ok {
		return realize(n, chain, path, excl, rt)
	}
	tracer().Debugf("text span [%d:%d) of %q matches %v", start, end, text, winner.Selector())
	group, err := locateAndRecord(content.Group(), chain, path, rt)
	if err != nil {
		return nil, err
	}
	var parts []*content.Node
	part := func(child *content.Node, err error) error {
		if err == nil && child != nil {
			parts = append(parts, child)
		}
		return err
	}
	slot := uint32(0)
	if start > 0 {
		pre := content.Text(text[:start])
		if err := part(resolveNode(pre, chain, path.Descend(slot), excl, rt)); err != nil {
			return nil, err
		}
		slot++
	}
	span := content.Text(text[start:end])
	if err := part(applyShow(span, winner, chain, path.Descend(slot), excl, rt)); err != nil {
		return nil, err
	}
	slot++
	if end < len(text) {
		post := content.Text(text[end:])
		if err := part(resolveNode(post, chain, path.Descend(slot), excl, rt)); err != nil {
			return nil, err
		}
	}
	return group.WithChildren(parts...), nil
}

// resolveScoped brackets a style scope around a block: a fresh scope is
// pushed, the block's registration hook runs against it, and the block body
// is resolved under the extended chain. The scope is released when this
// frame returns, on every exit path. The body is wrapped into a single
// group so that a universal show rule declared in the scope wraps the whole
// remainder of the block.
func resolveScoped(n *content.Node, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	node, err := locateAndRecord(n, chain, path, rt)
	if err != nil {
		return nil, err
	}
	inner := chain.Push()
	if setup, ok := n.Payload().(rules.ScopeFunc); ok && setup != nil {
		if err := setup(inner); err != nil {
			return nil, fmt.Errorf("styled block: %w", err)
		}
	}
	body := content.Group(n.Children()...)
	rbody, err := resolveNode(body, inner, path.Descend(0), excl, rt)
	if err != nil {
		return nil, err
	}
	if rbody == nil {
		return node.WithChildren(), nil
	}
	return node.WithChildren(rbody), nil
}

// resolveFunc realizes a function node: counter operations are recorded in
// the pass's log, counter displays and locate callbacks substitute content
// from the best-available snapshot. The substituted content resolves below
// the function node.
func resolveFunc(n *content.Node, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	loc, err := rt.Registry.Assign(path, n.Checksum())
	if err != nil {
		return nil, err
	}
	node := n.WithStyles(chain.PropertyMap()).WithLocation(loc)
	rt.Session.Log().RecordNode(node)
	var out *content.Node
	switch payload := n.Payload().(type) {
	case introspect.CounterAction:
		switch payload.Op {
		case introspect.StepOp, introspect.UpdateOp:
			rt.Session.Log().RecordUpdate(loc, payload)
			return node, nil
		case introspect.DisplayOp:
			value := rt.Session.CounterDisplay(payload.Name, payload.Format, loc)
			out = content.Text(value)
		}
	case introspect.LocateFunc:
		out = payload(loc, rt.Session)
	}
	if out == nil {
		return node, nil
	}
	rout, err := resolveNode(out, chain, path.Descend(0), excl, rt)
	if err != nil {
		return nil, err
	}
	if rout == nil {
		return node, nil
	}
	return node.WithChildren(rout), nil
}

// realize returns a node untransformed: annotated with its computed styles,
// assigned its Location, recorded with the pass, and with its children
// resolved in document order.
func realize(n *content.Node, chain rules.Chain, path locate.Path, excl exclusion, rt *Runtime) (*content.Node, error) {
	kids := n.Children()
	resolved := make([]*content.Node, 0, len(kids))
	node, err := locateAndRecord(n, chain, path, rt)
	if err != nil {
		return nil, err
	}
	for i, ch := range kids {
		rch, err := resolveNode(ch, chain, path.Descend(uint32(i)), excl, rt)
		if err != nil {
			return nil, err
		}
		if rch != nil {
			resolved = append(resolved, rch)
		}
	}
	return node.WithChildren(resolved...), nil
}

func locateAndRecord(n *content.Node, chain rules.Chain, path locate.Path, rt *Runtime) (*content.Node, error) {
	loc, err := rt.Registry.Assign(path, n.Checksum())
	if err != nil {
		return nil, err
	}
	node := n.WithStyles(chain.PropertyMap()).WithLocation(loc)
	rt.Session.Log().RecordNode(node)
	return node, nil
}
