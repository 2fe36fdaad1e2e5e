package cascade

import (
	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/tyse/core/dimen"
)

// Frame is the geometry layout computed for one realized node, identified
// by its Location.
type Frame struct {
	Loc  locate.Location
	Page int
	X, Y dimen.DU
	W, H dimen.DU
}

// Layouter is the external layout collaborator. Given a resolved,
// style-annotated tree it returns per-Location geometry; the order of the
// returned frames is the definitive document order of Locations, which
// drives all counter folds and queries of the following pass.
//
// Layout is called once per fixpoint pass and must be deterministic for
// identical input.
type Layouter interface {
	Layout(doc *content.Node, pass int) ([]Frame, error)
}

// StackLayouter is a minimal deterministic Layouter: it stacks realized
// nodes top to bottom in traversal order, advancing by one leading per text
// leaf, and breaks pages at a fixed page height. The leading is taken from
// each leaf's computed styles where they carry an absolute value, with the
// configured leading as fallback. It stands in for a real
// layout engine in tests and in the demo command; the resulting document
// order equals traversal order, with page numbers derived from accumulated
// height.
type StackLayouter struct {
	PageHeight dimen.DU
	Leading    dimen.DU
}

// Layout is part of interface Layouter.
func (sl *StackLayouter) Layout(doc *content.Node, pass int) ([]Frame, error) {
	pageHeight := sl.PageHeight
	if pageHeight <= 0 {
		pageHeight = 720 * dimen.PT
	}
	leading := sl.Leading
	if leading <= 0 {
		leading = 12 * dimen.PT
	}
	var frames []Frame
	page, y := 1, dimen.DU(0)
	var walk func(n *content.Node)
	walk = func(n *content.Node) {
		if n == nil {
			return
		}
		if !n.Location().IsNone() {
			frame := Frame{Loc: n.Location(), Page: page, Y: y}
			switch n.Kind() {
			case content.TextKind, content.RawKind:
				lead := leadingOf(n, leading)
				frame.W = dimen.DU(len(n.Text())) * 5 * dimen.PT
				frame.H = lead
				y += lead
				if y >= pageHeight {
					page++
					y = 0
				}
			}
			frames = append(frames, frame)
		}
		for _, ch := range n.Children() {
			walk(ch)
		}
	}
	walk(doc)
	tracer().Debugf("stack layout pass %d: %d frames on %d page(s)", pass, len(frames), page)
	return frames, nil
}

// leadingOf reads a node's computed leading; fallback covers nodes without
// style annotation and non-absolute values.
func leadingOf(n *content.Node, fallback dimen.DU) dimen.DU {
	if n.Styles() == nil {
		return fallback
	}
	p, ok := n.Styles().Property("leading")
	if !ok {
		return fallback
	}
	l, err := style.ParseLength(p)
	if err != nil {
		return fallback
	}
	m := style.LengthPattern[dimen.DU](l)
	var du dimen.DU
	return m.OneOf(style.LengthPatterns[dimen.DU]{
		Just:    m.With(&du).Const(du),
		Auto:    fallback,
		Inherit: fallback,
		Percent: fallback,
		Default: fallback,
	})
}
