package resolve

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/introspect"
	"github.com/npillmayer/cascade/locate"
	"github.com/npillmayer/cascade/rules"
	"github.com/npillmayer/cascade/sel"
	"github.com/npillmayer/cascade/style"
)

func newRuntime() *Runtime {
	return &Runtime{
		Registry: locate.NewRegistry(),
		Session:  introspect.NewSession(introspect.Empty(), introspect.NewLog()),
	}
}

func colorOf(t *testing.T, n *content.Node) style.Property {
	t.Helper()
	if n.Styles() == nil {
		t.Fatalf("node %v carries no style annotation", n)
	}
	p, _ := n.Styles().Property("color")
	return p
}

// walk visits a resolved tree in document order.
func walk(n *content.Node, visit func(*content.Node)) {
	visit(n)
	for _, ch := range n.Children() {
		walk(ch, visit)
	}
}

func countTag(n *content.Node, tag string) int {
	count := 0
	walk(n, func(m *content.Node) {
		if m.Tag() == tag {
			count++
		}
	})
	return count
}

func TestRealizeAnnotatesNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	if err := chain.Set(style.NewPatch(style.KeyValue{Key: "color", Value: "blue"})); err != nil {
		t.Fatal(err)
	}
	rt := newRuntime()
	out, err := Resolve(content.Elem("doc", content.Text("hello")), chain, rt)
	if err != nil {
		t.Fatal(err)
	}
	if out.Location().IsNone() {
		t.Error("expected resolved root to carry a location")
	}
	if colorOf(t, out) != "blue" {
		t.Errorf("expected computed color blue, is %q", colorOf(t, out))
	}
	child, _ := out.Child(0)
	if child.Location().IsNone() || colorOf(t, child) != "blue" {
		t.Error("expected child to be located and styled as well")
	}
	if rt.Registry.Count() != 2 {
		t.Errorf("expected 2 assigned locations, have %d", rt.Registry.Count())
	}
}

func TestStylingShowAppliesToMatchesOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	err := chain.ShowPatch(sel.Type("raw"),
		style.NewPatch(style.KeyValue{Key: "color", Value: "green"}))
	if err != nil {
		t.Fatal(err)
	}
	doc := content.Group(content.Raw("x := 1", false), content.Text("prose"))
	out, err := Resolve(doc, chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := out.Child(0)
	text, _ := out.Child(1)
	if colorOf(t, raw) != "green" {
		t.Errorf("expected raw to be styled green, is %q", colorOf(t, raw))
	}
	if colorOf(t, text) != "black" {
		t.Errorf("expected prose to keep the default color, is %q", colorOf(t, text))
	}
}

func TestReplacementShowAppliesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	err := chain.Show(sel.Type("heading"), func(n *content.Node) *content.Node {
		return content.Elem("chapter", n)
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Resolve(content.Heading(1, content.Text("Intro")), chain, newRuntime())
	if err != nil {
		t.Fatal(err) // a rule matching its own output must not recurse
	}
	if out.Tag() != "chapter" {
		t.Fatalf("expected replacement wrapper, is %q", out.Tag())
	}
	if countTag(out, "heading") != 1 {
		t.Errorf("expected the matched heading to survive exactly once inside the wrapper")
	}
}

func TestShowToNothingRemovesContent(t *testing.T) {
	chain := rules.NewChain()
	err := chain.Show(sel.Type("raw"), func(n *content.Node) *content.Node {
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Resolve(content.Raw("secret", true), chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind() != content.GroupKind || out.ChildCount() != 0 {
		t.Errorf("expected raw to resolve to empty content, is %v", out)
	}
}

func TestRevokingShowDisablesEarlierRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	err := chain.ShowPatch(sel.Type("raw"),
		style.NewPatch(style.KeyValue{Key: "color", Value: "red"}))
	if err != nil {
		t.Fatal(err)
	}
	rawBlock, err := sel.Type("raw").Where(map[string]content.Value{"block": content.Bool(true)})
	if err != nil {
		t.Fatal(err)
	}
	if err := chain.ShowRevoke(rawBlock, sel.Type("raw")); err != nil {
		t.Fatal(err)
	}
	doc := content.Group(content.Raw("inline", false), content.Raw("display", true))
	out, err := Resolve(doc, chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	inline, _ := out.Child(0)
	block, _ := out.Child(1)
	if colorOf(t, inline) != "red" {
		t.Errorf("expected inline raw to stay styled red, is %q", colorOf(t, inline))
	}
	if colorOf(t, block) != "black" {
		t.Errorf("expected block raw to escape the styling rule, is %q", colorOf(t, block))
	}
}

func TestNestedRevokeThenNewShow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	err := chain.ShowPatch(sel.Type("strong"),
		style.NewPatch(style.KeyValue{Key: "color", Value: "blue"}))
	if err != nil {
		t.Fatal(err)
	}
	nested := rules.Styled(func(c rules.Chain) error {
		c.Revoke(sel.Type("strong"))
		return c.ShowPatch(sel.Type("strong"),
			style.NewPatch(style.KeyValue{Key: "color", Value: "red"}))
	}, content.Strong(content.Text("b")))
	doc := content.Group(
		content.Strong(content.Text("a")),
		nested,
		content.Strong(content.Text("c")),
	)
	out, err := Resolve(doc, chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	var colors []style.Property
	walk(out, func(n *content.Node) {
		if n.Kind() == content.StrongKind {
			colors = append(colors, colorOf(t, n))
		}
	})
	if len(colors) != 3 {
		t.Fatalf("expected 3 strong nodes, have %d", len(colors))
	}
	if colors[0] != "blue" || colors[1] != "red" || colors[2] != "blue" {
		t.Errorf("expected blue/red/blue, have %v", colors)
	}
}

func TestTextSpanSplitting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	chain := rules.NewChain()
	err := chain.Show(sel.Text("fox"), func(n *content.Node) *content.Node {
		return content.Strong(n)
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Resolve(content.Text("the fox sees the fox"), chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	if got := content.PlainText(out); got != "the fox sees the fox" {
		t.Errorf("expected span lifting to preserve the text, is %q", got)
	}
	if countTag(out, "strong") != 2 {
		t.Errorf("expected both occurrences to be transformed, have %d", countTag(out, "strong"))
	}
}

func TestRegexShowSpan(t *testing.T) {
	chain := rules.NewChain()
	numsel, err := sel.Regex(`[0-9]+`)
	if err != nil {
		t.Fatal(err)
	}
	err = chain.Show(numsel, func(n *content.Node) *content.Node {
		return content.Raw(n.Text(), false)
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Resolve(content.Text("see page 42 please"), chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	if countTag(out, "raw") != 1 {
		t.Fatalf("expected the matched digits to be lifted into a raw node")
	}
	if got := content.PlainText(out); got != "see page 42 please" {
		t.Errorf("expected surrounding text to survive, is %q", got)
	}
}

func TestScopedRulesAreReleased(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	block := rules.Styled(func(c rules.Chain) error {
		return c.Set(style.NewPatch(style.KeyValue{Key: "color", Value: "red"}))
	}, content.Text("inside"))
	doc := content.Group(block, content.Text("outside"))
	out, err := Resolve(doc, rules.NewChain(), newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	var inside, outside *content.Node
	walk(out, func(n *content.Node) {
		switch content.PlainText(n) {
		case "inside":
			if n.Kind() == content.TextKind {
				inside = n
			}
		case "outside":
			if n.Kind() == content.TextKind {
				outside = n
			}
		}
	})
	if inside == nil || outside == nil {
		t.Fatal("resolved tree lost its text nodes")
	}
	if colorOf(t, inside) != "red" {
		t.Errorf("expected scoped set rule to style the block body, is %q", colorOf(t, inside))
	}
	if colorOf(t, outside) != "black" {
		t.Errorf("expected scoped set rule to end with its block, is %q", colorOf(t, outside))
	}
}

func TestEverythingShowWrapsBlockRemainder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	block := rules.Styled(func(c rules.Chain) error {
		return c.Show(sel.All(), func(n *content.Node) *content.Node {
			return content.Elem("frame", n)
		})
	}, content.Text("a"), content.Text("b"))
	out, err := Resolve(block, rules.NewChain(), newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	if countTag(out, "frame") != 1 {
		t.Fatalf("expected the block remainder to be wrapped exactly once, have %d frames",
			countTag(out, "frame"))
	}
	if got := content.PlainText(out); got != "ab" {
		t.Errorf("expected the wrapped body to keep its content, is %q", got)
	}
}

func TestLabelShow(t *testing.T) {
	chain := rules.NewChain()
	err := chain.Show(sel.Label("fig:main"), func(n *content.Node) *content.Node {
		return content.Elem("figure-box", n)
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := content.Group(
		content.Elem("figure").WithLabel("fig:main"),
		content.Elem("figure").WithLabel("fig:other"),
	)
	out, err := Resolve(doc, chain, newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	if countTag(out, "figure-box") != 1 {
		t.Errorf("expected exactly the labelled node to transform, have %d boxes",
			countTag(out, "figure-box"))
	}
}

func TestScopeSetupErrorAbortsResolution(t *testing.T) {
	block := rules.Styled(func(c rules.Chain) error {
		return c.Set(style.NewPatch(style.KeyValue{Key: "colour", Value: "red"}))
	}, content.Text("body"))
	_, err := Resolve(block, rules.NewChain(), newRuntime())
	if err == nil {
		t.Error("expected registration error to abort resolution")
	}
	if err != nil && !strings.Contains(err.Error(), "styled block") {
		t.Errorf("expected error to name the failing block, is %q", err)
	}
}

func TestCounterOpsAreLogged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	cnt := introspect.CounterOf("page")
	doc := content.Group(cnt.Step(1), cnt.Display("1"))
	rt := newRuntime()
	out, err := Resolve(doc, rules.NewChain(), rt)
	if err != nil {
		t.Fatal(err)
	}
	// the first pass runs against the void snapshot: displays render zero
	display, _ := out.Child(1)
	if got := content.PlainText(display); got != "0" {
		t.Errorf("expected display under the void snapshot to render 0, is %q", got)
	}
	names := rt.Session.Log().CounterNames()
	if len(names) != 1 || names[0] != "page" {
		t.Errorf("expected the step to be logged for counter page, have %v", names)
	}
	obs := rt.Session.Log().Observations()
	if len(obs) != 1 || obs[0].Counter != "page" || obs[0].Value != "0" {
		t.Errorf("expected one observation of the handed-out value, have %+v", obs)
	}
}

func TestLocateCallbackSeesOwnLocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.resolve")
	defer teardown()
	//
	var seen locate.Location
	marker := introspect.Locate(func(loc locate.Location, intro *introspect.Session) *content.Node {
		seen = loc
		return content.Text("@" + loc.String())
	})
	out, err := Resolve(content.Group(marker), rules.NewChain(), newRuntime())
	if err != nil {
		t.Fatal(err)
	}
	fn, _ := out.Child(0)
	if seen.IsNone() || fn.Location() != seen {
		t.Error("expected the callback to receive the function node's own location")
	}
	if got := content.PlainText(out); got != "@"+seen.String() {
		t.Errorf("expected the produced content to resolve in place, is %q", got)
	}
}
