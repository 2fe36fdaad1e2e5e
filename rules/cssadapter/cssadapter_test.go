package cssadapter

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/cascade/rules"
)

func TestLoadUniversalRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.rules")
	defer teardown()
	//
	chain := rules.NewChain()
	err := Load(`* { color: red; font-size: 14pt; }`, chain)
	if err != nil {
		t.Fatal(err)
	}
	if p := chain.Lookup("color"); p != "red" {
		t.Errorf("expected universal rule to set color, is %q", p)
	}
	if p := chain.Lookup("font-size"); p != "14pt" {
		t.Errorf("expected universal rule to set font-size, is %q", p)
	}
}

func TestLoadSelectorRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.rules")
	defer teardown()
	//
	chain := rules.NewChain()
	err := Load(`heading { color: blue; }`, chain)
	if err != nil {
		t.Fatal(err)
	}
	if p := chain.Lookup("color"); p != "black" {
		t.Errorf("expected selector rule not to touch the chain's properties, color is %q", p)
	}
	shows := chain.ActiveShows()
	if len(shows) != 1 {
		t.Fatalf("expected one styling show rule, have %d", len(shows))
	}
	if !shows[0].IsStyling() {
		t.Error("expected rule loaded from a selector prelude to be a styling show")
	}
	if shows[0].Selector().String() != "heading" {
		t.Errorf("unexpected selector: %v", shows[0].Selector())
	}
}

func TestLoadCollectsRuleErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.rules")
	defer teardown()
	//
	chain := rules.NewChain()
	err := Load(`
		h1 > p { color: red; }
		raw { color: green; }
	`, chain)
	if err == nil {
		t.Error("expected broken prelude to surface as an error")
	}
	// the healthy rule still loaded
	if shows := chain.ActiveShows(); len(shows) != 1 {
		t.Errorf("expected the remaining rule to load regardless, have %d", len(shows))
	}
}

func TestLoadToleratesTruncatedSheet(t *testing.T) {
	// the CSS parser recovers from an unterminated declaration block; the
	// rules it salvages are registered as usual
	chain := rules.NewChain()
	if err := Load(`* { color: red`, chain); err != nil {
		t.Errorf("expected truncated stylesheet to load leniently, got %v", err)
	}
}
