package sel

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/cascade/content"
)

func TestMatchesByType(t *testing.T) {
	raw := content.Raw("x", false)
	if !Type("raw").Matches(raw) {
		t.Error("expected type selector 'raw' to match a raw node, doesn't")
	}
	if Type("heading").Matches(raw) {
		t.Error("expected type selector 'heading' not to match a raw node, does")
	}
}

func TestMatchesByFieldFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.sel")
	defer teardown()
	//
	blockRaw := content.Raw("x", true)
	inlineRaw := content.Raw("x", false)
	s, err := Type("raw").Where(map[string]content.Value{"block": content.Bool(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Matches(blockRaw) || s.Matches(inlineRaw) {
		t.Error("expected raw.where(block: true) to match block raw only, doesn't")
	}
}

func TestFieldFilterUnsetNeverMatches(t *testing.T) {
	s, err := Type("figure").Where(map[string]content.Value{"caption": content.Str("x")})
	if err != nil {
		t.Fatal(err)
	}
	if s.Matches(content.Elem("figure")) {
		t.Error("expected predicate on an unset field never to match, does")
	}
}

func TestFieldFilterRejectsUnknownField(t *testing.T) {
	_, err := Type("raw").Where(map[string]content.Value{"blok": content.Bool(true)})
	if err == nil {
		t.Error("expected unknown field for a built-in element to be rejected, isn't")
	}
}

func TestMatchesText(t *testing.T) {
	n := content.Text("hello world")
	if !Text("world").Matches(n) {
		t.Error("expected text selector to match a containing run, doesn't")
	}
	if Text("moon").Matches(n) {
		t.Error("expected text selector not to match a non-containing run, does")
	}
	start, end, ok := Text("world").TextSpan("hello world")
	if !ok || start != 6 || end != 11 {
		t.Errorf("expected span [6:11), got [%d:%d) ok=%v", start, end, ok)
	}
}

func TestMatchesRegex(t *testing.T) {
	s, err := Regex(`[0-9]+`)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Matches(content.Text("chapter 12")) {
		t.Error("expected regex selector to match digits, doesn't")
	}
	if _, err = Regex(`([`); err == nil {
		t.Error("expected malformed pattern to be rejected at construction, isn't")
	}
}

func TestMatchesLabelAndAll(t *testing.T) {
	labeled := content.Heading(1).WithLabel("intro")
	if !Label("intro").Matches(labeled) || Label("intro").Matches(content.Heading(1)) {
		t.Error("expected label selector to match exactly the labeled node")
	}
	if !All().Matches(labeled) || !All().Matches(content.Text("x")) {
		t.Error("expected the universal selector to match any node, doesn't")
	}
}

func TestGeneralityOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.sel")
	defer teardown()
	//
	rawBlock, _ := Type("raw").Where(map[string]content.Value{"block": content.Bool(true)})
	rawBlockLang, _ := rawBlock.Where(map[string]content.Value{"text": content.Str("x")})
	re, _ := Regex("x+")
	cases := []struct {
		a, b Selector
		want bool
	}{
		{All(), Type("raw"), true},
		{All(), Label("intro"), true},
		{Text("x"), Type("raw"), true},
		{re, rawBlock, true},
		{Type("raw"), rawBlock, true},
		{Type("heading"), rawBlock, false},
		{rawBlock, rawBlockLang, true},
		{rawBlockLang, rawBlock, false},
		{rawBlock, Type("raw"), false},
		{Type("raw"), Text("x"), false},
		{Label("intro"), Label("intro"), true},
		{Label("intro"), Type("raw"), false},
		{Type("raw"), Label("intro"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Generality(c.a, c.b), "generality(%s, %s)", c.a, c.b)
	}
}

func TestParseForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.sel")
	defer teardown()
	//
	cases := []struct {
		input string
		kind  Kind
	}{
		{"*", AllSel},
		{"heading", TypeSel},
		{"raw.where(block: true)", FieldSel},
		{`"figure"`, TextSel},
		{"/[0-9]+/", RegexSel},
		{"<intro>", LabelSel},
	}
	for _, c := range cases {
		s, err := Parse(c.input)
		if err != nil {
			t.Errorf("cannot parse %q: %v", c.input, err)
			continue
		}
		if s.Kind() != c.kind {
			t.Errorf("expected %q to parse as %v selector, is %v", c.input, c.kind, s.Kind())
		}
	}
	for _, bad := range []string{"", "raw.where(block:", "/(/", "1up", `""`} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected %q to be rejected, isn't", bad)
		}
	}
}

func TestParsedFieldFilterMatches(t *testing.T) {
	s, err := Parse(`raw.where(block: false)`)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Matches(content.Raw("x", false)) || s.Matches(content.Raw("x", true)) {
		t.Error("expected parsed field filter to discriminate on the field value")
	}
}
