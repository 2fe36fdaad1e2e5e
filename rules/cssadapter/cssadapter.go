/*
Package cssadapter feeds CSS-syntax stylesheets into a style chain.

CSS is a convenient carrier syntax for declarative styling rules: the rule
prelude is read as a selector (see sel.Parse for the accepted forms) and the
declaration block becomes a property patch. A universal prelude registers a
selector-free set rule; every other prelude registers a styling show rule,
so the patch applies to matched nodes only.

Registration errors of individual rules do not stop the remaining rules
from loading; they are collected and returned as one combined error. The
CSS parser itself is forgiving and recovers from truncated input, so only
input it cannot make sense of at all surfaces as a parse error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssadapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"go.uber.org/multierr"

	"github.com/npillmayer/cascade/rules"
	"github.com/npillmayer/cascade/sel"
	"github.com/npillmayer/cascade/style"
)

// Load parses a stylesheet in CSS syntax and registers its rules with the
// current scope of a style chain.
func Load(csstext string, chain rules.Chain) error {
	sheet, err := parser.Parse(csstext)
	if err != nil {
		return fmt.Errorf("cannot parse stylesheet: %w", err)
	}
	return LoadStylesheet(sheet, chain)
}

// LoadStylesheet registers the rules of a parsed stylesheet with the
// current scope of a style chain.
func LoadStylesheet(sheet *css.Stylesheet, chain rules.Chain) error {
	var errs error
	for _, rule := range sheet.Rules {
		if rule.Kind != css.QualifiedRule {
			continue // at-rules have no counterpart here
		}
		if err := register(rule, chain); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func register(rule *css.Rule, chain rules.Chain) error {
	patch := asPatch(rule.Declarations)
	prelude := strings.TrimSpace(rule.Prelude)
	if prelude == "*" {
		return chain.Set(patch)
	}
	selector, err := sel.Parse(prelude)
	if err != nil {
		return err
	}
	return chain.ShowPatch(selector, patch)
}

func asPatch(declarations []*css.Declaration) style.Patch {
	kv := make([]style.KeyValue, 0, len(declarations))
	for _, d := range declarations {
		kv = append(kv, style.KeyValue{Key: d.Property, Value: style.Property(d.Value)})
	}
	return style.NewPatch(kv...)
}
