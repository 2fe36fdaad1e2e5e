package sel

import (
	"strconv"
	"strings"

	"github.com/npillmayer/cascade/content"
)

// Parse reads the textual form of a selector, as used by stylesheet
// preludes and on the command line:
//
//	*                          universal
//	heading                    element type
//	raw.where(block: true)     field-filtered element type
//	"figure"                   literal text
//	/[0-9]+/                   regular expression
//	<intro>                    label
//
// Field values are booleans, integers or double-quoted strings.
func Parse(input string) (Selector, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return Selector{}, &Error{Sel: input, Reason: "empty selector"}
	case input == "*":
		return All(), nil
	case strings.HasPrefix(input, "<") && strings.HasSuffix(input, ">"):
		name := input[1 : len(input)-1]
		if name == "" {
			return Selector{}, &Error{Sel: input, Reason: "empty label"}
		}
		return Label(name), nil
	case strings.HasPrefix(input, `"`) && strings.HasSuffix(input, `"`) && len(input) >= 2:
		lit, err := strconv.Unquote(input)
		if err != nil || lit == "" {
			return Selector{}, &Error{Sel: input, Reason: "malformed text literal", Err: err}
		}
		return Text(lit), nil
	case strings.HasPrefix(input, "/") && strings.HasSuffix(input, "/") && len(input) >= 3:
		return Regex(input[1 : len(input)-1])
	}
	tag, filter, hasFilter := strings.Cut(input, ".where(")
	if !isIdentifier(tag) {
		return Selector{}, &Error{Sel: input, Reason: "malformed element tag"}
	}
	if !hasFilter {
		return Type(tag), nil
	}
	if !strings.HasSuffix(filter, ")") {
		return Selector{}, &Error{Sel: input, Reason: "unterminated field filter"}
	}
	fields, err := parseFields(input, strings.TrimSuffix(filter, ")"))
	if err != nil {
		return Selector{}, err
	}
	return Type(tag).Where(fields)
}

func parseFields(sel, list string) (map[string]content.Value, error) {
	fields := make(map[string]content.Value)
	for _, item := range strings.Split(list, ",") {
		key, val, ok := strings.Cut(item, ":")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || !isIdentifier(key) {
			return nil, &Error{Sel: sel, Reason: "malformed field predicate"}
		}
		v, err := parseValue(val)
		if err != nil {
			return nil, &Error{Sel: sel, Reason: "malformed field value", Err: err}
		}
		fields[key] = v
	}
	return fields, nil
}

func parseValue(val string) (content.Value, error) {
	switch {
	case val == "true":
		return content.Bool(true), nil
	case val == "false":
		return content.Bool(false), nil
	case strings.HasPrefix(val, `"`):
		s, err := strconv.Unquote(val)
		if err != nil {
			return content.Value{}, err
		}
		return content.Str(s), nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return content.Value{}, err
	}
	return content.Int(n), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
