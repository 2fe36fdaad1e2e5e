package style

// The engine-wide defaults play the role of a user-agent stylesheet: every
// styling property a renderer may ask for has a registered default, so
// lookups on an empty style chain never come up empty-handed.
var defaultProperties = map[string]Property{
	"color":            "black",
	"background-color": "none",
	"font-family":      "serif",
	"font-size":        "10pt",
	"font-style":       "normal",
	"font-weight":      "normal",
	"leading":          "12pt",
	"align":            "left",
	"indent":           "0",
	"numbering":        "none",
	"lang":             "en",
}

// Default returns the process-wide default value for a property key.
// Unknown keys return NullStyle and false.
func Default(key string) (Property, bool) {
	p, ok := defaultProperties[key]
	if !ok {
		return NullStyle, false
	}
	return p, true
}

// IsKnownKey is a predicate for property keys with a registered default.
// Rules referring to unknown keys are rejected at registration time.
func IsKnownKey(key string) bool {
	_, ok := defaultProperties[key]
	return ok
}
