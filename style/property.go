package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a raw value for a styling property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping the raw
// string value into type Property is to provide a place for convenient
// conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a single style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Patches ---------------------------------------------------------------

// Patch is a selector-free bundle of property overrides, the payload of a
// set rule. A nil Patch is a valid empty patch (this is what a set-if rule
// with a false guard carries).
//
// Patches are value-maps; once handed to a rule they must not be mutated.
type Patch map[string]Property

// NewPatch creates a patch from a list of key/value pairs.
func NewPatch(kv ...KeyValue) Patch {
	p := make(Patch, len(kv))
	for _, item := range kv {
		p[item.Key] = Property(strings.ToLower(string(item.Value)))
	}
	return p
}

// IsEmpty is a predicate for patches without any overrides.
func (patch Patch) IsEmpty() bool {
	return len(patch) == 0
}

// Get returns the override for key, if set.
func (patch Patch) Get(key string) (Property, bool) {
	if patch == nil {
		return NullStyle, false
	}
	p, ok := patch[key]
	return p, ok
}

// Properties returns all overrides of a patch, sorted by key for
// deterministic iteration.
func (patch Patch) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(patch))
	for k, v := range patch {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

func (patch Patch) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, kv := range patch.Properties() {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", kv.Key, kv.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// --- Property maps ---------------------------------------------------------

// PropertyMap is the computed style annotation of a resolved content node:
// the composition of all set-rule patches visible at the node, innermost
// override winning. Property maps link to the map of the enclosing node, so
// un-overridden keys cascade upwards, ending at the process-wide defaults.
type PropertyMap struct {
	Parent *PropertyMap
	local  Patch
}

// NewPropertyMap wraps a patch into a property map, linked to the map of the
// enclosing node (may be nil for the document root).
func NewPropertyMap(local Patch, parent *PropertyMap) *PropertyMap {
	return &PropertyMap{Parent: parent, local: local}
}

// Property returns the value for key, cascading to enclosing maps and
// finally to the process-wide defaults. The boolean return is false only for
// keys without a registered default.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	for it := pmap; it != nil; it = it.Parent {
		if p, ok := it.local.Get(key); ok {
			return p, true
		}
	}
	return Default(key)
}

// Local returns the overrides set directly at this map, without cascading.
func (pmap *PropertyMap) Local() Patch {
	if pmap == nil {
		return nil
	}
	return pmap.local
}

func (pmap *PropertyMap) String() string {
	if pmap == nil {
		return "{}"
	}
	return pmap.local.String()
}
