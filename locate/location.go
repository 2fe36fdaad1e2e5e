package locate

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is an opaque, globally unique identity for a realized content
// node. Locations are hash values and therefore carry no inherent order;
// ordering is provided by the introspection layer after layout.
type Location uint64

// None is the zero Location. No realized node ever receives it.
const None Location = 0

func (loc Location) String() string {
	if loc == None {
		return "loc(none)"
	}
	return fmt.Sprintf("loc(%016x)", uint64(loc))
}

// IsNone is a predicate for unassigned locations.
func (loc Location) IsNone() bool {
	return loc == None
}

// Path is a structural path: the sequence of child indices leading from the
// document root to a node. Paths are value types; Descend does not alias the
// receiver's backing array.
type Path []uint32

// Descend returns the path extended by a traversal step to child i.
func (p Path) Descend(i uint32) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, i)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, step := range p {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(step), 10))
	}
	return b.String()
}

// hash folds a path into a 64-bit FNV-1a value.
func (p Path) hash() uint64 {
	h := offset64
	for _, step := range p {
		h = mix(h, uint64(step))
	}
	return h
}

// FNV-1a, unrolled for uint64 input words.
const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

func mix(h, x uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= x & 0xff
		h *= prime64
		x >>= 8
	}
	return h
}
