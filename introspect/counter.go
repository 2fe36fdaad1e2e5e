package introspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strconv"
	"strings"

	"github.com/npillmayer/cascade/content"
	"github.com/npillmayer/cascade/locate"
)

// CounterOp discriminates counter operations.
type CounterOp int8

// The counter operations.
const (
	StepOp    CounterOp = iota + 1 // increment by a fixed amount
	UpdateOp                       // set to a value or apply an updater function
	DisplayOp                      // render the folded value as text
)

// CounterAction is the payload of a counter function node. The dispatcher
// records step and update actions in the pass's Log, tagged with the node's
// assigned Location, and replaces display actions with the rendered value
// from the best-available snapshot.
type CounterAction struct {
	Name   string
	Op     CounterOp
	Amount int           // step amount
	Value  int           // update value
	Func   func(int) int // update function; takes precedence over Value
	Format string        // display format
}

// Counter is a handle on a named counter. Handles are cheap values; all
// state lives in the per-pass update log.
type Counter struct {
	name string
}

// CounterOf returns the handle on the counter with the given name.
func CounterOf(name string) Counter {
	return Counter{name: name}
}

// Name returns the counter's name.
func (c Counter) Name() string {
	return c.name
}

// Step creates content which, when realized, increments the counter by
// amount at its own Location.
func (c Counter) Step(amount int) *content.Node {
	return content.Func("counter:"+c.name+":step",
		CounterAction{Name: c.name, Op: StepOp, Amount: amount})
}

// Update creates content which sets the counter to an absolute value at its
// own Location.
func (c Counter) Update(value int) *content.Node {
	return content.Func("counter:"+c.name+":update",
		CounterAction{Name: c.name, Op: UpdateOp, Value: value})
}

// UpdateFunc creates content which applies an updater function to the
// counter at its own Location.
func (c Counter) UpdateFunc(f func(int) int) *content.Node {
	return content.Func("counter:"+c.name+":update",
		CounterAction{Name: c.name, Op: UpdateOp, Func: f})
}

// Display creates content which renders the counter's value at its own
// Location, formatted according to format (see FormatValue).
func (c Counter) Display(format string) *content.Node {
	return content.Func("counter:"+c.name+":display",
		CounterAction{Name: c.name, Op: DisplayOp, Format: format})
}

// Locate creates content which invokes a callback with the node's own
// Location once assigned. The callback may produce content, which is
// resolved in place of the function node; returning nil produces nothing.
func Locate(cb LocateFunc) *content.Node {
	return content.Func("locate", cb)
}

// LocateFunc is the callback of a Locate node. It receives the node's
// assigned Location and the introspection session of the running pass,
// which answers counter and query requests from the best-available
// snapshot.
type LocateFunc func(loc locate.Location, intro *Session) *content.Node

// --- Value formatting ------------------------------------------------------

// FormatValue renders a counter value in a numbering style: "1" for arabic
// numbers, "a"/"A" for letters, "i"/"I" for roman numerals. Unknown formats
// fall back to arabic.
func FormatValue(value int, format string) string {
	switch format {
	case "a", "A":
		return letters(value, format == "A")
	case "i", "I":
		return roman(value, format == "I")
	}
	return strconv.Itoa(value)
}

func letters(v int, upper bool) string {
	if v <= 0 {
		return strconv.Itoa(v)
	}
	var b []byte
	for v > 0 {
		v--
		b = append([]byte{byte('a' + v%26)}, b...)
		v /= 26
	}
	s := string(b)
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

var romanValues = []struct {
	value int
	digit string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func roman(v int, upper bool) string {
	if v <= 0 {
		return strconv.Itoa(v)
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for v >= rv.value {
			b.WriteString(rv.digit)
			v -= rv.value
		}
	}
	if upper {
		return strings.ToUpper(b.String())
	}
	return b.String()
}
