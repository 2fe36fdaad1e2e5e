package style

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

// ErrNoLength is returned for property values which do not denote a length.
var ErrNoLength = errors.New("not a length value")

const (
	lengthAbsolute uint32 = 0x0001
	lengthAuto     uint32 = 0x0002
	lengthInherit  uint32 = 0x0003
	kindMask       uint32 = 0x000f

	lengthPercent uint32 = 0x0100
)

// Length is an option type for dimension-valued properties.
type Length struct {
	d       dimen.DU
	percent percent.Percent
	flags   uint32
}

/*
type Length
	= Auto
	| Inherit
	| JustLength dimen
	| Percentage Percent
*/

func Auto() Length {
	return Length{flags: lengthAuto}
}

func Inherit() Length {
	return Length{flags: lengthInherit}
}

// JustLength creates a length with a fixed value of x.
func JustLength(x dimen.DU) Length {
	return Length{d: x, flags: lengthAbsolute}
}

// Percentage creates a length with a %-relative value.
func Percentage(n percent.Percent) Length {
	return Length{percent: n, flags: lengthPercent}
}

// points per unit, for the absolute units of length properties
var unitFactors = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"mm": 72.0 / 25.4,
	"cm": 72.0 / 2.54,
	"in": 72,
}

// ParseLength reads the textual form of a dimension property: a decimal
// number followed by an absolute unit ("12pt", "1.5in"), a percentage
// ("80%"), or one of the keywords auto and inherit.
func ParseLength(p Property) (Length, error) {
	s := strings.TrimSpace(string(p))
	switch s {
	case "":
		return Length{}, ErrNoLength
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil {
			return Length{}, ErrNoLength
		}
		return Percentage(percent.FromInt(n)), nil
	}
	for unit, factor := range unitFactors {
		if !strings.HasSuffix(s, unit) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, unit), 64)
		if err != nil {
			return Length{}, ErrNoLength
		}
		return JustLength(dimen.DU(f * factor * float64(dimen.PT))), nil
	}
	return Length{}, ErrNoLength
}

// --- Expression matching ---------------------------------------------------

type LengthPatterns[T any] struct {
	Auto    T
	Inherit T
	Just    T
	Percent T
	Default T
}

func LengthPattern[T any](l Length) *LengthExpr[T] {
	return &LengthExpr[T]{length: l}
}

type LengthExpr[T any] struct {
	length Length
}

func (m *LengthExpr[T]) OneOf(patterns LengthPatterns[T]) T {
	switch {
	case m.length.flags&kindMask == lengthAuto:
		return patterns.Auto
	case m.length.flags&kindMask == lengthInherit:
		return patterns.Inherit
	case m.length.flags&kindMask == lengthAbsolute:
		return patterns.Just
	case m.length.flags&lengthPercent > 0:
		return patterns.Percent
	}
	return patterns.Default
}

func (m *LengthExpr[T]) With(du *dimen.DU) *LengthExpr[T] {
	*du = m.length.d
	return m
}

func (m *LengthExpr[T]) Const(x T) T {
	return x
}
