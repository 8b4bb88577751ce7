package realfn

import (
	"math"
	"strconv"
)

// Bound is one end of an [Interval]: a value and whether that value belongs
// to the interval.
//
// Bounds are plain values. An interval stores copies of its bounds, so
// modifying a Bound after constructing an interval from it has no effect on
// the interval.
type Bound struct {
	Value     float64
	Inclusive bool
}

var (
	// NegInf is the lower bound of the real line.
	NegInf = Bound{Value: math.Inf(-1), Inclusive: true}
	// PosInf is the upper bound of the real line.
	PosInf = Bound{Value: math.Inf(1), Inclusive: true}
)

// Incl returns the inclusive bound at x.
func Incl(x float64) Bound { return Bound{Value: x, Inclusive: true} }

// Excl returns the exclusive bound at x.
func Excl(x float64) Bound { return Bound{Value: x, Inclusive: false} }

// IsInf reports whether the bound lies at positive or negative infinity.
func (b Bound) IsInf() bool { return math.IsInf(b.Value, 0) }

// flip returns the complementary bound at the same value. The part of the
// real line below a lower bound b ends at b.flip(), and vice versa.
func (b Bound) flip() Bound {
	if b.IsInf() {
		return b
	}
	return Bound{Value: b.Value, Inclusive: !b.Inclusive}
}

// lowerLess reports whether a starts strictly before b, both interpreted as
// lower bounds. At equal values an inclusive bound starts first.
func lowerLess(a, b Bound) bool {
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.Inclusive && !b.Inclusive
}

// upperLess reports whether a ends strictly before b, both interpreted as
// upper bounds. At equal values an exclusive bound ends first.
func upperLess(a, b Bound) bool {
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return !a.Inclusive && b.Inclusive
}

// maxLower returns the later of two lower bounds. Ties are broken in favour
// of exclusivity.
func maxLower(a, b Bound) Bound {
	if lowerLess(a, b) {
		return b
	}
	return a
}

// minUpper returns the earlier of two upper bounds. Ties are broken in favour
// of exclusivity.
func minUpper(a, b Bound) Bound {
	if upperLess(a, b) {
		return a
	}
	return b
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+∞"
	case math.IsInf(f, -1):
		return "-∞"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
