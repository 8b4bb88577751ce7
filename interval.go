package realfn

import (
	"fmt"
	"math"
)

// Interval is a non-empty, connected subset of the real line, described by a
// lower and an upper [Bound].
//
// Empty intervals have no representation; operations that may produce an
// empty result report so with a boolean. Infinite bounds are always stored as
// inclusive; [Interval.IsOpen] and its siblings report on the inclusion flags
// only.
//
// The zero value is not a valid interval.
type Interval struct {
	low  Bound
	high Bound
}

// NewInterval returns the interval between two bounds. The bounds may be
// passed in either order. It returns [ErrDegenerateInterval] if the interval
// would be empty, which is the case for a single excluded point, or if either
// value is NaN.
func NewInterval(low, high Bound) (Interval, error) {
	if math.IsNaN(low.Value) || math.IsNaN(high.Value) {
		return Interval{}, fmt.Errorf("bounds %v and %v: %w", low, high, ErrDegenerateInterval)
	}
	if low.Value > high.Value {
		low, high = high, low
	}
	iv, ok := makeInterval(normalize(low), normalize(high))
	if !ok {
		return Interval{}, fmt.Errorf("bounds %v and %v: %w", low, high, ErrDegenerateInterval)
	}
	return iv, nil
}

// MustInterval is like [NewInterval] but panics on error.
func MustInterval(low, high Bound) Interval {
	iv, err := NewInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

// Closed returns the interval [a, b].
func Closed(a, b float64) Interval { return MustInterval(Incl(a), Incl(b)) }

// Open returns the interval (a, b).
func Open(a, b float64) Interval { return MustInterval(Excl(a), Excl(b)) }

// LeftOpen returns the interval (a, b].
func LeftOpen(a, b float64) Interval { return MustInterval(Excl(a), Incl(b)) }

// RightOpen returns the interval [a, b).
func RightOpen(a, b float64) Interval { return MustInterval(Incl(a), Excl(b)) }

// PointInterval returns the interval [x, x].
func PointInterval(x float64) Interval { return MustInterval(Incl(x), Incl(x)) }

// RealLineInterval returns the interval spanning the whole real line.
func RealLineInterval() Interval { return Interval{low: NegInf, high: PosInf} }

func normalize(b Bound) Bound {
	if b.IsInf() {
		b.Inclusive = true
	}
	return b
}

// makeInterval builds an interval from already ordered bounds, reporting
// false if the result would be empty. Unlike NewInterval it never swaps.
func makeInterval(low, high Bound) (Interval, bool) {
	switch {
	case math.IsNaN(low.Value) || math.IsNaN(high.Value):
		return Interval{}, false
	case low.Value < high.Value:
		return Interval{low: low, high: high}, true
	case low.Value == high.Value && low.Inclusive && high.Inclusive && !low.IsInf():
		return Interval{low: low, high: high}, true
	default:
		return Interval{}, false
	}
}

// Low returns the lower bound.
func (iv Interval) Low() Bound { return iv.low }

// High returns the upper bound.
func (iv Interval) High() Bound { return iv.high }

// IsValid reports whether iv is a non-empty interval. Every interval returned
// by this package is valid; the zero value is not.
func (iv Interval) IsValid() bool {
	_, ok := makeInterval(iv.low, iv.high)
	return ok && iv.low == normalize(iv.low) && iv.high == normalize(iv.high)
}

// Equal reports whether iv and o have identical bounds.
func (iv Interval) Equal(o Interval) bool { return iv == o }

func (iv Interval) String() string {
	l, r := "(", ")"
	if iv.low.Inclusive && !iv.low.IsInf() {
		l = "["
	}
	if iv.high.Inclusive && !iv.high.IsInf() {
		r = "]"
	}
	return l + formatFloat(iv.low.Value) + ", " + formatFloat(iv.high.Value) + r
}

// Contains reports whether x lies in the interval.
func (iv Interval) Contains(x float64) bool {
	aboveLow := iv.low.Value < x || (iv.low.Inclusive && iv.low.Value == x)
	belowHigh := x < iv.high.Value || (iv.high.Inclusive && iv.high.Value == x)
	return aboveLow && belowHigh
}

// IsPoint reports whether the interval contains a single point.
func (iv Interval) IsPoint() bool { return iv.low.Value == iv.high.Value }

// IsOpen reports whether both bounds are exclusive.
func (iv Interval) IsOpen() bool { return !iv.low.Inclusive && !iv.high.Inclusive }

// IsClosed reports whether both bounds are inclusive.
func (iv Interval) IsClosed() bool { return iv.low.Inclusive && iv.high.Inclusive }

// IsLeftOpen reports whether the lower bound is exclusive.
func (iv Interval) IsLeftOpen() bool { return !iv.low.Inclusive }

// IsRightOpen reports whether the upper bound is exclusive.
func (iv Interval) IsRightOpen() bool { return !iv.high.Inclusive }

// Intersect returns the intersection of two intervals. Where bounds of equal
// value meet, the result is inclusive only if both bounds are. The second
// return value is false if the intersection is empty.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	return makeInterval(maxLower(iv.low, o.low), minUpper(iv.high, o.high))
}

// Uniteable reports whether the union of iv and o is an interval, that is,
// whether they overlap or touch at a value included by at least one of them.
func (iv Interval) Uniteable(o Interval) bool {
	return !separated(iv, o) && !separated(o, iv)
}

// separated reports whether a lies to the left of b with a gap of at least
// one point between them.
func separated(a, b Interval) bool {
	if a.high.Value != b.low.Value {
		return a.high.Value < b.low.Value
	}
	return !a.high.Inclusive && !b.low.Inclusive
}

// Union returns the smallest interval covering iv and o. The second return
// value is false if the two aren't [Interval.Uniteable].
func (iv Interval) Union(o Interval) (Interval, bool) {
	if !iv.Uniteable(o) {
		return Interval{}, false
	}
	low := o.low
	if !lowerLess(o.low, iv.low) {
		low = iv.low
	}
	high := o.high
	if !upperLess(iv.high, o.high) {
		high = iv.high
	}
	return Interval{low: low, high: high}, true
}

// Before reports whether iv lies entirely to the left of o, sharing no point
// with it. Touching intervals such as [0, 1) and [1, 2] are ordered by Before.
func (iv Interval) Before(o Interval) bool {
	if iv.high.Value != o.low.Value {
		return iv.high.Value < o.low.Value
	}
	return !iv.high.Inclusive || !o.low.Inclusive
}

// Below returns the part of iv that lies strictly before the lower bound b.
func (iv Interval) Below(b Bound) (Interval, bool) {
	if math.IsInf(b.Value, -1) {
		return Interval{}, false
	}
	return makeInterval(iv.low, minUpper(iv.high, b.flip()))
}

// Above returns the part of iv that lies strictly after the upper bound b.
func (iv Interval) Above(b Bound) (Interval, bool) {
	if math.IsInf(b.Value, 1) {
		return Interval{}, false
	}
	return makeInterval(maxLower(iv.low, b.flip()), iv.high)
}

// Probe returns a finite point strictly inside the interval, or the point
// itself if iv is a point interval. An unbounded interval that ends at
// ±math.MaxFloat64 contains no such point; Probe returns that end instead.
func (iv Interval) Probe() float64 {
	return probe(iv.low.Value, iv.high.Value)
}

// probe returns a finite value strictly between lo and hi, which may be
// infinite. If lo == hi, it returns lo.
func probe(lo, hi float64) float64 {
	loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
	switch {
	case loInf && hiInf:
		return 0
	case loInf:
		if x := hi - max(1, math.Abs(hi)); !math.IsInf(x, 0) {
			return x
		}
		return max(-math.MaxFloat64, math.Nextafter(hi, math.Inf(-1)))
	case hiInf:
		if x := lo + max(1, math.Abs(lo)); !math.IsInf(x, 0) {
			return x
		}
		return min(math.MaxFloat64, math.Nextafter(lo, math.Inf(1)))
	default:
		if d := hi - lo; !math.IsInf(d, 0) {
			return lo + d/2
		}
		return lo/2 + hi/2
	}
}
