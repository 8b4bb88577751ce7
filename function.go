package realfn

import (
	"fmt"
	"reflect"
)

// Function is a function of a real variable, defined on a [Domain].
//
// Implementations must report NaN from Eval for arguments outside their
// domain.
type Function interface {
	// Eval evaluates the function at x.
	Eval(x float64) float64
	// Domain returns the set of arguments for which the function is defined.
	// The returned domain may be modified by the caller.
	Domain() Domain
	// Derivative returns the first derivative of the function.
	Derivative() Function
	// Intersect computes the points and segments that the function has in
	// common with o, restricted to the intersection of both domains.
	// Points are reported in ascending order.
	Intersect(o Function) ([]Intersection, error)
	// Limit returns the limit of the function as its argument approaches x,
	// which may be infinite.
	Limit(x float64) float64
}

// Extremer describes functions that report their local extrema.
type Extremer interface {
	// Extrema returns the critical points of the function in ascending
	// order.
	Extrema() ([]FunctionPoint, error)
}

// IntersectionKind distinguishes the variants of [Intersection].
type IntersectionKind int

const (
	// PointIntersection is a single crossing or touching point.
	PointIntersection IntersectionKind = iota
	// SegmentIntersection is a stretch on which two functions agree.
	SegmentIntersection
)

// Intersection describes where two functions meet.
//
// For intersections of kind [PointIntersection], only X is set. For
// [SegmentIntersection], Low and High delimit the stretch on which both
// functions equal Fn.
type Intersection struct {
	Kind IntersectionKind
	X    float64
	Low  Bound
	Fn   Function
	High Bound
}

// PointAt returns a point intersection at x.
func PointAt(x float64) Intersection {
	return Intersection{Kind: PointIntersection, X: x}
}

// SegmentOn returns a segment intersection on which both functions equal fn.
func SegmentOn(iv Interval, fn Function) Intersection {
	return Intersection{Kind: SegmentIntersection, Low: iv.low, Fn: fn, High: iv.high}
}

// Interval returns the stretch covered by the intersection. For point
// intersections this is the point interval [X, X].
func (in Intersection) Interval() Interval {
	if in.Kind == PointIntersection {
		return Interval{low: Incl(in.X), high: Incl(in.X)}
	}
	return Interval{low: in.Low, high: in.High}
}

func (in Intersection) String() string {
	if in.Kind == PointIntersection {
		return fmt.Sprintf("point(%s)", formatFloat(in.X))
	}
	return fmt.Sprintf("segment%v", in.Interval())
}

// PointKind classifies a [FunctionPoint].
type PointKind int

const (
	// Undefined marks critical points that are neither minima nor maxima.
	Undefined PointKind = iota
	// Minimum marks local minima.
	Minimum
	// Maximum marks local maxima.
	Maximum
)

func (k PointKind) String() string {
	switch k {
	case Minimum:
		return "minimum"
	case Maximum:
		return "maximum"
	default:
		return "undefined"
	}
}

// FunctionPoint is a point (X, Y) on the graph of a function. Critical points
// that are neither minima nor maxima, such as the saddle of x³ at 0, have
// kind [Undefined].
type FunctionPoint struct {
	X    float64
	Y    float64
	Kind PointKind
}

func (pt FunctionPoint) String() string {
	return fmt.Sprintf("%v(%g, %g)", pt.Kind, pt.X, pt.Y)
}

// sameFunction reports whether f and g are the same function value. Values
// of incomparable dynamic types are never the same.
func sameFunction(f, g Function) bool {
	if f == nil || g == nil {
		return f == g
	}
	tf, tg := reflect.TypeOf(f), reflect.TypeOf(g)
	if tf != tg || !tf.Comparable() {
		return false
	}
	return f == g
}

// restrictIntersections keeps the parts of xs that lie in iv. Segments are
// clipped to iv.
func restrictIntersections(xs []Intersection, iv Interval) []Intersection {
	var out []Intersection
	for _, x := range xs {
		switch x.Kind {
		case PointIntersection:
			if iv.Contains(x.X) {
				out = append(out, x)
			}
		case SegmentIntersection:
			if c, ok := x.Interval().Intersect(iv); ok {
				out = append(out, SegmentOn(c, x.Fn))
			}
		}
	}
	return out
}
