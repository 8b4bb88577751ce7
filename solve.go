package realfn

import (
	"fmt"
	"math"
	"slices"
)

const (
	// NewtonTolerance is the default residual |f(x) − y| below which
	// Newton's method considers a solution found.
	NewtonTolerance = 1e-12

	// MaxNewtonIterations is the default iteration cap for Newton's method.
	MaxNewtonIterations = 100

	// discriminantEpsilon is the relative size below which discriminants are
	// treated as zero. Repeated roots produce discriminants that are zero in
	// exact arithmetic but rarely in floating point.
	discriminantEpsilon = 1e-10

	// rootEpsilon is the relative distance below which two roots are
	// considered the same.
	rootEpsilon = 1e-9
)

// SolveOptions configures the iterative solvers. The zero value selects the
// defaults.
type SolveOptions struct {
	// Tolerance is the residual below which a solution is accepted. Defaults
	// to NewtonTolerance.
	Tolerance float64
	// MaxIterations limits the number of Newton steps. Defaults to
	// MaxNewtonIterations.
	MaxIterations int
}

func (opts SolveOptions) withDefaults() SolveOptions {
	if opts.Tolerance <= 0 {
		opts.Tolerance = NewtonTolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = MaxNewtonIterations
	}
	return opts
}

// CubeRoot returns the real cube root of x.
//
// The root is found by Newton iteration, starting from a power of two that is
// known to be larger than the root. From there the iteration decreases
// monotonically, and it stops as soon as it no longer does.
func CubeRoot(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	a := math.Abs(x)
	_, exp := math.Frexp(a)
	// a < 2^exp, so 2^ceil(exp/3) is at least the cube root of a.
	e := exp / 3
	if exp > 0 && exp%3 != 0 {
		e++
	}
	y := math.Ldexp(1, e)
	for range 200 {
		next := (2*y + a/(y*y)) / 3
		if next >= y {
			break
		}
		y = next
	}
	return math.Copysign(y, x)
}

// solveMonicQuadratic finds the real roots of x² + p x + q = 0, in ascending
// order.
func solveMonicQuadratic(p, q float64) ([2]float64, int) {
	h := 0.5 * p
	disc := h*h - q
	if disc < 0 {
		if disc < -discriminantEpsilon*max(h*h, math.Abs(q)) {
			return [2]float64{}, 0
		}
		disc = 0
	}
	if disc == 0 {
		return [2]float64{-h}, 1
	}
	// −p/2 ± sqrt(p²/4 − q), computing the root of larger magnitude first to
	// avoid cancellation. See https://math.stackexchange.com/questions/866331
	r1 := -h - math.Copysign(math.Sqrt(disc), h)
	r2 := q / r1
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return [2]float64{r1, r2}, 2
}

// solveMonicCubic finds the real roots of x³ + a x² + b x + c = 0.
//
// The substitution x = t − a/3 yields the depressed cubic t³ + P t + Q = 0,
// whose discriminant D = (Q/2)² + (P/3)³ decides between one real root
// (Cardano's formula), a repeated root, and three real roots (the
// trigonometric method).
func solveMonicCubic(a, b, c float64) ([3]float64, int) {
	shift := -a / 3
	P := b - a*a/3
	Q := 2*a*a*a/27 - a*b/3 + c
	q2 := Q / 2
	p3 := P / 3
	D := q2*q2 + p3*p3*p3
	if math.Abs(D) <= discriminantEpsilon*max(q2*q2, math.Abs(p3*p3*p3)) {
		D = 0
	}
	switch {
	case D > 0:
		// uv = −P/3, so computing the larger of u and v with Cardano's
		// formula and the other by division avoids cancellation.
		u := CubeRoot(-q2 - math.Copysign(math.Sqrt(D), q2))
		var v float64
		if u != 0 {
			v = -p3 / u
		}
		return [3]float64{u + v + shift}, 1
	case D == 0:
		u := CubeRoot(-q2)
		if u == 0 {
			return [3]float64{shift}, 1
		}
		r1, r2 := 2*u+shift, -u+shift
		if r2 < r1 {
			r1, r2 = r2, r1
		}
		return [3]float64{r1, r2}, 2
	default:
		// D < 0 implies P < 0.
		m := 2 * math.Sqrt(-p3)
		arg := (3 * Q / (2 * P)) * math.Sqrt(-3/P)
		arg = max(-1, min(1, arg))
		theta := math.Acos(arg) / 3
		var out [3]float64
		for k := range 3 {
			out[k] = m*math.Cos(theta-2*math.Pi*float64(k)/3) + shift
		}
		slices.Sort(out[:])
		return out, 3
	}
}

// solveMonicQuartic finds the real roots of x⁴ + a x³ + b x² + c x + d = 0
// using Ferrari's method.
//
// The substitution x = y − a/4 removes the cubic term, leaving
// y⁴ + p y² + q y + r = 0. If q vanishes this is a quadratic in y².
// Otherwise a positive root m of the resolvent cubic
// m³ + p m² + (p²/4 − r) m − q²/8 = 0 splits the quartic into the two
// quadratics y² ∓ s y + (p/2 + m ± q/(2s)) with s = sqrt(2m).
func solveMonicQuartic(a, b, c, d float64) ([4]float64, int) {
	shift := -a / 4
	a2 := a * a
	p := b - 3*a2/8
	q := c - a*b/2 + a2*a/8
	r := d - a*c/4 + a2*b/16 - 3*a2*a2/256

	var out [4]float64
	var n int
	push := func(y float64) {
		out[n] = y + shift
		n++
	}

	scale := max(math.Pow(math.Abs(p), 1.5), math.Pow(math.Abs(r), 0.75))
	if math.Abs(q) <= discriminantEpsilon*scale {
		zs, zn := solveMonicQuadratic(p, r)
		for _, z := range zs[:zn] {
			switch {
			case z > 0:
				s := math.Sqrt(z)
				push(-s)
				push(s)
			case z >= -discriminantEpsilon*max(math.Abs(p), math.Sqrt(math.Abs(r))):
				push(0)
			}
		}
		slices.Sort(out[:n])
		return out, n
	}

	ms, mn := solveMonicCubic(p, p*p/4-r, -q*q/8)
	m := ms[mn-1]
	if m <= 0 {
		// The resolvent is negative at 0 and grows without bound, so it
		// has a positive root; only rounding can get us here.
		return out, 0
	}
	s := math.Sqrt(2 * m)
	for _, sign := range [2]float64{1, -1} {
		ys, yn := solveMonicQuadratic(-sign*s, p/2+m+sign*q/(2*s))
		for _, y := range ys[:yn] {
			push(y)
		}
	}
	slices.Sort(out[:n])
	return out, n
}

// polishRoot refines a root of the polynomial with the given coefficients
// using Newton's method, as long as doing so reduces the residual.
func polishRoot(coeffs []float64, x float64) float64 {
	f := horner(coeffs, x)
	for range 8 {
		if f == 0 {
			break
		}
		df := hornerDeriv(coeffs, x)
		if df == 0 {
			break
		}
		nx := x - f/df
		nf := horner(coeffs, nx)
		if math.Abs(nf) >= math.Abs(f) {
			break
		}
		x, f = nx, nf
	}
	return x
}

// dedupRoots removes roots that are within rootEpsilon of their predecessor.
// roots must be sorted.
func dedupRoots(roots []float64) []float64 {
	return slices.CompactFunc(roots, func(a, b float64) bool {
		return math.Abs(a-b) <= rootEpsilon*max(1, math.Abs(a))
	})
}

// NewtonSolve solves f(x) = y with Newton's method, starting at x0 and
// iterating x ← x − (f(x) − y) / f'(x) until |f(x) − y| < NewtonTolerance.
// It returns [ErrNoConvergence] if that doesn't happen within
// MaxNewtonIterations steps or if the derivative vanishes.
//
// Newton's method converges to the root of the monotonic branch it starts in
// only if the branch is convex enough; see [SolveBracketed] for a method that
// picks good starting points.
func NewtonSolve(f, df func(float64) float64, y, x0 float64) (float64, error) {
	return NewtonSolveOpt(f, df, y, x0, SolveOptions{})
}

// NewtonSolveOpt is like [NewtonSolve] but allows overriding the tolerance
// and iteration cap.
func NewtonSolveOpt(f, df func(float64) float64, y, x0 float64, opts SolveOptions) (float64, error) {
	opts = opts.withDefaults()
	x := x0
	for range opts.MaxIterations {
		fx := f(x) - y
		if math.Abs(fx) < opts.Tolerance {
			return x, nil
		}
		d := df(x)
		if d == 0 || math.IsNaN(d) || math.IsNaN(fx) {
			return x, fmt.Errorf("newton at x = %g: vanishing derivative: %w", x, ErrNoConvergence)
		}
		x -= fx / d
	}
	if math.Abs(f(x)-y) < opts.Tolerance {
		return x, nil
	}
	return x, fmt.Errorf("newton from x0 = %g after %d iterations: %w", x0, opts.MaxIterations, ErrNoConvergence)
}

// SolveBracketed finds all x in [left, right] with f(x) = y.
//
// The local extrema of f divide [left, right] into monotonic branches. In
// each branch whose end values (or limits, for infinite ends) enclose y,
// Newton's method is started at the midpoint. Steps that would leave the
// branch are rejected in favour of the ITP method (see [SolveITP]), which is
// guaranteed to converge on a bracketed root. This way every solution is
// found exactly once, even if f has several.
//
// The solutions are returned in ascending order.
func SolveBracketed(f interface {
	Function
	Extremer
}, y, left, right float64) ([]float64, error) {
	return SolveBracketedOpt(f, y, left, right, SolveOptions{})
}

// SolveBracketedOpt is like [SolveBracketed] but allows overriding the
// tolerance and iteration cap of Newton's method.
func SolveBracketedOpt(f interface {
	Function
	Extremer
}, y, left, right float64, opts SolveOptions) ([]float64, error) {
	opts = opts.withDefaults()
	if left > right {
		left, right = right, left
	}
	ex, err := f.Extrema()
	if err != nil {
		return nil, err
	}
	breaks := []float64{left}
	for _, e := range ex {
		if e.X > left && e.X < right {
			breaks = append(breaks, e.X)
		}
	}
	breaks = append(breaks, right)

	valueAt := func(x float64) float64 {
		if math.IsInf(x, 0) {
			return f.Limit(x) - y
		}
		return f.Eval(x) - y
	}
	df := f.Derivative()

	var out []float64
	for k := 0; k+1 < len(breaks); k++ {
		a, b := breaks[k], breaks[k+1]
		ya, yb := valueAt(a), valueAt(b)
		if math.IsNaN(ya) || math.IsNaN(yb) {
			continue
		}
		if ya == 0 && !math.IsInf(a, 0) {
			out = append(out, a)
		}
		if yb == 0 && !math.IsInf(b, 0) {
			out = append(out, b)
		}
		if ya == 0 || yb == 0 || math.Signbit(ya) == math.Signbit(yb) {
			continue
		}
		x, err := solveBranch(f, df, y, a, b, ya, yb, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	slices.Sort(out)
	return dedupRoots(out), nil
}

// solveBranch finds the solution of f(x) = y inside the monotonic branch
// (a, b), given ya = f(a) − y and yb = f(b) − y of opposite signs. Either end
// may be infinite, in which case ya and yb are the limits.
func solveBranch(f, df Function, y, a, b, ya, yb float64, opts SolveOptions) (float64, error) {
	if math.IsInf(a, -1) && math.IsInf(b, 1) {
		// Split the real line at 0 and continue in the half that has the
		// sign change.
		y0 := f.Eval(0) - y
		switch {
		case y0 == 0:
			return 0, nil
		case math.Signbit(y0) == math.Signbit(ya):
			a, ya = 0, y0
		default:
			b, yb = 0, y0
		}
	}
	var err error
	if math.IsInf(a, -1) {
		a, err = expandBracket(f, y, b, yb, -1)
		ya = f.Eval(a) - y
	} else if math.IsInf(b, 1) {
		b, err = expandBracket(f, y, a, ya, 1)
	}
	if err != nil {
		return 0, err
	}
	if ya == 0 {
		return a, nil
	}

	lo, hi, ylo := a, b, ya
	x := a + (b-a)/2
	for range opts.MaxIterations {
		fx := f.Eval(x) - y
		if math.Abs(fx) < opts.Tolerance {
			return x, nil
		}
		if math.Signbit(fx) == math.Signbit(ylo) {
			lo, ylo = x, fx
		} else {
			hi = x
		}
		d := df.Eval(x)
		nx := x - fx/d
		if d == 0 || math.IsNaN(nx) || nx <= lo || nx >= hi {
			break
		}
		x = nx
	}

	// Newton left the branch or stalled. ITP can't miss the bracketed root.
	sign := 1.0
	if ylo > 0 {
		sign = -1
	}
	g := func(t float64) float64 { return sign * (f.Eval(t) - y) }
	eps := 1e-15 * max(1, math.Abs(lo), math.Abs(hi))
	return SolveITP(g, lo, hi, eps, 1, 0.2/(hi-lo), g(lo), g(hi)), nil
}

// expandBracket walks away from the finite end x0 of an unbounded branch in
// direction dir, doubling the step, until the sign of f − y differs from that
// of y0 = f(x0) − y.
func expandBracket(f Function, y, x0, y0 float64, dir float64) (float64, error) {
	step := max(1, math.Abs(x0))
	for range 2100 {
		x := x0 + dir*step
		if math.IsInf(x, 0) {
			break
		}
		if fx := f.Eval(x) - y; fx == 0 || math.Signbit(fx) != math.Signbit(y0) {
			return x, nil
		}
		step *= 2
	}
	return 0, fmt.Errorf("no sign change beyond %g: %w", x0, ErrNoConvergence)
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the [ITP method], as described in the paper [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// It is assumed that ya = f(a) < 0 and yb = f(b) > 0, otherwise unexpected
// results may occur. The value of epsilon must be larger than
// 2**-63 * (b - a).
//
// The n0 parameter controls the relative impact of the bisection and secant
// components; with 0 the method never needs more iterations than bisection,
// with 1 the secant method gets more of a chance on smooth functions. A value
// of 0.2 / (b - a) is suggested for k1.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	if ya == 0 {
		return a
	}
	if yb == 0 {
		return b
	}
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// k2 is fixed at 2.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}
