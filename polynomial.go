package realfn

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
)

var _ Function = (*Polynomial)(nil)
var _ Extremer = (*Polynomial)(nil)

// PolynomialKind classifies polynomials by degree. It is determined once, at
// construction.
type PolynomialKind int

const (
	// Constant polynomials have degree 0, including the zero polynomial.
	Constant PolynomialKind = iota
	// Linear polynomials have degree 1.
	Linear
	// Quadratic polynomials have degree 2.
	Quadratic
	// General polynomials have degree 3 or higher.
	General
)

func (k PolynomialKind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return "general"
	}
}

// Polynomial is a polynomial function c₀ + c₁x + c₂x² + … with real
// coefficients, optionally restricted to a domain smaller than the real line.
//
// Polynomials are immutable. Their real roots are computed on first use and
// cached; the cache is shared by all restrictions of the same polynomial and
// is safe for concurrent use.
type Polynomial struct {
	coeffs []float64
	kind   PolynomialKind
	domain Domain
	roots  *rootCache
}

type rootCache struct {
	once  sync.Once
	roots []float64
	err   error
}

// NewPolynomial returns the polynomial with the given coefficients, in order
// of increasing degree. It is defined on the whole real line.
func NewPolynomial(coeffs ...float64) *Polynomial {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}
	return newPolynomial(slices.Clone(coeffs[:n]), RealLine())
}

func newPolynomial(coeffs []float64, d Domain) *Polynomial {
	p := &Polynomial{
		coeffs: coeffs,
		domain: d,
		roots:  new(rootCache),
	}
	switch p.Degree() {
	case 0:
		p.kind = Constant
	case 1:
		p.kind = Linear
	case 2:
		p.kind = Quadratic
	default:
		p.kind = General
	}
	return p
}

// FromRoots returns the monic polynomial (x − r₀)(x − r₁)… with the given
// roots.
func FromRoots(roots ...float64) *Polynomial {
	coeffs := []float64{1}
	for _, r := range roots {
		next := make([]float64, len(coeffs)+1)
		for i, c := range coeffs {
			next[i+1] += c
			next[i] -= r * c
		}
		coeffs = next
	}
	return NewPolynomial(coeffs...)
}

// Restrict returns p restricted to the intersection of its domain and d.
func (p *Polynomial) Restrict(d Domain) *Polynomial {
	return &Polynomial{
		coeffs: p.coeffs,
		kind:   p.kind,
		domain: p.domain.Intersect(d),
		roots:  p.roots,
	}
}

// unrestricted returns p defined on the whole real line.
func (p *Polynomial) unrestricted() *Polynomial {
	if p.domain.Equal(RealLine()) {
		return p
	}
	return &Polynomial{coeffs: p.coeffs, kind: p.kind, domain: RealLine(), roots: p.roots}
}

// Degree returns the degree of the polynomial. The zero polynomial has
// degree 0.
func (p *Polynomial) Degree() int { return max(0, len(p.coeffs)-1) }

// Kind returns the kind of the polynomial.
func (p *Polynomial) Kind() PolynomialKind { return p.kind }

// Coeffs returns a copy of the coefficients, in order of increasing degree.
// The zero polynomial has no coefficients.
func (p *Polynomial) Coeffs() []float64 { return slices.Clone(p.coeffs) }

// Coeff returns the coefficient of xⁱ.
func (p *Polynomial) Coeff(i int) float64 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool { return len(p.coeffs) == 0 }

// Domain implements [Function].
func (p *Polynomial) Domain() Domain { return p.domain.Clone() }

// Eval evaluates the polynomial at x. It returns NaN if x is outside the
// polynomial's domain.
func (p *Polynomial) Eval(x float64) float64 {
	if !p.domain.Contains(x) {
		return math.NaN()
	}
	return horner(p.coeffs, x)
}

func horner(coeffs []float64, x float64) float64 {
	var y float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}

// hornerDeriv evaluates the derivative of the polynomial with the given
// coefficients at x.
func hornerDeriv(coeffs []float64, x float64) float64 {
	var y float64
	for i := len(coeffs) - 1; i >= 1; i-- {
		y = y*x + float64(i)*coeffs[i]
	}
	return y
}

// Derivative implements [Function]. The derivative has the same domain as p.
func (p *Polynomial) Derivative() Function { return p.deriv() }

func (p *Polynomial) deriv() *Polynomial {
	if len(p.coeffs) <= 1 {
		return newPolynomial(nil, p.domain.Clone())
	}
	out := make([]float64, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = float64(i) * p.coeffs[i]
	}
	return newPolynomial(out, p.domain.Clone())
}

// Add returns p + o, defined on the intersection of both domains.
func (p *Polynomial) Add(o *Polynomial) *Polynomial {
	out := make([]float64, max(len(p.coeffs), len(o.coeffs)))
	copy(out, p.coeffs)
	for i, c := range o.coeffs {
		out[i] += c
	}
	return newPolynomial(trimZeros(out), p.domain.Intersect(o.domain))
}

// Sub returns p − o, defined on the intersection of both domains.
func (p *Polynomial) Sub(o *Polynomial) *Polynomial {
	return p.Add(o.Scale(-1))
}

// Mul returns p · o, defined on the intersection of both domains.
func (p *Polynomial) Mul(o *Polynomial) *Polynomial {
	if p.IsZero() || o.IsZero() {
		return newPolynomial(nil, p.domain.Intersect(o.domain))
	}
	out := make([]float64, len(p.coeffs)+len(o.coeffs)-1)
	for i, a := range p.coeffs {
		for j, b := range o.coeffs {
			out[i+j] += a * b
		}
	}
	return newPolynomial(trimZeros(out), p.domain.Intersect(o.domain))
}

// Scale returns s · p.
func (p *Polynomial) Scale(s float64) *Polynomial {
	out := make([]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = s * c
	}
	return newPolynomial(trimZeros(out), p.domain.Clone())
}

func trimZeros(coeffs []float64) []float64 {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}
	return coeffs[:n]
}

// Limit implements [Function]. For finite x it is the value of the
// polynomial, regardless of its domain.
func (p *Polynomial) Limit(x float64) float64 {
	if p.Degree() == 0 {
		return p.Coeff(0)
	}
	if !math.IsInf(x, 0) {
		return horner(p.coeffs, x)
	}
	lead := p.coeffs[len(p.coeffs)-1]
	sign := 1
	if lead < 0 {
		sign = -1
	}
	if x < 0 && p.Degree()%2 == 1 {
		sign = -sign
	}
	return math.Inf(sign)
}

// Roots returns the real roots of the polynomial in ascending order, ignoring
// its domain. Repeated roots are reported once. Constant polynomials,
// including the zero polynomial, have no roots.
//
// Roots are computed in closed form, which is only possible up to degree
// four; for higher degrees Roots returns [ErrUnsupportedDegree]. Use
// [Polynomial.Solve] for an iterative method that works for all degrees.
func (p *Polynomial) Roots() ([]float64, error) {
	c := p.roots
	c.once.Do(func() {
		c.roots, c.err = closedFormRoots(p.kind, p.coeffs)
	})
	return slices.Clone(c.roots), c.err
}

func closedFormRoots(kind PolynomialKind, coeffs []float64) ([]float64, error) {
	var out []float64
	switch deg := max(0, len(coeffs)-1); {
	case kind == Constant:
		return nil, nil
	case kind == Linear:
		out = []float64{-coeffs[0] / coeffs[1]}
	case kind == Quadratic:
		a := coeffs[2]
		rs, n := solveMonicQuadratic(coeffs[1]/a, coeffs[0]/a)
		out = rs[:n]
	case deg == 3:
		a := coeffs[3]
		rs, n := solveMonicCubic(coeffs[2]/a, coeffs[1]/a, coeffs[0]/a)
		out = rs[:n]
	case deg == 4:
		a := coeffs[4]
		rs, n := solveMonicQuartic(coeffs[3]/a, coeffs[2]/a, coeffs[1]/a, coeffs[0]/a)
		out = rs[:n]
	default:
		return nil, fmt.Errorf("closed-form roots of degree %d polynomial: %w", deg, ErrUnsupportedDegree)
	}
	for i, r := range out {
		out[i] = polishRoot(coeffs, r)
	}
	slices.Sort(out)
	return dedupRoots(out), nil
}

// Solve returns all real x, in ascending order and ignoring the domain, for
// which p(x) = y. Polynomials up to degree four are solved in closed form.
// Higher degrees are solved with [SolveBracketed], which may return
// [ErrNoConvergence].
func (p *Polynomial) Solve(y float64) ([]float64, error) {
	q := p.unrestricted()
	if y != 0 {
		q = q.Sub(NewPolynomial(y))
	}
	if q.Degree() <= 4 {
		return q.Roots()
	}
	return SolveBracketed(q, 0, math.Inf(-1), math.Inf(1))
}

// Extrema implements [Extremer]. It reports the critical points of the
// polynomial on the whole real line, classified by the sign of the
// derivative on either side.
func (p *Polynomial) Extrema() ([]FunctionPoint, error) {
	if p.Degree() < 2 {
		return nil, nil
	}
	d := p.deriv()
	crit, err := d.Solve(0)
	if err != nil {
		return nil, err
	}
	out := make([]FunctionPoint, len(crit))
	for i, c := range crit {
		prev, next := math.Inf(-1), math.Inf(1)
		if i > 0 {
			prev = crit[i-1]
		}
		if i+1 < len(crit) {
			next = crit[i+1]
		}
		left := horner(d.coeffs, probe(prev, c))
		right := horner(d.coeffs, probe(c, next))
		kind := Undefined
		switch {
		case left > 0 && right < 0:
			kind = Maximum
		case left < 0 && right > 0:
			kind = Minimum
		}
		out[i] = FunctionPoint{X: c, Y: horner(p.coeffs, c), Kind: kind}
	}
	return out, nil
}

// Intersect implements [Function]. Intersections with other polynomials are
// computed as the roots of their difference; if the difference vanishes,
// the polynomials share one segment per interval of their common domain.
// Intersections with other kinds of functions are delegated to o.
func (p *Polynomial) Intersect(o Function) ([]Intersection, error) {
	q, ok := o.(*Polynomial)
	if !ok {
		return o.Intersect(p)
	}
	common := p.domain.Intersect(q.domain)
	if common.IsEmpty() {
		return nil, nil
	}
	diff := p.unrestricted().Sub(q.unrestricted())
	var out []Intersection
	if diff.IsZero() {
		for iv := range common.Intervals() {
			out = append(out, SegmentOn(iv, p))
		}
		return out, nil
	}
	xs, err := diff.Solve(0)
	if err != nil {
		return nil, err
	}
	for _, x := range xs {
		if common.Contains(x) {
			out = append(out, PointAt(x))
		}
	}
	return out, nil
}

func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}
		if sb.Len() == 0 {
			if c < 0 {
				sb.WriteString("-")
			}
		} else if c < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		c = math.Abs(c)
		if c != 1 || i == 0 {
			sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		}
		switch i {
		case 0:
		case 1:
			sb.WriteString("x")
		default:
			sb.WriteString("x^" + strconv.Itoa(i))
		}
	}
	return sb.String()
}
