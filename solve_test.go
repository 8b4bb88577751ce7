package realfn

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got roots %v, expected %v", roots, expected)
	}
	const epsilon = 1e-9
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestCubeRoot(t *testing.T) {
	for _, x := range []float64{-27, -1, 0, 1, 8, 1000, 1e-300, -3e300, 0.001} {
		c := CubeRoot(x)
		if !near(c*c*c, x, 1e-14) {
			t.Errorf("CubeRoot(%g)³ = %g", x, c*c*c)
		}
		if !near(c, math.Cbrt(x), 1e-15) {
			t.Errorf("CubeRoot(%g) = %g, math.Cbrt says %g", x, c, math.Cbrt(x))
		}
	}
	if got := CubeRoot(-27); got != -3 {
		t.Errorf("CubeRoot(-27) = %v, want -3", got)
	}
}

func TestSolveMonicQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(solveMonicQuadratic(0, -5)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(solveMonicQuadratic(0, 5)), []float64{})
	checkRoots(t, slice(solveMonicQuadratic(2, 1)), []float64{-1})
	checkRoots(t, slice(solveMonicQuadratic(-3, 2)), []float64{1, 2})
	// Large and small root; the naive formula loses the small one.
	checkRoots(t, slice(solveMonicQuadratic(-1e9, 1)), []float64{1e-9, 1e9})
}

func TestSolveMonicCubic(t *testing.T) {
	slice := func(roots [3]float64, n int) []float64 {
		return roots[:n]
	}
	// x³ − 5
	checkRoots(t, slice(solveMonicCubic(0, 0, -5)), []float64{math.Cbrt(5)})
	// x³ − x: three real roots
	checkRoots(t, slice(solveMonicCubic(0, -1, 0)), []float64{-1, 0, 1})
	// (x + 1)²(x − 2): repeated root
	checkRoots(t, slice(solveMonicCubic(0, -3, -2)), []float64{-1, 2})
	// (x − 1)³
	checkRoots(t, slice(solveMonicCubic(-3, 3, -1)), []float64{1})
}

func TestRootsFromKnownRoots(t *testing.T) {
	tests := [][]float64{
		{1, 2},
		{-3.5, 0.25},
		{-1, 0.5, 3},
		{-10, 0, 7},
		{-2, -1, 1, 3},
		{0.5, 1.5, 2.5, 10},
		{-2, -1, 1, 2},
		{0, 1, 2, 3},
		{-4, -0.5, 0.75, 6},
	}
	for _, rs := range tests {
		p := FromRoots(rs...)
		got, err := p.Roots()
		if err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		checkRoots(t, got, rs)
		for _, r := range got {
			if v := p.Eval(r); math.Abs(v) > 1e-9 {
				t.Errorf("%v at root %g is %g", p, r, v)
			}
		}
	}
}

func TestRootsRepeated(t *testing.T) {
	tests := []struct {
		roots []float64
		want  []float64
	}{
		{[]float64{1, 1}, []float64{1}},
		{[]float64{1, 1, 2}, []float64{1, 2}},
		{[]float64{1, 1, 1}, []float64{1}},
		{[]float64{-3, -3, 1, 2}, []float64{-3, 1, 2}},
	}
	for _, tt := range tests {
		got, err := FromRoots(tt.roots...).Roots()
		if err != nil {
			t.Fatal(err)
		}
		checkRoots(t, got, tt.want)
	}
}

func TestRootsNonReal(t *testing.T) {
	tests := []struct {
		p    *Polynomial
		want []float64
	}{
		// x² + 1
		{NewPolynomial(1, 0, 1), nil},
		// (x − 2)(x² + 1)
		{NewPolynomial(-2, 1, -2, 1), []float64{2}},
		// (x − 1)(x + 2)(x² + 1)
		{NewPolynomial(-2, 1, -1, 1, 1), []float64{-2, 1}},
		// x⁴ + 1
		{NewPolynomial(1, 0, 0, 0, 1), nil},
		// constant
		{NewPolynomial(3), nil},
	}
	for _, tt := range tests {
		got, err := tt.p.Roots()
		if err != nil {
			t.Fatal(err)
		}
		checkRoots(t, got, tt.want)
	}
}

func TestRootsUnsupportedDegree(t *testing.T) {
	p := FromRoots(-2, -1, 0, 1, 2)
	if _, err := p.Roots(); !errors.Is(err, ErrUnsupportedDegree) {
		t.Errorf("got %v, want ErrUnsupportedDegree", err)
	}
}

func TestSolveHighDegree(t *testing.T) {
	tests := [][]float64{
		{-2, -1, 0, 1, 2},
		{-3, -2, -1, 1, 2, 3},
		{-3, -2, -1, 0.5, 1, 2, 3},
	}
	for _, rs := range tests {
		got, err := FromRoots(rs...).Solve(0)
		if err != nil {
			t.Fatal(err)
		}
		checkRoots(t, got, rs)
	}
}

func TestSolveForValue(t *testing.T) {
	// x² = 4
	got, err := NewPolynomial(0, 0, 1).Solve(4)
	if err != nil {
		t.Fatal(err)
	}
	checkRoots(t, got, []float64{-2, 2})

	// x⁵ = 32
	got, err = NewPolynomial(0, 0, 0, 0, 0, 1).Solve(32)
	if err != nil {
		t.Fatal(err)
	}
	checkRoots(t, got, []float64{2})
}

func TestNewtonSolve(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }
	x, err := NewtonSolve(f, df, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, math.Sqrt2, x, cmpopts.EquateApprox(0, 1e-12))

	x, err = NewtonSolve(f, df, 7, -1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, -3.0, x, cmpopts.EquateApprox(0, 1e-12))
}

func TestNewtonSolveNoConvergence(t *testing.T) {
	// x² + 1 has no real roots.
	f := func(x float64) float64 { return x*x + 1 }
	df := func(x float64) float64 { return 2 * x }
	if _, err := NewtonSolve(f, df, 0, 0.5); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("got %v, want ErrNoConvergence", err)
	}
	if _, err := NewtonSolveOpt(f, df, 0, 0.5, SolveOptions{MaxIterations: 3}); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("got %v, want ErrNoConvergence", err)
	}
}

func TestSolveBracketed(t *testing.T) {
	// x³ − 3x has a maximum of 2 at −1 and a minimum of −2 at 1.
	p := NewPolynomial(0, -3, 0, 1)
	tests := []struct {
		y           float64
		left, right float64
		n           int
	}{
		{0, math.Inf(-1), math.Inf(1), 3},
		{0, -1, 1, 1},
		{2, math.Inf(-1), math.Inf(1), 2},
		{10, math.Inf(-1), math.Inf(1), 1},
		{-10, math.Inf(-1), 0, 1},
		{-3, -1, 5, 0},
	}
	for _, tt := range tests {
		got, err := SolveBracketed(p, tt.y, tt.left, tt.right)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != tt.n {
			t.Errorf("y = %g: got %v, want %d solutions", tt.y, got, tt.n)
			continue
		}
		for _, x := range got {
			if v := horner(p.coeffs, x); math.Abs(v-tt.y) > 1e-9 {
				t.Errorf("y = %g: p(%g) = %g", tt.y, x, v)
			}
			if x < tt.left || x > tt.right {
				t.Errorf("y = %g: solution %g outside [%g, %g]", tt.y, x, tt.left, tt.right)
			}
		}
	}

	got, err := SolveBracketed(p, 0, math.Inf(-1), math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	checkRoots(t, got, []float64{-math.Sqrt(3), 0, math.Sqrt(3)})
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := SolveITP(f, 1.0, 2.0, 1e-12, 0, 0.2, f(1.0), f(2.0))
	if n := math.Abs(f(x)); n > 6e-12 {
		t.Errorf("%v > 6e-12", n)
	}
}
