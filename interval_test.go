package realfn

import (
	"errors"
	"math"
	"testing"
)

func TestNewIntervalOrder(t *testing.T) {
	values := []float64{math.Inf(-1), -2, -0.5, 0, 1, 3, math.Inf(1)}
	for _, a := range values {
		for _, b := range values {
			for _, incl := range [4][2]bool{{true, true}, {true, false}, {false, true}, {false, false}} {
				iv, err := NewInterval(Bound{a, incl[0]}, Bound{b, incl[1]})
				if err != nil {
					if a != b {
						t.Errorf("NewInterval(%g, %g) failed: %v", a, b, err)
					}
					continue
				}
				if iv.Low().Value > iv.High().Value {
					t.Errorf("NewInterval(%g, %g) = %v, bounds out of order", a, b, iv)
				}
				if !iv.IsValid() {
					t.Errorf("NewInterval(%g, %g) = %v isn't valid", a, b, iv)
				}
			}
		}
	}
}

func TestNewIntervalSwapsBounds(t *testing.T) {
	iv, err := NewInterval(Incl(3), Excl(1))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := iv.String(), "(1, 3]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNewIntervalDegenerate(t *testing.T) {
	tests := [][2]Bound{
		{Incl(1), Excl(1)},
		{Excl(1), Incl(1)},
		{Excl(1), Excl(1)},
		{Incl(math.NaN()), Incl(1)},
		{PosInf, PosInf},
	}
	for _, tt := range tests {
		if iv, err := NewInterval(tt[0], tt[1]); !errors.Is(err, ErrDegenerateInterval) {
			t.Errorf("NewInterval(%v, %v) = %v, %v, want ErrDegenerateInterval", tt[0], tt[1], iv, err)
		}
	}
	if iv, err := NewInterval(Incl(2), Incl(2)); err != nil || !iv.IsPoint() {
		t.Errorf("NewInterval([2, 2]) = %v, %v, want point interval", iv, err)
	}
}

func TestIntervalInfiniteBoundsInclusive(t *testing.T) {
	iv := MustInterval(Excl(math.Inf(-1)), Excl(5))
	if !iv.Low().Inclusive {
		t.Error("infinite lower bound should be inclusive")
	}
	if got, want := iv.String(), "(-∞, 5)"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if !iv.Contains(-1e308) || iv.Contains(5) {
		t.Errorf("wrong containment for %v", iv)
	}
}

func TestIntervalZeroValue(t *testing.T) {
	if (Interval{}).IsValid() {
		t.Error("zero value reported as valid")
	}
}

func TestIntervalContains(t *testing.T) {
	tests := []struct {
		iv   Interval
		x    float64
		want bool
	}{
		{RightOpen(0, 1), 0, true},
		{RightOpen(0, 1), 0.5, true},
		{RightOpen(0, 1), 1, false},
		{RightOpen(0, 1), -0.1, false},
		{LeftOpen(0, 1), 0, false},
		{LeftOpen(0, 1), 1, true},
		{Open(0, 1), 1e-300, true},
		{PointInterval(2), 2, true},
		{PointInterval(2), 2.0000001, false},
		{RealLineInterval(), -1e300, true},
		{Closed(0, 1), math.NaN(), false},
	}
	for _, tt := range tests {
		if got := tt.iv.Contains(tt.x); got != tt.want {
			t.Errorf("%v.Contains(%g) = %t, want %t", tt.iv, tt.x, got, tt.want)
		}
	}
}

func TestIntervalIntersect(t *testing.T) {
	tests := []struct {
		a, b Interval
		want Interval
		ok   bool
	}{
		{Closed(0, 1), LeftOpen(1, 2), Interval{}, false},
		{Closed(0, 1), Closed(1, 2), PointInterval(1), true},
		{Closed(0, 2), Open(1, 3), LeftOpen(1, 2), true},
		{RightOpen(0, 2), Closed(0, 2), RightOpen(0, 2), true},
		{Closed(0, 1), Closed(2, 3), Interval{}, false},
		{RealLineInterval(), Open(-1, 1), Open(-1, 1), true},
	}
	for _, tt := range tests {
		for _, pair := range [2][2]Interval{{tt.a, tt.b}, {tt.b, tt.a}} {
			got, ok := pair[0].Intersect(pair[1])
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("%v ∩ %v = %v, %t, want %v, %t", pair[0], pair[1], got, ok, tt.want, tt.ok)
			}
		}
	}
}

func TestIntervalUnion(t *testing.T) {
	tests := []struct {
		a, b Interval
		want Interval
		ok   bool
	}{
		{RightOpen(0, 1), Closed(1, 2), Closed(0, 2), true},
		{Open(0, 1), Open(1, 2), Interval{}, false},
		{Closed(0, 3), Open(1, 2), Closed(0, 3), true},
		{Open(0, 1), RightOpen(0, 2), RightOpen(0, 2), true},
		{Closed(0, 1), Closed(2, 3), Interval{}, false},
		{PointInterval(1), Open(1, 2), RightOpen(1, 2), true},
	}
	for _, tt := range tests {
		for _, pair := range [2][2]Interval{{tt.a, tt.b}, {tt.b, tt.a}} {
			got, ok := pair[0].Union(pair[1])
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("%v ∪ %v = %v, %t, want %v, %t", pair[0], pair[1], got, ok, tt.want, tt.ok)
			}
			if ok != pair[0].Uniteable(pair[1]) {
				t.Errorf("Uniteable(%v, %v) disagrees with Union", pair[0], pair[1])
			}
		}
	}
}

func TestIntervalPredicates(t *testing.T) {
	// point, open, closed, left open, right open
	tests := []struct {
		iv   Interval
		want [5]bool
	}{
		{Closed(0, 1), [5]bool{false, false, true, false, false}},
		{Open(0, 1), [5]bool{false, true, false, true, true}},
		{LeftOpen(0, 1), [5]bool{false, false, false, true, false}},
		{RightOpen(0, 1), [5]bool{false, false, false, false, true}},
		{PointInterval(3), [5]bool{true, false, true, false, false}},
	}
	for _, tt := range tests {
		iv := tt.iv
		got := [5]bool{iv.IsPoint(), iv.IsOpen(), iv.IsClosed(), iv.IsLeftOpen(), iv.IsRightOpen()}
		if got != tt.want {
			t.Errorf("%v: got %v, want %v", iv, got, tt.want)
		}
	}
}

func TestIntervalBeforeBelowAbove(t *testing.T) {
	if !RightOpen(0, 1).Before(Closed(1, 2)) {
		t.Error("[0, 1) should be before [1, 2]")
	}
	if Closed(0, 1).Before(Closed(1, 2)) {
		t.Error("[0, 1] shares 1 with [1, 2]")
	}
	if Closed(1, 2).Before(Closed(0, 1)) {
		t.Error("[1, 2] isn't before [0, 1]")
	}

	iv := Closed(0, 2)
	if got, ok := iv.Below(Excl(1)); !ok || got != Closed(0, 1) {
		t.Errorf("Below((1) = %v, %t", got, ok)
	}
	if got, ok := iv.Below(Incl(1)); !ok || got != RightOpen(0, 1) {
		t.Errorf("Below([1) = %v, %t", got, ok)
	}
	if got, ok := iv.Below(Incl(0)); ok {
		t.Errorf("Below([0) = %v, want nothing", got)
	}
	if got, ok := iv.Above(Incl(1)); !ok || got != LeftOpen(1, 2) {
		t.Errorf("Above(1]) = %v, %t", got, ok)
	}
	if got, ok := iv.Above(Excl(2)); !ok || got != PointInterval(2) {
		t.Errorf("Above(2)) = %v, %t", got, ok)
	}
	if got, ok := RealLineInterval().Above(PosInf); ok {
		t.Errorf("Above(+∞) = %v, want nothing", got)
	}
}

func TestIntervalProbe(t *testing.T) {
	for _, iv := range []Interval{
		RealLineInterval(),
		MustInterval(NegInf, Excl(-5)),
		MustInterval(Excl(7), PosInf),
		Open(1, 1.5),
		MustInterval(NegInf, Excl(-0.75*math.MaxFloat64)),
		MustInterval(Excl(0.75*math.MaxFloat64), PosInf),
		Open(-math.MaxFloat64, math.MaxFloat64),
	} {
		x := iv.Probe()
		if math.IsInf(x, 0) || !iv.Contains(x) || x == iv.Low().Value || x == iv.High().Value {
			t.Errorf("%v.Probe() = %g isn't strictly inside", iv, x)
		}
	}
}

func TestIntervalProbeAtFloatLimits(t *testing.T) {
	// Nothing finite lies strictly below -MaxFloat64; the bound is the best
	// we can do.
	if x := MustInterval(NegInf, Excl(-math.MaxFloat64)).Probe(); x != -math.MaxFloat64 {
		t.Errorf("got %g, want %g", x, -math.MaxFloat64)
	}
	if x := MustInterval(Excl(math.MaxFloat64), PosInf).Probe(); x != math.MaxFloat64 {
		t.Errorf("got %g, want %g", x, math.MaxFloat64)
	}
}
