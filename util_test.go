package realfn

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// samples returns evenly spaced points in [lo, hi], including every
// multiple of 0.25.
func samples(lo, hi float64) []float64 {
	var out []float64
	for x := lo; x <= hi; x += 0.125 {
		out = append(out, x)
	}
	return out
}

func near(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon*max(1, math.Abs(a), math.Abs(b))
}
