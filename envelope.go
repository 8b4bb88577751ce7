package realfn

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
	"strings"
)

var _ Function = (*Envelope)(nil)

// EnvelopeKind selects between upper and lower envelopes.
type EnvelopeKind int

const (
	// Upper envelopes follow the pointwise maximum of their functions.
	Upper EnvelopeKind = iota
	// Lower envelopes follow the pointwise minimum of their functions.
	Lower
)

func (k EnvelopeKind) String() string {
	if k == Lower {
		return "lower"
	}
	return "upper"
}

// Piece is a part of an [Envelope]: on Interval, the envelope equals Fn.
type Piece struct {
	Interval Interval
	Fn       Function
}

// Envelope is the pointwise maximum or minimum of a set of functions.
//
// It is represented as a sorted list of pieces whose intervals partition the
// union of the functions' domains. Neighbouring pieces never share the same
// function if they could be joined into one.
//
// An Envelope is itself a [Function], so envelopes can be nested.
type Envelope struct {
	kind   EnvelopeKind
	pieces []Piece
}

// NewEnvelope returns an empty envelope of the given kind.
func NewEnvelope(kind EnvelopeKind) *Envelope {
	return &Envelope{kind: kind}
}

// BuildEnvelope computes the envelope of fns by recursively splitting them in
// halves and merging the envelopes of the halves. Provided the pieces of
// each merge are linear in number, this takes O(n log n) merge steps.
func BuildEnvelope(kind EnvelopeKind, fns ...Function) (*Envelope, error) {
	switch len(fns) {
	case 0:
		return NewEnvelope(kind), nil
	case 1:
		e := NewEnvelope(kind)
		if err := e.Add(fns[0]); err != nil {
			return nil, err
		}
		return e, nil
	}
	mid := len(fns) / 2
	left, err := BuildEnvelope(kind, fns[:mid]...)
	if err != nil {
		return nil, err
	}
	right, err := BuildEnvelope(kind, fns[mid:]...)
	if err != nil {
		return nil, err
	}
	if err := left.Merge(right); err != nil {
		return nil, err
	}
	return left, nil
}

// Kind returns the kind of the envelope.
func (e *Envelope) Kind() EnvelopeKind { return e.kind }

// IsEmpty reports whether no function with a non-empty domain has been added
// yet.
func (e *Envelope) IsEmpty() bool { return len(e.pieces) == 0 }

// Len returns the number of pieces.
func (e *Envelope) Len() int { return len(e.pieces) }

// Pieces returns an iterator over the pieces in ascending order.
func (e *Envelope) Pieces() iter.Seq[Piece] {
	return slices.Values(e.pieces)
}

// Clone returns a copy of e that doesn't share storage with it. The
// functions themselves aren't copied.
func (e *Envelope) Clone() *Envelope {
	return &Envelope{kind: e.kind, pieces: slices.Clone(e.pieces)}
}

// Add adds a function to the envelope.
func (e *Envelope) Add(f Function) error {
	o := NewEnvelope(e.kind)
	for iv := range f.Domain().Intervals() {
		o.pieces = append(o.pieces, Piece{Interval: iv, Fn: f})
	}
	return e.Merge(o)
}

// Merge merges another envelope of the same kind into e. It returns
// [ErrKindMismatch] if the kinds differ. o isn't modified.
//
// Where functions of both envelopes are defined, the function that wins (is
// larger for upper envelopes, smaller for lower ones) is determined by
// evaluating both functions at points strictly between consecutive crossings,
// never at a crossing itself. A crossing point belongs to the piece to its
// right. When both functions are equal, e's function wins.
func (e *Envelope) Merge(o *Envelope) error {
	if e.kind != o.kind {
		return fmt.Errorf("merging %v envelope into %v envelope: %w", o.kind, e.kind, ErrKindMismatch)
	}
	if len(o.pieces) == 0 {
		return nil
	}
	if len(e.pieces) == 0 {
		e.pieces = slices.Clone(o.pieces)
		return nil
	}
	pieces, err := e.merge(e.pieces, o.pieces)
	if err != nil {
		return err
	}
	e.pieces = pieces
	return nil
}

// pieceList accumulates pieces in ascending order, joining neighbours that
// share a function.
type pieceList []Piece

func (l *pieceList) push(p Piece) {
	if n := len(*l); n > 0 {
		last := &(*l)[n-1]
		if sameFunction(last.Fn, p.Fn) {
			if u, ok := last.Interval.Union(p.Interval); ok {
				last.Interval = u
				return
			}
		}
	}
	*l = append(*l, p)
}

func (e *Envelope) merge(a, b []Piece) ([]Piece, error) {
	out := make(pieceList, 0, len(a)+len(b))
	var ca, cb Piece
	haveA, haveB := false, false
	i, j := 0, 0
	for {
		if !haveA && i < len(a) {
			ca, haveA = a[i], true
			i++
		}
		if !haveB && j < len(b) {
			cb, haveB = b[j], true
			j++
		}
		if !haveA || !haveB {
			break
		}

		switch {
		case ca.Interval.Before(cb.Interval):
			out.push(ca)
			haveA = false
			continue
		case cb.Interval.Before(ca.Interval):
			out.push(cb)
			haveB = false
			continue
		}

		ov, ok := ca.Interval.Intersect(cb.Interval)
		if !ok {
			panic("unreachable: neither disjoint nor overlapping")
		}
		// At most one of the pieces starts before the overlap.
		if l, ok := ca.Interval.Below(ov.low); ok {
			out.push(Piece{Interval: l, Fn: ca.Fn})
		}
		if l, ok := cb.Interval.Below(ov.low); ok {
			out.push(Piece{Interval: l, Fn: cb.Fn})
		}
		resolved, err := e.resolve(ov, ca.Fn, cb.Fn)
		if err != nil {
			return nil, err
		}
		for _, p := range resolved {
			out.push(p)
		}
		// At most one of the pieces extends past the overlap; it stays
		// current for the next round.
		if r, ok := ca.Interval.Above(ov.high); ok {
			ca.Interval = r
		} else {
			haveA = false
		}
		if r, ok := cb.Interval.Above(ov.high); ok {
			cb.Interval = r
		} else {
			haveB = false
		}
	}
	if haveA {
		out.push(ca)
	}
	if haveB {
		out.push(cb)
	}
	for _, p := range a[i:] {
		out.push(p)
	}
	for _, p := range b[j:] {
		out.push(p)
	}
	return out, nil
}

// resolve computes the envelope of f and g on ov, where both are defined.
func (e *Envelope) resolve(ov Interval, f, g Function) ([]Piece, error) {
	if ov.IsPoint() {
		return []Piece{{Interval: ov, Fn: e.winner(f, g, ov.low.Value)}}, nil
	}

	xs, err := f.Intersect(g)
	if err != nil {
		return nil, err
	}
	lo, hi := ov.low.Value, ov.high.Value
	var breaks []float64
	addBreak := func(x float64) {
		if x > lo && x < hi {
			breaks = append(breaks, x)
		}
	}
	for _, x := range xs {
		switch x.Kind {
		case PointIntersection:
			addBreak(x.X)
		case SegmentIntersection:
			addBreak(x.Low.Value)
			addBreak(x.High.Value)
		}
	}
	slices.Sort(breaks)
	breaks = slices.Compact(breaks)

	var out pieceList
	start, prev := ov.low, lo
	for k := 0; k <= len(breaks); k++ {
		next, end := hi, ov.high
		if k < len(breaks) {
			next, end = breaks[k], Excl(breaks[k])
		}
		w := e.winner(f, g, probe(prev, next))
		out.push(Piece{Interval: Interval{low: start, high: end}, Fn: w})
		start, prev = Incl(next), next
	}
	return out, nil
}

// winner returns whichever of f and g the envelope follows at x. Ties go to
// f.
func (e *Envelope) winner(f, g Function, x float64) Function {
	fv, gv := f.Eval(x), g.Eval(x)
	switch {
	case math.IsNaN(fv):
		return g
	case math.IsNaN(gv):
		return f
	case e.kind == Upper && gv > fv:
		return g
	case e.kind == Lower && gv < fv:
		return g
	default:
		return f
	}
}

// FunctionAt returns the function the envelope follows at x. The second
// return value is false if x is outside of the envelope's domain.
func (e *Envelope) FunctionAt(x float64) (Function, bool) {
	i := sort.Search(len(e.pieces), func(k int) bool {
		return e.pieces[k].Interval.high.Value >= x
	})
	for ; i < len(e.pieces) && e.pieces[i].Interval.low.Value <= x; i++ {
		if e.pieces[i].Interval.Contains(x) {
			return e.pieces[i].Fn, true
		}
	}
	return nil, false
}

// Eval implements [Function].
func (e *Envelope) Eval(x float64) float64 {
	fn, ok := e.FunctionAt(x)
	if !ok {
		return math.NaN()
	}
	return fn.Eval(x)
}

// Domain implements [Function]. It is the union of the domains of all
// functions added to the envelope.
func (e *Envelope) Domain() Domain {
	var d Domain
	for _, p := range e.pieces {
		d.appendCanonical(p.Interval)
	}
	return d
}

// Derivative implements [Function]. It replaces every piece's function with
// its derivative, keeping the pieces' intervals. This is only meaningful if
// each function is differentiable on its piece.
func (e *Envelope) Derivative() Function {
	out := &Envelope{kind: e.kind, pieces: make([]Piece, len(e.pieces))}
	for i, p := range e.pieces {
		out.pieces[i] = Piece{Interval: p.Interval, Fn: p.Fn.Derivative()}
	}
	return out
}

// Limit implements [Function].
func (e *Envelope) Limit(x float64) float64 {
	if len(e.pieces) == 0 {
		return math.NaN()
	}
	switch {
	case math.IsInf(x, -1):
		if first := e.pieces[0]; math.IsInf(first.Interval.low.Value, -1) {
			return first.Fn.Limit(x)
		}
		return math.NaN()
	case math.IsInf(x, 1):
		if last := e.pieces[len(e.pieces)-1]; math.IsInf(last.Interval.high.Value, 1) {
			return last.Fn.Limit(x)
		}
		return math.NaN()
	}
	fn, ok := e.FunctionAt(x)
	if !ok {
		return math.NaN()
	}
	return fn.Limit(x)
}

// Intersect implements [Function], intersecting every piece's function
// with o and keeping the results that fall into the piece.
func (e *Envelope) Intersect(o Function) ([]Intersection, error) {
	var out []Intersection
	for _, p := range e.pieces {
		xs, err := p.Fn.Intersect(o)
		if err != nil {
			return nil, err
		}
		out = append(out, restrictIntersections(xs, p.Interval)...)
	}
	return out, nil
}

// Breakpoints returns the points at which the envelope switches from one
// piece to the next without a gap, in ascending order.
func (e *Envelope) Breakpoints() []float64 {
	var out []float64
	for k := 0; k+1 < len(e.pieces); k++ {
		a, b := e.pieces[k].Interval, e.pieces[k+1].Interval
		if a.high.Value == b.low.Value && !separated(a, b) {
			out = append(out, a.high.Value)
		}
	}
	return out
}

// Discontinuities returns the breakpoints at which the functions of the
// neighbouring pieces disagree in value.
func (e *Envelope) Discontinuities() []float64 {
	var out []float64
	for k := 0; k+1 < len(e.pieces); k++ {
		a, b := e.pieces[k], e.pieces[k+1]
		x := a.Interval.high.Value
		if x != b.Interval.low.Value || separated(a.Interval, b.Interval) {
			continue
		}
		if !approxEqual(valueNear(a.Fn, x), valueNear(b.Fn, x)) {
			out = append(out, x)
		}
	}
	return out
}

// valueNear returns f(x), or the limit at x if f isn't defined there.
func valueNear(f Function, x float64) float64 {
	if v := f.Eval(x); !math.IsNaN(v) {
		return v
	}
	return f.Limit(x)
}

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rootEpsilon*max(1, math.Abs(a), math.Abs(b))
}

func (e *Envelope) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v envelope{", e.kind)
	for i, p := range e.pieces {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%v: %v", p.Interval, p.Fn)
	}
	sb.WriteString("}")
	return sb.String()
}
