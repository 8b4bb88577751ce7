// Package realfn provides domains and envelopes of functions of one real
// variable, together with the polynomial root finding they rely on.
//
// # Intervals and domains
//
// An [Interval] is a connected subset of the real line, delimited by two
// [Bound] values that each either include or exclude their endpoint. Empty
// intervals cannot be represented: constructors return
// [ErrDegenerateInterval] instead, and operations that may produce an empty
// result, such as [Interval.Intersect], report so with a boolean.
//
// Wherever two bounds with the same value are compared, exclusion wins over
// inclusion. The intersection of [0, 1] and (1, 2] is empty, while the union
// of [0, 1) and [1, 2] is [0, 2].
//
// A [Domain] is a union of intervals in canonical form: sorted, pairwise
// disjoint, and with no two neighbours that could be joined. Domains support
// insertion ([Domain.Add]), [Domain.Union] and [Domain.Intersect], each of
// which maintains the canonical form in linear time.
//
// # Functions
//
// [Function] describes functions that can be evaluated, report their domain
// and derivative, intersect with other functions, and report limits at
// infinity. This package provides two implementations: [Polynomial] and
// [Envelope].
//
// Intersections are reported as a slice of [Intersection] values, which are
// either single points or segments on which both functions coincide.
//
// # Root finding
//
// [Polynomial.Roots] computes the real roots of polynomials up to degree four
// in closed form: the quadratic formula, Cardano's formula and its
// trigonometric variant for cubics, and Ferrari's method for quartics. For
// higher degrees, [Polynomial.Solve] falls back to [SolveBracketed], which
// splits the real line into monotonic branches at the local extrema and runs
// Newton's method in each branch that contains a solution. Newton steps that
// would leave their branch are replaced by the [ITP method], so every root is
// found exactly once.
//
// # Envelopes
//
// The upper (lower) [Envelope] of a set of functions is their pointwise
// maximum (minimum) over the union of their domains. It is represented as a
// sorted list of pieces, each an interval and the function that the envelope
// follows on it.
//
// [BuildEnvelope] splits its functions in halves, computes the envelopes of
// both halves, and merges them in a single sweep over both piece lists. At
// each overlap, the crossings of the two functions divide the overlap into
// parts, and evaluating both functions strictly inside each part decides
// which of them the envelope follows there.
//
// # Literature
//
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [Cubic equation], trigonometric and hyperbolic solutions
//   - [Quartic function], Ferrari's solution
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [Cubic equation]: https://en.wikipedia.org/wiki/Cubic_equation#Trigonometric_and_hyperbolic_solutions
// [Quartic function]: https://en.wikipedia.org/wiki/Quartic_function#Ferrari's_solution
package realfn
