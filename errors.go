package realfn

import "errors"

var (
	// ErrDegenerateInterval is returned when constructing an interval that
	// would contain no points, such as (1, 1] or an interval with a NaN bound.
	ErrDegenerateInterval = errors.New("degenerate interval")

	// ErrInvalidInterval is returned by [Domain.Add] for values that aren't
	// valid intervals, such as the zero value of [Interval].
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrKindMismatch is returned when combining operands of different
	// representations, such as merging an upper with a lower envelope.
	ErrKindMismatch = errors.New("operand kind mismatch")

	// ErrUnsupportedDegree is returned when closed-form roots are requested
	// for a polynomial of degree five or higher.
	ErrUnsupportedDegree = errors.New("unsupported polynomial degree")

	// ErrNoConvergence is returned when an iterative solver exceeds its
	// iteration cap without reaching the requested tolerance.
	ErrNoConvergence = errors.New("solver did not converge")
)
