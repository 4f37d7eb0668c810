package stepsize

import "errors"

// Common errors.
var (
	// ErrDimensionMismatch reports an iterate whose shape disagrees with the
	// gradient or with the policy's tracked previous iterate.
	ErrDimensionMismatch = errors.New("iterate dimension mismatch")

	// ErrLineSearchDivergence reports a backtracking line search that failed
	// to satisfy sufficient decrease before exhausting its trial budget or
	// underflowing the step-size floor.
	ErrLineSearchDivergence = errors.New("line search failed to find sufficient decrease")

	// ErrInvalidBatchSize reports a backtracking batch size below 1.
	ErrInvalidBatchSize = errors.New("invalid backtracking batch size")
)
