package stepsize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// Defaults for the shared line-search configuration.
const (
	// DefaultBacktrackStepSize is the multiplicative shrink factor applied
	// per rejected line-search trial.
	DefaultBacktrackStepSize = 0.5

	// DefaultSearchParameter is the sufficient-decrease strictness of the
	// Armijo–Goldstein condition.
	DefaultSearchParameter = 0.1

	// DefaultMaxTrials bounds the number of shrink trials per line search.
	DefaultMaxTrials = 50

	// DefaultMinStepSize is the floor below which a shrinking step size is
	// treated as line-search divergence.
	DefaultMinStepSize = 1e-20
)

// backtracking shrinks stepSize geometrically until the candidate iterate
// x − s·g satisfies the Armijo–Goldstein sufficient-decrease condition
//
//	f(x − s·g) ≤ f(x) − c·s·gradientNorm
//
// over the sample window [offset, offset+batchSize). The objective at the
// current iterate is evaluated exactly once. Each rejected trial multiplies
// the step size by factor, so the accepted step is stepSize·factorᵏ for the
// smallest k that satisfies the condition.
//
// The loop is bounded: after maxTrials rejected trials, or once the step size
// falls below minStep, backtracking returns ErrLineSearchDivergence together
// with the last (smallest) step size tried. An objective that never admits
// sufficient decrease, e.g. a plateau with a nonzero reported gradient norm,
// surfaces as this error instead of spinning.
func backtracking(f function.Decomposable, stepSize float64, iterate, gradient *mat.Dense, gradientNorm float64,
	offset, batchSize int, factor, search float64, maxTrials int, minStep float64) (float64, error) {

	objective := f.Evaluate(iterate, offset, batchSize)

	rows, cols := iterate.Dims()
	update := mat.NewDense(rows, cols, nil)
	candidate := func(s float64) float64 {
		update.Scale(s, gradient)
		update.Sub(iterate, update)
		return f.Evaluate(update, offset, batchSize)
	}

	objectiveUpdate := candidate(stepSize)
	for trial := 0; objectiveUpdate > objective-search*stepSize*gradientNorm; trial++ {
		if trial >= maxTrials || stepSize < minStep {
			return stepSize, fmt.Errorf("stepsize: no sufficient decrease after %d trials (step size %g): %w",
				trial, stepSize, ErrLineSearchDivergence)
		}

		stepSize *= factor
		objectiveUpdate = candidate(stepSize)
	}

	return stepSize, nil
}
