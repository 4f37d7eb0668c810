package stepsize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// BarzilaiBorwein proposes the Barzilai–Borwein step length
//
//	s = ‖x − x₋‖₂² / trace((x − x₋)ᵀ(g − g₋))
//
// the reciprocal of the same curvature estimate AdaptiveStepsize uses, with
// no variance-based shrink and no smoothing. A non-finite or non-positive
// curvature keeps the current step size instead. The proposal is validated
// by the same bounded backtracking line search, so the step handed back to
// the driver always satisfies sufficient decrease.
//
// The policy recomputes GradientNorm and SampleVariance over the backtracking
// window exactly as AdaptiveStepsize does, so the driver's batch-growth test
// behaves identically under either policy.
//
// Like AdaptiveStepsize, an instance serves one optimization run and is not
// safe for concurrent use.
type BarzilaiBorwein struct {
	config Config

	iteratePrev *mat.Dense
}

// NewBarzilaiBorwein constructs the policy, filling zero config fields with
// defaults.
func NewBarzilaiBorwein(config Config) *BarzilaiBorwein {
	return &BarzilaiBorwein{config: config.withDefaults()}
}

// BacktrackStepSize returns the line-search shrink factor.
func (b *BarzilaiBorwein) BacktrackStepSize() float64 { return b.config.BacktrackStepSize }

// SetBacktrackStepSize replaces the line-search shrink factor.
func (b *BarzilaiBorwein) SetBacktrackStepSize(v float64) { b.config.BacktrackStepSize = v }

// SearchParameter returns the sufficient-decrease strictness.
func (b *BarzilaiBorwein) SearchParameter() float64 { return b.config.SearchParameter }

// SetSearchParameter replaces the sufficient-decrease strictness.
func (b *BarzilaiBorwein) SetSearchParameter(v float64) { b.config.SearchParameter = v }

// Update performs one Barzilai–Borwein iteration. The reset flag is accepted
// but currently has no effect. Matrices follow the same error-state contract
// as AdaptiveStepsize.Update: untouched before the descent step, and the
// descent result plus averaged window gradient after a failed validation
// search.
func (b *BarzilaiBorwein) Update(f function.Decomposable, step Step, iterate, gradient *mat.Dense,
	batch Batch, reset bool) (Step, error) {

	if batch.BacktrackingSize < 1 {
		return step, fmt.Errorf("stepsize: backtracking batch size %d: %w", batch.BacktrackingSize, ErrInvalidBatchSize)
	}
	rows, cols := iterate.Dims()
	if gr, gc := gradient.Dims(); gr != rows || gc != cols {
		return step, fmt.Errorf("stepsize: gradient is %d×%d, iterate is %d×%d: %w",
			gr, gc, rows, cols, ErrDimensionMismatch)
	}
	if b.iteratePrev == nil {
		b.iteratePrev = mat.NewDense(rows, cols, nil)
	} else if pr, pc := b.iteratePrev.Dims(); pr != rows || pc != cols {
		return step, fmt.Errorf("stepsize: iterate is %d×%d, previous iterate is %d×%d: %w",
			rows, cols, pr, pc, ErrDimensionMismatch)
	}

	s, err := backtracking(f, step.StepSize, iterate, gradient, step.GradientNorm,
		batch.Offset, batch.BacktrackingSize,
		b.config.BacktrackStepSize, b.config.SearchParameter, b.config.MaxTrials, b.config.MinStepSize)
	if err != nil {
		return step, err
	}
	step.StepSize = s

	scaled := mat.NewDense(rows, cols, nil)
	scaled.Scale(step.StepSize, gradient)
	iterate.Sub(iterate, scaled)

	est := estimateWindow(f, iterate, b.iteratePrev, gradient, batch.Offset, batch.BacktrackingSize)
	step.SampleVariance = est.variance

	avg := mat.NewDense(rows, cols, nil)
	avg.Scale(1/float64(batch.BacktrackingSize), gradient)
	norm := mat.Norm(avg, 2)
	step.GradientNorm = norm * norm

	if v := curvature(iterate, b.iteratePrev, gradient, est.prevSum); v > 0 {
		step.StepSize = 1 / v
	}

	b.iteratePrev.Copy(iterate)

	s, err = backtracking(f, step.StepSize, iterate, gradient, step.GradientNorm,
		batch.Offset, batch.BacktrackingSize,
		b.config.BacktrackStepSize, b.config.SearchParameter, b.config.MaxTrials, b.config.MinStepSize)

	gradient.Copy(avg)
	if err != nil {
		return step, err
	}
	step.StepSize = s

	return step, nil
}
