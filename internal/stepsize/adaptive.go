package stepsize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// Config holds the shared line-search configuration for the step-size
// policies. Zero values are replaced with defaults by the constructors.
//
// BacktrackStepSize and SearchParameter are expected in (0, 1); the policies
// do not validate them, matching the construction contract where hyper
// parameter choice is the caller's responsibility.
type Config struct {
	BacktrackStepSize float64 // Shrink factor per line-search trial (default 0.5).
	SearchParameter   float64 // Sufficient-decrease strictness (default 0.1).
	MaxTrials         int     // Line-search trial budget (default 50).
	MinStepSize       float64 // Step-size floor for divergence detection (default 1e-20).
}

func (c Config) withDefaults() Config {
	if c.BacktrackStepSize == 0 {
		c.BacktrackStepSize = DefaultBacktrackStepSize
	}
	if c.SearchParameter == 0 {
		c.SearchParameter = DefaultSearchParameter
	}
	if c.MaxTrials == 0 {
		c.MaxTrials = DefaultMaxTrials
	}
	if c.MinStepSize == 0 {
		c.MinStepSize = DefaultMinStepSize
	}
	return c
}

// AdaptiveStepsize adapts the step size from curvature and gradient-noise
// estimates, the non-monotonic scheme of De et al., "Big Batch SGD: Automated
// Inference using Adaptive Batch Sizes" (https://arxiv.org/abs/1610.05792).
//
// Each Update performs, in order: a backtracking line search on the incoming
// step size, the descent step x ← x − s·g, a single pass over the
// backtracking window estimating the averaged gradient and its dispersion, a
// curvature estimate along the path from the previous iterate, a decay
// proposal blended into the step size in proportion to the batch fraction of
// the dataset, and a final line-search validation of the smoothed step size.
//
// The policy keeps the previous iterate as private state, so an instance
// serves exactly one optimization run and must not be shared across
// goroutines.
type AdaptiveStepsize struct {
	config Config

	// iteratePrev is nil until the first Update, then always a snapshot of
	// the iterate from the previous call. The nil marker stands in for the
	// zero matrix the first curvature estimate measures against.
	iteratePrev *mat.Dense
}

// NewAdaptiveStepsize constructs the policy, filling zero config fields with
// defaults.
func NewAdaptiveStepsize(config Config) *AdaptiveStepsize {
	return &AdaptiveStepsize{config: config.withDefaults()}
}

// BacktrackStepSize returns the line-search shrink factor.
func (a *AdaptiveStepsize) BacktrackStepSize() float64 { return a.config.BacktrackStepSize }

// SetBacktrackStepSize replaces the line-search shrink factor.
func (a *AdaptiveStepsize) SetBacktrackStepSize(v float64) { a.config.BacktrackStepSize = v }

// SearchParameter returns the sufficient-decrease strictness.
func (a *AdaptiveStepsize) SearchParameter() float64 { return a.config.SearchParameter }

// SetSearchParameter replaces the sufficient-decrease strictness.
func (a *AdaptiveStepsize) SetSearchParameter(v float64) { a.config.SearchParameter = v }

// Update performs one adaptive step-size iteration.
//
// The iterate and gradient matrices are mutated in place: on success the
// iterate holds x − s·g for the accepted pre-search step size s and the
// gradient holds the averaged gradient over the backtracking window. The
// returned Step carries the smoothed step size, the squared norm of the
// averaged gradient, and the window's dispersion sum.
//
// Errors leave both matrices in a defined state: failures detected before the
// descent step keep them untouched, and a failed validation line search keeps
// the descent result in the iterate with the averaged window gradient in the
// gradient matrix.
//
// Degenerate numerics resolve by substitution, never by NaN propagation: a
// non-finite curvature ratio counts as zero curvature, and zero curvature
// skips the decay entirely for this round. A partial batch of size 1 has no
// dispersion information, so its decay is likewise defined as zero. The reset
// flag is accepted but currently has no effect.
func (a *AdaptiveStepsize) Update(f function.Decomposable, step Step, iterate, gradient *mat.Dense,
	batch Batch, reset bool) (Step, error) {

	if batch.BacktrackingSize < 1 {
		return step, fmt.Errorf("stepsize: backtracking batch size %d: %w", batch.BacktrackingSize, ErrInvalidBatchSize)
	}
	rows, cols := iterate.Dims()
	if gr, gc := gradient.Dims(); gr != rows || gc != cols {
		return step, fmt.Errorf("stepsize: gradient is %d×%d, iterate is %d×%d: %w",
			gr, gc, rows, cols, ErrDimensionMismatch)
	}
	if a.iteratePrev == nil {
		a.iteratePrev = mat.NewDense(rows, cols, nil)
	} else if pr, pc := a.iteratePrev.Dims(); pr != rows || pc != cols {
		return step, fmt.Errorf("stepsize: iterate is %d×%d, previous iterate is %d×%d: %w",
			rows, cols, pr, pc, ErrDimensionMismatch)
	}

	s, err := backtracking(f, step.StepSize, iterate, gradient, step.GradientNorm,
		batch.Offset, batch.BacktrackingSize,
		a.config.BacktrackStepSize, a.config.SearchParameter, a.config.MaxTrials, a.config.MinStepSize)
	if err != nil {
		return step, err
	}
	step.StepSize = s

	// iterate ← iterate − s·gradient
	scaled := mat.NewDense(rows, cols, nil)
	scaled.Scale(step.StepSize, gradient)
	iterate.Sub(iterate, scaled)

	est := estimateWindow(f, iterate, a.iteratePrev, gradient, batch.Offset, batch.BacktrackingSize)
	step.SampleVariance = est.variance

	avg := mat.NewDense(rows, cols, nil)
	avg.Scale(1/float64(batch.BacktrackingSize), gradient)
	norm := mat.Norm(avg, 2)
	step.GradientNorm = norm * norm

	v := curvature(iterate, a.iteratePrev, gradient, est.prevSum)

	a.iteratePrev.Copy(iterate)

	var decay float64
	if step.GradientNorm != 0 && step.SampleVariance != 0 && batch.Size != 0 && v != 0 {
		switch {
		case batch.Size >= f.NumFunctions():
			// Full batch: pure curvature step.
			decay = 1 / v
		case batch.Size > 1:
			decay = (1 - (step.SampleVariance/float64(batch.Size-1))/(float64(batch.Size)*step.GradientNorm)) / v
		}
		// A partial batch of one sample would divide by batchSize−1;
		// its decay stays 0.
	}

	// Step-size smoothing, weighted by the batch fraction of the dataset.
	fraction := float64(batch.Size) / float64(f.NumFunctions())
	step.StepSize = step.StepSize*(1-fraction) + decay*fraction

	s, err = backtracking(f, step.StepSize, iterate, gradient, step.GradientNorm,
		batch.Offset, batch.BacktrackingSize,
		a.config.BacktrackStepSize, a.config.SearchParameter, a.config.MaxTrials, a.config.MinStepSize)

	// Hand the averaged gradient back to the caller even when the validation
	// search fails, so the matrices never expose the raw window sum.
	gradient.Copy(avg)
	if err != nil {
		return step, err
	}
	step.StepSize = s

	return step, nil
}

// curvature estimates the second-order behavior along the path between
// consecutive iterates:
//
//	v = trace((x − x₋)ᵀ(g − g₋)) / ‖x − x₋‖₂²
//
// where g and g₋ are the summed window gradients at the current and previous
// iterates. trace(AᵀB) over equal-shaped dense matrices is the Frobenius
// inner product of their entries, computed here as a dot product over the raw
// data of two freshly-allocated (hence contiguous) differences. A non-finite
// ratio resolves to 0, which the decay computation reads as "no decay this
// round".
func curvature(iterate, iteratePrev, gradient, gradientPrev *mat.Dense) float64 {
	rows, cols := iterate.Dims()
	dx := mat.NewDense(rows, cols, nil)
	dx.Sub(iterate, iteratePrev)
	dg := mat.NewDense(rows, cols, nil)
	dg.Sub(gradient, gradientPrev)

	num := floats.Dot(dx.RawMatrix().Data, dg.RawMatrix().Data)
	norm := mat.Norm(dx, 2)

	v := num / (norm * norm)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
