// Package sgd implements the big-batch stochastic gradient descent driver:
// the iteration loop that owns the iterate, grows the batch when gradient
// noise drowns the descent signal, and delegates step-size control to a
// pluggable policy.
package sgd

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
	"github.com/zeta1999/ensmallen/internal/stepsize"
)

// Defaults applied by Optimize for zero-valued fields.
const (
	DefaultStepSize      = 0.01
	DefaultBatchSize     = 10
	DefaultGrowthFactor  = 1.1
	DefaultMaxIterations = 5000
	DefaultTolerance     = 1e-5
)

// ErrDiverged reports a non-finite overall objective during optimization.
var ErrDiverged = errors.New("sgd: objective diverged")

// BigBatch is the big-batch SGD optimizer driver. At each iteration it
// accumulates per-sample gradients over the current batch, grows the batch
// while the squared norm of the averaged gradient fails to dominate the
// noise estimate, and then hands the batch to the step-size policy for the
// actual descent step and step-size adaptation.
//
// A driver instance supports at most one Optimize call at a time: the policy
// it wraps carries per-run state.
type BigBatch struct {
	StepSize      float64 // Initial step size (default 0.01).
	BatchSize     int     // Initial batch size, grown adaptively (default 10, clamped to the sample count).
	GrowthFactor  float64 // Multiplicative batch growth per failed noise test (default 1.1).
	MaxIterations int     // Iteration budget (default 5000).
	Tolerance     float64 // Epoch-to-epoch objective change below which the run converged (default 1e-5).
	Shuffle       bool    // Re-order samples at each epoch boundary, if the objective supports it.

	// Policy controls the step size. Nil selects AdaptiveStepsize with
	// default configuration.
	Policy stepsize.Policy

	// Report, when non-nil, is invoked after every iteration with the
	// objective over the iteration's batch window.
	Report func(iteration int, objective, stepSize float64, batchSize int)
}

// Result summarizes an optimization run.
type Result struct {
	Objective  float64 // Overall objective at the final iterate.
	Iterations int     // Iterations performed.
	Converged  bool    // Whether the tolerance criterion was met.
}

// Optimize minimizes f starting from iterate, which is updated in place.
// Each epoch sweeps the samples in windows of the current batch size; when
// the sample count is not a multiple of the batch size, the final window of
// the epoch shrinks to the remainder.
//
// The run stops when the overall objective changes by less than Tolerance
// between consecutive epochs, or after MaxIterations. A non-finite overall
// objective stops the run with ErrDiverged; policy errors (line-search
// divergence, shape mismatches) are returned as-is with the partially
// optimized iterate left in place.
func (b *BigBatch) Optimize(f function.Decomposable, iterate *mat.Dense) (Result, error) {
	n := f.NumFunctions()
	if n < 1 {
		return Result{}, fmt.Errorf("sgd: objective has %d samples", n)
	}

	stepSize := b.StepSize
	if stepSize == 0 {
		stepSize = DefaultStepSize
	}
	batchSize := b.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > n {
		batchSize = n
	}
	growth := b.GrowthFactor
	if growth == 0 {
		growth = DefaultGrowthFactor
	}
	maxIterations := b.MaxIterations
	if maxIterations == 0 {
		maxIterations = DefaultMaxIterations
	}
	tolerance := b.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	policy := b.Policy
	if policy == nil {
		policy = stepsize.NewAdaptiveStepsize(stepsize.Config{})
	}

	shuffler, canShuffle := f.(function.Shuffler)
	if b.Shuffle && canShuffle {
		shuffler.Shuffle()
	}

	rows, cols := iterate.Dims()
	gradient := mat.NewDense(rows, cols, nil)
	step := stepsize.Step{StepSize: stepSize}

	lastObjective := f.Evaluate(iterate, 0, n)
	offset := 0

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if offset >= n {
			// Epoch boundary.
			objective := f.Evaluate(iterate, 0, n)
			if math.IsNaN(objective) || math.IsInf(objective, 0) {
				return Result{Objective: objective, Iterations: iteration - 1}, ErrDiverged
			}
			if math.Abs(lastObjective-objective) < tolerance {
				return Result{Objective: objective, Iterations: iteration - 1, Converged: true}, nil
			}
			lastObjective = objective
			offset = 0
			if b.Shuffle && canShuffle {
				shuffler.Shuffle()
			}
		}

		// The trailing window of an epoch may hold fewer samples than the
		// batch size; it is processed at its reduced size, not skipped.
		size := batchSize
		if size > n-offset {
			size = n - offset
		}

		stats := newGradientStats(rows, cols)
		stats.accumulate(f, iterate, offset, offset+size)

		// Grow the batch while gradient noise drowns the signal:
		// ‖ḡ‖₂² ≤ V / (B(B−1)). A single-sample batch carries no noise
		// estimate and never grows.
		grown := false
		for size >= 2 && offset+size < n {
			if stats.meanNormSquared() > stats.variance/float64(size*(size-1)) {
				break
			}
			next := int(math.Ceil(growth * float64(size)))
			if next <= size {
				next = size + 1
			}
			if next > n-offset {
				next = n - offset
			}
			if next == size {
				break
			}
			stats.accumulate(f, iterate, offset+size, offset+next)
			size = next
			grown = true
		}
		if grown {
			// Growth is permanent: later windows start from the larger batch.
			batchSize = size
		}

		gradient.Scale(1/float64(size), stats.sum)
		norm := mat.Norm(gradient, 2)
		step.GradientNorm = norm * norm
		step.SampleVariance = stats.variance

		batch := stepsize.Batch{Offset: offset, Size: size, BacktrackingSize: size}
		var err error
		step, err = policy.Update(f, step, iterate, gradient, batch, grown)
		if err != nil {
			return Result{Objective: f.Evaluate(iterate, 0, n), Iterations: iteration}, err
		}

		if b.Report != nil {
			b.Report(iteration, f.Evaluate(iterate, offset, size), step.StepSize, size)
		}

		offset += size
	}

	return Result{Objective: f.Evaluate(iterate, 0, n), Iterations: maxIterations}, nil
}
