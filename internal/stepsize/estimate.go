package stepsize

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// windowEstimate is the result of one pass over the backtracking window.
type windowEstimate struct {
	// variance is the accumulated dispersion proxy
	// Σⱼ ‖gⱼ − meanⱼ₋₁‖₂ · ‖gⱼ − meanⱼ‖₂ over the window.
	variance float64

	// prevSum is the sum of per-sample gradients evaluated at the previous
	// iterate, used for the curvature estimate.
	prevSum *mat.Dense
}

// estimateWindow walks the sample window [offset, offset+batchSize) one sample
// at a time. On return, gradient holds the sum of the per-sample gradients at
// the current iterate; the running mean of those gradients drives the
// dispersion accumulator. The previous iterate's per-sample gradients are
// summed in lockstep.
//
// The running mean after k samples is mean_{k-1} + (g_k − mean_{k-1})/k; the
// dispersion term for sample k multiplies the sample's distance to the old
// mean by its distance to the new mean. The exact formula matters: the decay
// computation and the driver's batch-growth test both consume it unscaled.
func estimateWindow(f function.Decomposable, iterate, iteratePrev, gradient *mat.Dense, offset, batchSize int) windowEstimate {
	rows, cols := iterate.Dims()

	sample := mat.NewDense(rows, cols, nil)
	samplePrev := mat.NewDense(rows, cols, nil)
	prevSum := mat.NewDense(rows, cols, nil)

	f.Gradient(iterate, offset, gradient, 1)
	f.Gradient(iteratePrev, offset, prevSum, 1)

	meanOld := mat.NewDense(rows, cols, nil)
	meanOld.Copy(gradient)
	meanNew := mat.NewDense(rows, cols, nil)
	diffOld := mat.NewDense(rows, cols, nil)
	diffNew := mat.NewDense(rows, cols, nil)

	var variance float64
	for j := 1; j < batchSize; j++ {
		f.Gradient(iterate, offset+j, sample, 1)

		// meanNew = meanOld + (sample − meanOld)/j
		diffOld.Sub(sample, meanOld)
		meanNew.Scale(1/float64(j), diffOld)
		meanNew.Add(meanOld, meanNew)

		diffNew.Sub(sample, meanNew)
		variance += mat.Norm(diffOld, 2) * mat.Norm(diffNew, 2)

		meanOld.Copy(meanNew)
		gradient.Add(gradient, sample)

		f.Gradient(iteratePrev, offset+j, samplePrev, 1)
		prevSum.Add(prevSum, samplePrev)
	}

	return windowEstimate{variance: variance, prevSum: prevSum}
}
