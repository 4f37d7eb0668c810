package sgd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// gradientStats accumulates per-sample gradient statistics over a growing
// sample window: the raw gradient sum, an incremental running mean, and the
// dispersion proxy Σ ‖gₖ − meanₖ₋₁‖₂·‖gₖ − meanₖ‖₂. The stream survives
// batch growth, so extending the window continues the same recurrence the
// step-size policies use over their backtracking windows.
type gradientStats struct {
	sum      *mat.Dense
	count    int
	variance float64

	meanOld *mat.Dense
	meanNew *mat.Dense
	diffOld *mat.Dense
	diffNew *mat.Dense
	sample  *mat.Dense
}

func newGradientStats(rows, cols int) *gradientStats {
	return &gradientStats{
		sum:     mat.NewDense(rows, cols, nil),
		meanOld: mat.NewDense(rows, cols, nil),
		meanNew: mat.NewDense(rows, cols, nil),
		diffOld: mat.NewDense(rows, cols, nil),
		diffNew: mat.NewDense(rows, cols, nil),
		sample:  mat.NewDense(rows, cols, nil),
	}
}

// accumulate folds the per-sample gradients of iterate over samples
// [from, to) into the running statistics.
func (s *gradientStats) accumulate(f function.Decomposable, iterate *mat.Dense, from, to int) {
	for i := from; i < to; i++ {
		f.Gradient(iterate, i, s.sample, 1)

		if s.count == 0 {
			s.sum.Copy(s.sample)
			s.meanOld.Copy(s.sample)
			s.count = 1
			continue
		}

		// meanNew = meanOld + (sample − meanOld)/count
		s.diffOld.Sub(s.sample, s.meanOld)
		s.meanNew.Scale(1/float64(s.count), s.diffOld)
		s.meanNew.Add(s.meanOld, s.meanNew)

		s.diffNew.Sub(s.sample, s.meanNew)
		s.variance += mat.Norm(s.diffOld, 2) * mat.Norm(s.diffNew, 2)

		s.meanOld.Copy(s.meanNew)
		s.sum.Add(s.sum, s.sample)
		s.count++
	}
}

// meanNormSquared returns ‖sum/count‖₂², the squared norm of the averaged
// gradient seen so far.
func (s *gradientStats) meanNormSquared() float64 {
	norm := mat.Norm(s.sum, 2) / float64(s.count)
	return norm * norm
}
