package function

import "gonum.org/v1/gonum/mat"

// Sphere is the decomposable sphere objective: every sample contributes the
// same quadratic term xᵀx, so the full objective is n·xᵀx with gradient 2n·x.
//
// The per-sample gradient is identical for every sample offset, which makes
// the objective fully deterministic: the sample variance of its gradients is
// exactly zero. That property makes Sphere the standard smoke test for
// step-size policies.
type Sphere struct {
	numFunctions int
}

// NewSphere returns a sphere objective decomposed into numFunctions identical
// per-sample terms.
func NewSphere(numFunctions int) *Sphere {
	return &Sphere{numFunctions: numFunctions}
}

// Evaluate returns batchSize·xᵀx, the objective over the sample window.
func (s *Sphere) Evaluate(iterate *mat.Dense, offset, batchSize int) float64 {
	n := mat.Norm(iterate, 2)
	return float64(batchSize) * n * n
}

// Gradient writes 2·batchSize·x, the summed per-sample gradient over the
// window.
func (s *Sphere) Gradient(iterate *mat.Dense, offset int, gradient *mat.Dense, batchSize int) {
	gradient.Scale(2*float64(batchSize), iterate)
}

// NumFunctions returns the number of per-sample terms.
func (s *Sphere) NumFunctions() int {
	return s.numFunctions
}
