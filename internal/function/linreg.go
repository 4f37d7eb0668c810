package function

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression is a decomposable least-squares objective over a design
// matrix with one column per sample:
//
//	f_i(x) = (aᵢᵀx − yᵢ)² / 2
//
// The iterate is a d×1 matrix of regression coefficients. Samples are visited
// through an index permutation so the objective is shuffleable without moving
// the underlying data.
type LinearRegression struct {
	data      *mat.Dense // d×n, column i is sample i
	responses []float64
	order     []int
}

// NewLinearRegression builds the objective from a d×n design matrix and n
// responses. The initial sample order is the column order of the data.
func NewLinearRegression(data *mat.Dense, responses []float64) (*LinearRegression, error) {
	_, n := data.Dims()
	if len(responses) != n {
		return nil, fmt.Errorf("function: %d responses for %d samples", len(responses), n)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return &LinearRegression{
		data:      data,
		responses: responses,
		order:     order,
	}, nil
}

// Evaluate returns the least-squares objective over the sample window.
func (lr *LinearRegression) Evaluate(iterate *mat.Dense, offset, batchSize int) float64 {
	d, _ := lr.data.Dims()
	x := iterate.RawMatrix().Data
	col := make([]float64, d)

	var objective float64
	for j := 0; j < batchSize; j++ {
		i := lr.order[offset+j]
		mat.Col(col, i, lr.data)
		r := floats.Dot(col, x) - lr.responses[i]
		objective += r * r / 2
	}
	return objective
}

// Gradient writes the summed least-squares gradient over the sample window,
// Σ aᵢ(aᵢᵀx − yᵢ), into gradient.
func (lr *LinearRegression) Gradient(iterate *mat.Dense, offset int, gradient *mat.Dense, batchSize int) {
	d, _ := lr.data.Dims()
	x := iterate.RawMatrix().Data
	col := make([]float64, d)

	gradient.Zero()
	g := gradient.RawMatrix().Data
	for j := 0; j < batchSize; j++ {
		i := lr.order[offset+j]
		mat.Col(col, i, lr.data)
		r := floats.Dot(col, x) - lr.responses[i]
		floats.AddScaled(g, r, col)
	}
}

// NumFunctions returns the number of samples.
func (lr *LinearRegression) NumFunctions() int {
	return len(lr.order)
}

// Shuffle re-orders the sample visitation permutation.
//
//nolint:gosec // math/rand is appropriate for sample shuffling (not security-critical)
func (lr *LinearRegression) Shuffle() {
	rand.Shuffle(len(lr.order), func(i, j int) {
		lr.order[i], lr.order[j] = lr.order[j], lr.order[i]
	})
}
