package function_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

func TestSphere(t *testing.T) {
	f := function.NewSphere(5)
	assert.Equal(t, 5, f.NumFunctions())

	x := mat.NewDense(2, 1, []float64{3, 4})

	// Each sample contributes xᵀx = 25.
	assert.InDelta(t, 25.0, f.Evaluate(x, 0, 1), 1e-12)
	assert.InDelta(t, 75.0, f.Evaluate(x, 1, 3), 1e-12)

	g := mat.NewDense(2, 1, nil)
	f.Gradient(x, 0, g, 1)
	assert.InDelta(t, 6.0, g.At(0, 0), 1e-12)
	assert.InDelta(t, 8.0, g.At(1, 0), 1e-12)

	// The window gradient is the per-sample sum.
	f.Gradient(x, 0, g, 2)
	assert.InDelta(t, 12.0, g.At(0, 0), 1e-12)
	assert.InDelta(t, 16.0, g.At(1, 0), 1e-12)
}

func TestLinearRegression(t *testing.T) {
	// Samples a₁ = (1,0), a₂ = (0,1), a₃ = (1,1) with responses 1, 2, 3.
	data := mat.NewDense(2, 3, []float64{
		1, 0, 1,
		0, 1, 1,
	})
	f, err := function.NewLinearRegression(data, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, f.NumFunctions())

	// At x = (1,1) the residuals are 0, −1, −1.
	x := mat.NewDense(2, 1, []float64{1, 1})
	assert.InDelta(t, 1.0, f.Evaluate(x, 0, 3), 1e-12)
	assert.InDelta(t, 1.0, f.Evaluate(x, 1, 2), 1e-12)

	// Full gradient: 0·a₁ − a₂ − a₃ = (−1, −2).
	g := mat.NewDense(2, 1, nil)
	f.Gradient(x, 0, g, 3)
	assert.InDelta(t, -1.0, g.At(0, 0), 1e-12)
	assert.InDelta(t, -2.0, g.At(1, 0), 1e-12)

	// A zero-residual sample has a zero gradient.
	f.Gradient(x, 0, g, 1)
	assert.InDelta(t, 0.0, g.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, g.At(1, 0), 1e-12)
}

func TestLinearRegressionShuffleKeepsObjective(t *testing.T) {
	data := mat.NewDense(2, 3, []float64{
		1, 0, 1,
		0, 1, 1,
	})
	f, err := function.NewLinearRegression(data, []float64{1, 2, 3})
	require.NoError(t, err)

	x := mat.NewDense(2, 1, []float64{0.5, -0.5})
	before := f.Evaluate(x, 0, 3)

	// Shuffling permutes visitation order; the full-batch objective is
	// permutation invariant.
	f.Shuffle()
	assert.InDelta(t, before, f.Evaluate(x, 0, 3), 1e-12)
	assert.Equal(t, 3, f.NumFunctions())
}

func TestLinearRegressionResponseMismatch(t *testing.T) {
	data := mat.NewDense(2, 3, nil)
	_, err := function.NewLinearRegression(data, []float64{1, 2})
	assert.Error(t, err)
}
