package stepsize

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// flat has a constant objective but reports a nonzero gradient, so no step
// size ever satisfies sufficient decrease.
type flat struct{}

func (flat) Evaluate(*mat.Dense, int, int) float64 { return 1 }

func (flat) Gradient(iterate *mat.Dense, offset int, gradient *mat.Dense, batchSize int) {
	rows, cols := gradient.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			gradient.Set(i, j, 1)
		}
	}
}

func (flat) NumFunctions() int { return 4 }

// TestBacktrackingGeometricShrink checks that the accepted step size is the
// input shrunk by exactly backtrackFactor^k, and that it satisfies the
// sufficient-decrease condition.
//
// On the sphere with x = (10, 10), gradient (20, 20) and squared gradient
// norm 800, the condition 2(10−20s)² ≤ 200 − 80s first holds at
// s = 10·0.5⁴ = 0.625.
func TestBacktrackingGeometricShrink(t *testing.T) {
	f := function.NewSphere(1)
	iterate := mat.NewDense(2, 1, []float64{10, 10})
	gradient := mat.NewDense(2, 1, []float64{20, 20})

	s, err := backtracking(f, 10, iterate, gradient, 800, 0, 1, 0.5, 0.1, 50, 1e-20)
	if err != nil {
		t.Fatalf("backtracking: %v", err)
	}
	if s != 0.625 {
		t.Errorf("accepted step size: got %g, want 0.625", s)
	}

	// Sufficient decrease at the accepted step.
	update := mat.NewDense(2, 1, nil)
	update.Scale(s, gradient)
	update.Sub(iterate, update)
	lhs := f.Evaluate(update, 0, 1)
	rhs := f.Evaluate(iterate, 0, 1) - 0.1*s*800
	if lhs > rhs {
		t.Errorf("sufficient decrease violated: %g > %g", lhs, rhs)
	}
}

// TestBacktrackingAcceptsWithoutShrink checks that a step already satisfying
// the condition is returned untouched.
func TestBacktrackingAcceptsWithoutShrink(t *testing.T) {
	f := function.NewSphere(1)
	iterate := mat.NewDense(2, 1, []float64{10, 10})
	gradient := mat.NewDense(2, 1, []float64{20, 20})

	s, err := backtracking(f, 0.25, iterate, gradient, 800, 0, 1, 0.5, 0.1, 50, 1e-20)
	if err != nil {
		t.Fatalf("backtracking: %v", err)
	}
	if s != 0.25 {
		t.Errorf("step size changed without need: got %g, want 0.25", s)
	}
}

// TestBacktrackingTrialBudget checks that a plateau objective with a nonzero
// reported gradient norm fails with ErrLineSearchDivergence instead of
// spinning.
func TestBacktrackingTrialBudget(t *testing.T) {
	iterate := mat.NewDense(2, 1, []float64{1, 1})
	gradient := mat.NewDense(2, 1, []float64{1, 1})

	s, err := backtracking(flat{}, 1, iterate, gradient, 1, 0, 1, 0.5, 0.1, 50, 1e-20)
	if !errors.Is(err, ErrLineSearchDivergence) {
		t.Fatalf("expected ErrLineSearchDivergence, got %v", err)
	}
	if s >= 1 {
		t.Errorf("step size did not shrink before failing: %g", s)
	}
}

// TestBacktrackingStepSizeFloor checks the underflow floor fires before the
// trial budget when it is the tighter bound.
func TestBacktrackingStepSizeFloor(t *testing.T) {
	iterate := mat.NewDense(2, 1, []float64{1, 1})
	gradient := mat.NewDense(2, 1, []float64{1, 1})

	s, err := backtracking(flat{}, 1, iterate, gradient, 1, 0, 1, 0.5, 0.1, 500, 1e-3)
	if !errors.Is(err, ErrLineSearchDivergence) {
		t.Fatalf("expected ErrLineSearchDivergence, got %v", err)
	}
	if s >= 1e-3 {
		t.Errorf("expected step size below the floor, got %g", s)
	}
}
