// Package stepsize implements step-size control policies for big-batch
// stochastic gradient descent.
//
// This package provides:
//   - Policy interface: the per-iteration step-size update contract
//   - AdaptiveStepsize: curvature- and noise-driven step-size adaptation
//   - BarzilaiBorwein: a curvature-only companion policy
//   - bounded Armijo–Goldstein backtracking shared by both policies
package stepsize

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// Step carries the scalar optimizer state threaded through a policy update.
// The matrices travel separately and are mutated in place; the scalars travel
// by value so each update returns a fresh, fully-defined triple.
type Step struct {
	// StepSize is the current step length along the negative gradient.
	StepSize float64

	// GradientNorm is the squared Euclidean norm of the averaged gradient
	// from the most recent estimation window.
	GradientNorm float64

	// SampleVariance is the dispersion proxy accumulated over the most
	// recent estimation window. It is not a classical variance; treat it
	// as an opaque scalar consumed by the decay formula and the driver's
	// batch-growth test.
	SampleVariance float64
}

// Batch locates the sample window for one policy update.
type Batch struct {
	// Offset is the index of the first sample in the window.
	Offset int

	// Size is the batch size used for the decay and smoothing formulas.
	Size int

	// BacktrackingSize is the number of samples in the estimation and
	// line-search window. Must be at least 1; the caller guarantees
	// Offset+BacktrackingSize does not exceed the objective's sample count.
	BacktrackingSize int
}

// Policy is the per-iteration step-size update contract consumed by the
// big-batch SGD driver.
//
// Update performs one full step: line search on the incoming step size,
// descent update of the iterate, gradient and noise estimation over the
// backtracking window, step-size adaptation, and a final line-search
// validation. On return the iterate holds the updated parameters and the
// gradient holds the averaged gradient over the window.
//
// Policies are stateful across calls and not safe for concurrent use; the
// caller must guarantee at most one in-flight Update per policy instance.
//
// The reset flag signals that the caller changed the batch size since the
// previous call. It is accepted for interface stability; the shipped policies
// do not currently act on it.
type Policy interface {
	Update(f function.Decomposable, step Step, iterate, gradient *mat.Dense, batch Batch, reset bool) (Step, error)
}
