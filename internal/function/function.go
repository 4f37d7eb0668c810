// Package function defines the objective-function contract consumed by the
// step-size policies and the big-batch SGD driver.
//
// A decomposable objective is a sum of per-sample terms
//
//	f(x) = f_0(x) + f_1(x) + ... + f_{n-1}(x)
//
// evaluated and differentiated over contiguous sample windows. Policies call
// Gradient with a batch size of 1 while estimating gradient noise, so
// implementations must support single-sample evaluation.
package function

import "gonum.org/v1/gonum/mat"

// Decomposable is the capability an objective must provide to be optimized.
//
// Evaluate and Gradient operate on the sample window [offset, offset+batchSize).
// Gradient overwrites the output matrix with the sum of the per-sample
// gradients over the window; callers that need the averaged gradient divide by
// the batch size themselves.
type Decomposable interface {
	// Evaluate returns the objective over the given sample window.
	Evaluate(iterate *mat.Dense, offset, batchSize int) float64

	// Gradient writes the gradient over the given sample window into gradient.
	// The output matrix has the same shape as the iterate and is fully
	// overwritten. batchSize may be 1.
	Gradient(iterate *mat.Dense, offset int, gradient *mat.Dense, batchSize int)

	// NumFunctions returns the number of per-sample terms (training samples).
	NumFunctions() int
}

// Shuffler is implemented by objectives that can re-order their samples.
// The big-batch SGD driver invokes Shuffle at each epoch boundary when
// shuffling is enabled; objectives with a fixed sample order simply do not
// implement it.
type Shuffler interface {
	Shuffle()
}
