// Copyright 2025 The ensmallen Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package function provides the public API for the decomposable
// objective-function contract and the synthetic objectives shipped with the
// library.
//
// A decomposable objective is a sum of per-sample terms evaluated and
// differentiated over contiguous sample windows. Implement Decomposable to
// plug a model into the big-batch SGD driver and the step-size policies;
// implement Shuffler as well if the sample order can be permuted between
// epochs.
package function

import (
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/internal/function"
)

// Decomposable is the capability an objective must provide to be optimized.
type Decomposable = function.Decomposable

// Shuffler is implemented by objectives that can re-order their samples.
type Shuffler = function.Shuffler

// Sphere is the deterministic quadratic test objective n·xᵀx.
type Sphere = function.Sphere

// LinearRegression is a decomposable least-squares objective.
type LinearRegression = function.LinearRegression

// NewSphere returns a sphere objective decomposed into numFunctions identical
// per-sample terms.
func NewSphere(numFunctions int) *Sphere {
	return function.NewSphere(numFunctions)
}

// NewLinearRegression builds a least-squares objective from a d×n design
// matrix (one column per sample) and n responses.
func NewLinearRegression(data *mat.Dense, responses []float64) (*LinearRegression, error) {
	return function.NewLinearRegression(data, responses)
}
