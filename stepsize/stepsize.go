// Copyright 2025 The ensmallen Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package stepsize

import (
	"github.com/zeta1999/ensmallen/internal/stepsize"
)

// Policy is the per-iteration step-size update contract consumed by the
// big-batch SGD driver.
type Policy = stepsize.Policy

// Step carries the scalar optimizer state threaded through a policy update.
type Step = stepsize.Step

// Batch locates the sample window for one policy update.
type Batch = stepsize.Batch

// Config holds the shared line-search configuration for the step-size
// policies.
type Config = stepsize.Config

// AdaptiveStepsize adapts the step size from curvature and gradient-noise
// estimates.
type AdaptiveStepsize = stepsize.AdaptiveStepsize

// BarzilaiBorwein proposes Barzilai–Borwein step lengths validated by
// backtracking.
type BarzilaiBorwein = stepsize.BarzilaiBorwein

// NewAdaptiveStepsize creates the adaptive step-size policy.
//
// Example:
//
//	policy := stepsize.NewAdaptiveStepsize(stepsize.Config{
//	    BacktrackStepSize: 0.5,
//	    SearchParameter:   0.1,
//	})
func NewAdaptiveStepsize(config Config) *AdaptiveStepsize {
	return stepsize.NewAdaptiveStepsize(config)
}

// NewBarzilaiBorwein creates the Barzilai–Borwein step-size policy.
func NewBarzilaiBorwein(config Config) *BarzilaiBorwein {
	return stepsize.NewBarzilaiBorwein(config)
}

// Line-search defaults.
const (
	DefaultBacktrackStepSize = stepsize.DefaultBacktrackStepSize
	DefaultSearchParameter   = stepsize.DefaultSearchParameter
	DefaultMaxTrials         = stepsize.DefaultMaxTrials
	DefaultMinStepSize       = stepsize.DefaultMinStepSize
)

// Common errors.
var (
	ErrDimensionMismatch    = stepsize.ErrDimensionMismatch
	ErrLineSearchDivergence = stepsize.ErrLineSearchDivergence
	ErrInvalidBatchSize     = stepsize.ErrInvalidBatchSize
)
