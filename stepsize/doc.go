// Copyright 2025 The ensmallen Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stepsize provides step-size control policies for big-batch
// stochastic gradient descent.
//
// # Overview
//
// This package contains:
//   - AdaptiveStepsize: the non-monotonic step-size scheme of De et al.,
//     "Big Batch SGD: Automated Inference using Adaptive Batch Sizes",
//     combining backtracking line search with online curvature and
//     gradient-noise estimation
//   - BarzilaiBorwein: a curvature-only companion policy behind the same
//     interface
//   - Policy interface for custom step-size strategies
//
// # Basic Usage
//
//	import (
//	    "github.com/zeta1999/ensmallen/sgd"
//	    "github.com/zeta1999/ensmallen/stepsize"
//	)
//
//	optimizer := &sgd.BigBatch{
//	    StepSize:  0.01,
//	    BatchSize: 10,
//	    Policy:    stepsize.NewAdaptiveStepsize(stepsize.Config{}),
//	}
//	result, err := optimizer.Optimize(objective, iterate)
//
// # Driving a Policy Directly
//
// A policy can be invoked without the driver. One update runs a line search
// on the incoming step size, takes the descent step, estimates gradient and
// noise over the backtracking window, adapts the step size, and validates it
// with a second line search:
//
//	policy := stepsize.NewAdaptiveStepsize(stepsize.Config{})
//	step := stepsize.Step{StepSize: 0.5, GradientNorm: gradNorm}
//	batch := stepsize.Batch{Offset: 0, Size: n, BacktrackingSize: n}
//
//	step, err := policy.Update(objective, step, iterate, gradient, batch, false)
//
// The iterate and gradient matrices are updated in place; the returned Step
// holds the adapted step size and the window's gradient norm and sample
// variance.
//
// Policies hold per-run state (the previous iterate) and are not safe for
// concurrent use. Use one policy instance per optimization run.
package stepsize
