// Copyright 2025 The ensmallen Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sgd provides the big-batch stochastic gradient descent driver.
//
// Big-batch SGD grows its sample batch over the course of optimization: at
// each iteration the driver compares the squared norm of the averaged batch
// gradient against the batch's noise estimate and enlarges the batch until
// the descent signal dominates. Step-size control is delegated to a
// pluggable policy from the stepsize package.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/zeta1999/ensmallen/function"
//	    "github.com/zeta1999/ensmallen/sgd"
//	    "github.com/zeta1999/ensmallen/stepsize"
//	)
//
//	objective, _ := function.NewLinearRegression(data, responses)
//	iterate := mat.NewDense(dims, 1, nil)
//
//	optimizer := &sgd.BigBatch{
//	    StepSize:  0.01,
//	    BatchSize: 10,
//	    Shuffle:   true,
//	    Policy:    stepsize.NewAdaptiveStepsize(stepsize.Config{}),
//	}
//	result, err := optimizer.Optimize(objective, iterate)
//
// The iterate is updated in place; Result reports the final overall
// objective and whether the epoch-to-epoch tolerance criterion was met.
//
// A driver instance supports one Optimize call at a time. Concurrent runs
// need separate drivers with separate policy instances.
package sgd
