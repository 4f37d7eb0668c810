// Copyright 2025 The ensmallen Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sgd

import (
	"github.com/zeta1999/ensmallen/internal/sgd"
)

// BigBatch is the big-batch SGD optimizer driver.
type BigBatch = sgd.BigBatch

// Result summarizes an optimization run.
type Result = sgd.Result

// ErrDiverged reports a non-finite overall objective during optimization.
var ErrDiverged = sgd.ErrDiverged

// Defaults applied by Optimize for zero-valued fields.
const (
	DefaultStepSize      = sgd.DefaultStepSize
	DefaultBatchSize     = sgd.DefaultBatchSize
	DefaultGrowthFactor  = sgd.DefaultGrowthFactor
	DefaultMaxIterations = sgd.DefaultMaxIterations
	DefaultTolerance     = sgd.DefaultTolerance
)
