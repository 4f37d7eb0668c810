// Package main provides the ensmallen optimization library CLI.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/function"
	"github.com/zeta1999/ensmallen/sgd"
	"github.com/zeta1999/ensmallen/stepsize"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("ensmallen %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("ensmallen - Big-Batch SGD with Adaptive Step Sizes")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run big-batch SGD on a synthetic linear regression")
}

// demo fits a small synthetic linear regression with the adaptive step-size
// policy, printing progress every few iterations.
func demo() error {
	const (
		dims    = 5
		samples = 200
	)

	rng := rand.New(rand.NewSource(42))

	truth := make([]float64, dims)
	for i := range truth {
		truth[i] = rng.NormFloat64()
	}

	data := mat.NewDense(dims, samples, nil)
	responses := make([]float64, samples)
	for j := 0; j < samples; j++ {
		var y float64
		for i := 0; i < dims; i++ {
			a := rng.NormFloat64()
			data.Set(i, j, a)
			y += truth[i] * a
		}
		responses[j] = y + 0.01*rng.NormFloat64()
	}

	objective, err := function.NewLinearRegression(data, responses)
	if err != nil {
		return err
	}

	iterate := mat.NewDense(dims, 1, nil)

	optimizer := &sgd.BigBatch{
		StepSize:  0.01,
		BatchSize: 10,
		Shuffle:   true,
		Policy:    stepsize.NewAdaptiveStepsize(stepsize.Config{}),
		Report: func(iteration int, objective, stepSize float64, batchSize int) {
			if iteration%25 == 0 {
				fmt.Printf("iteration %4d  batch %4d  step %.6f  objective %.6f\n",
					iteration, batchSize, stepSize, objective)
			}
		},
	}

	result, err := optimizer.Optimize(objective, iterate)
	if err != nil {
		return err
	}

	fmt.Printf("\nfinished after %d iterations (converged: %v)\n", result.Iterations, result.Converged)
	fmt.Printf("final objective: %.6f\n", result.Objective)
	fmt.Printf("coefficients:    %v\n", mat.Formatted(iterate.T()))
	fmt.Printf("ground truth:    %v\n", truth)
	return nil
}
