// Package optim implements gradient-based optimizers over scalar graph parameters.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients left on parameters by Graph.Backward and
// update the parameter values in place.
//
// Example usage:
//
//	params := g.Parameters(loss)
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.05})
//
//	for step := range steps {
//	    g.Forward(loss)
//	    loss.Backward()
//	    optimizer.Step()
//	}
package optim

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/micrograd/internal/graph"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters, using the gradients
	// currently stored on them.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// checkParams panics if a parameter is a constant or a computed node:
// optimizers only update non-constant leaves.
func checkParams(caller string, params []graph.Value) {
	for i, param := range params {
		if !param.IsLeaf() {
			exceptions.Panicf("%s: parameter %d (%q) is computed by %q, only leaves can be optimized",
				caller, i, param.Label(), param.Op())
		}
		if param.Frozen() {
			exceptions.Panicf("%s: parameter %d (%q) is a constant", caller, i, param.Label())
		}
	}
}

func zeroGrad(params []graph.Value) {
	for _, param := range params {
		param.SetGrad(0)
	}
}
