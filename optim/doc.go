// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers for scalar graph parameters.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Parameters are the non-constant leaves of a graph (Graph.Parameters).
// Optimizers read the gradients left on them by a backward pass.
//
// # Basic Usage
//
//	g := autodiff.NewGraph()
//	w := g.New(0.1).WithLabel("w")
//	x := g.Constant(2)
//	diff := w.Mul(x).Sub(g.Constant(1))
//	loss := diff.Mul(diff)
//
//	optimizer := optim.NewSGD(g.Parameters(loss), optim.SGDConfig{LR: 0.05})
//	for range 100 {
//	    g.Forward(loss)   // recompute with the current parameters
//	    loss.Backward()   // fill gradients
//	    optimizer.Step()  // update w
//	}
package optim
