package optim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/graph"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(g.Parameters(loss), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []graph.Value
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// It panics if any of params is a constant or a computed node.
func NewSGD(params []graph.Value, config SGDConfig) *SGD {
	checkParams("NewSGD", params)

	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]float64, len(params)),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for i, param := range s.params {
		grad := param.Grad()
		if s.momentum == 0 {
			param.SetData(param.Data() - s.lr*grad)
			continue
		}
		s.velocities[i] = s.momentum*s.velocities[i] + grad
		param.SetData(param.Data() - s.lr*s.velocities[i])
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the optimizer state for serialization.
//
// For SGD with momentum, this exports the velocity of each parameter.
// Without momentum, returns an empty map.
//
// State keys: "velocity.{param_index}".
func (s *SGD) StateDict() map[string]float64 {
	stateDict := make(map[string]float64)
	if s.momentum == 0 {
		return stateDict
	}
	for i, velocity := range s.velocities {
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity
	}
	return stateDict
}

// LoadStateDict restores velocities exported by StateDict.
//
// If momentum is 0 the state is ignored. Returns an error if a velocity is
// missing for one of the parameters.
func (s *SGD) LoadStateDict(stateDict map[string]float64) error {
	if s.momentum == 0 {
		return nil
	}
	velocities := make([]float64, len(s.params))
	for i := range s.params {
		key := fmt.Sprintf("velocity.%d", i)
		velocity, found := stateDict[key]
		if !found {
			return errors.Errorf("SGD.LoadStateDict: missing %q for parameter %q", key, s.params[i].Label())
		}
		velocities[i] = velocity
	}
	s.velocities = velocities
	return nil
}
