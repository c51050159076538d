package optim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/graph"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []graph.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int       // Timestep for bias correction
	m      []float64 // First moment estimates
	v      []float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
//
// It panics if any of params is a constant or a computed node.
func NewAdam(params []graph.Value, config AdamConfig) *Adam {
	checkParams("NewAdam", params)

	// Set defaults
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make([]float64, len(params)),
		v:      make([]float64, len(params)),
	}
}

// Step performs a single optimization step using Adam algorithm.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for i, param := range a.params {
		g := param.Grad()
		a.m[i] = a.beta1*a.m[i] + (1.0-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1.0-a.beta2)*g*g

		mHat := a.m[i] / biasCorrection1
		vHat := a.v[i] / biasCorrection2
		param.SetData(param.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// StateDict returns the optimizer state for serialization.
//
// State keys:
//   - "step": timestep t
//   - "m.{param_index}": first moment
//   - "v.{param_index}": second moment
func (a *Adam) StateDict() map[string]float64 {
	stateDict := make(map[string]float64, 1+2*len(a.params))
	stateDict["step"] = float64(a.t)
	for i := range a.params {
		stateDict[fmt.Sprintf("m.%d", i)] = a.m[i]
		stateDict[fmt.Sprintf("v.%d", i)] = a.v[i]
	}
	return stateDict
}

// LoadStateDict restores the state exported by StateDict.
func (a *Adam) LoadStateDict(stateDict map[string]float64) error {
	step, found := stateDict["step"]
	if !found {
		return errors.New("Adam.LoadStateDict: missing \"step\"")
	}
	m := make([]float64, len(a.params))
	v := make([]float64, len(a.params))
	for i := range a.params {
		var ok bool
		if m[i], ok = stateDict[fmt.Sprintf("m.%d", i)]; !ok {
			return errors.Errorf("Adam.LoadStateDict: missing first moment for parameter %d (%q)", i, a.params[i].Label())
		}
		if v[i], ok = stateDict[fmt.Sprintf("v.%d", i)]; !ok {
			return errors.Errorf("Adam.LoadStateDict: missing second moment for parameter %d (%q)", i, a.params[i].Label())
		}
	}
	a.t, a.m, a.v = int(step), m, v
	return nil
}
