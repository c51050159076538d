package ops

import "math"

// tanhRule implements the hyperbolic tangent.
type tanhRule struct{}

func init() {
	Register(OpTanh, "tanh", 1, tanhRule{})
}

// Forward returns tanh(x).
func (tanhRule) Forward(in []float64) float64 {
	return math.Tanh(in[0])
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (tanhRule) Backward(out, outGrad float64, _ []float64) []float64 {
	return []float64{outGrad * (1 - out*out)}
}
