package ops

// addRule implements a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type addRule struct{}

func init() {
	Register(OpAdd, "+", 2, addRule{}, "add")
}

// Forward returns a + b.
func (addRule) Forward(in []float64) float64 {
	return in[0] + in[1]
}

// Backward lets the gradient flow unchanged to both operands.
func (addRule) Backward(_, outGrad float64, _ []float64) []float64 {
	return []float64{outGrad, outGrad}
}
