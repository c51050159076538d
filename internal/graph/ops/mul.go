package ops

// mulRule implements a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type mulRule struct{}

func init() {
	Register(OpMul, "*", 2, mulRule{}, "mul")
}

// Forward returns a * b.
func (mulRule) Forward(in []float64) float64 {
	return in[0] * in[1]
}

// Backward computes operand gradients for multiplication.
func (mulRule) Backward(_, outGrad float64, in []float64) []float64 {
	a, b := in[0], in[1]
	return []float64{outGrad * b, outGrad * a}
}
