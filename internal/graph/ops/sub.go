package ops

// subRule implements a - b.
type subRule struct{}

func init() {
	Register(OpSub, "-", 2, subRule{}, "sub")
}

func (subRule) Forward(in []float64) float64 {
	return in[0] - in[1]
}

// Backward: grad_a = outputGrad, grad_b = -outputGrad.
func (subRule) Backward(_, outGrad float64, _ []float64) []float64 {
	return []float64{outGrad, -outGrad}
}
