package ops

// reluRule implements max(0, x).
// The gradient at exactly 0 is taken as 0.
type reluRule struct{}

func init() {
	Register(OpReLU, "relu", 1, reluRule{})
}

func (reluRule) Forward(in []float64) float64 {
	if in[0] > 0 {
		return in[0]
	}
	return 0
}

func (reluRule) Backward(_, outGrad float64, in []float64) []float64 {
	if in[0] > 0 {
		return []float64{outGrad}
	}
	return []float64{0}
}
