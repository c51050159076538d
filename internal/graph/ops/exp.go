package ops

import "math"

// expRule implements e^x. Its derivative is its own output.
type expRule struct{}

func init() {
	Register(OpExp, "exp", 1, expRule{})
}

func (expRule) Forward(in []float64) float64 {
	return math.Exp(in[0])
}

func (expRule) Backward(out, outGrad float64, _ []float64) []float64 {
	return []float64{outGrad * out}
}
