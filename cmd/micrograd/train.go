package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/micrograd/internal/graph"
	"github.com/born-ml/micrograd/internal/optim"
)

// Sample points fitted by trainCmd.
var (
	trainInputs  = []float64{-1.0, 0.5, 2.0}
	trainTargets = []float64{-0.6, 0.2, 0.9}
)

// neuronLoss builds loss = Σ (tanh(w*x + b) - target)² over the sample points.
// The inputs and targets are constants, w and b are the only parameters.
func neuronLoss(g *graph.Graph) (loss, w, b graph.Value) {
	w = g.New(0.1).WithLabel("w")
	b = g.New(0.0).WithLabel("b")
	terms := make([]graph.Value, len(trainInputs))
	for i, x := range trainInputs {
		pred := w.Mul(g.Constant(x).WithLabel(fmt.Sprintf("x%d", i))).Add(b).Tanh()
		diff := pred.Sub(g.Constant(trainTargets[i]).WithLabel(fmt.Sprintf("y%d", i)))
		terms[i] = diff.Mul(diff)
	}
	return g.Sum(terms...).WithLabel("loss"), w, b
}

func trainCmd(out io.Writer, args []string) error {
	flags := flag.NewFlagSet("train", flag.ContinueOnError)
	flags.SetOutput(out)
	learningRate := flags.Float64("lr", 0.1, "Learning rate.")
	momentum := flags.Float64("momentum", 0.5, "SGD momentum.")
	steps := flags.Int("steps", 200, "Number of training steps.")
	optimizerName := flags.String("optimizer", "sgd", "Optimizer: sgd or adam.")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *steps <= 0 {
		return errors.Errorf("-steps must be > 0, got %d", *steps)
	}

	g := graph.NewGraph()
	loss, w, b := neuronLoss(g)

	var optimizer optim.Optimizer
	switch *optimizerName {
	case "sgd":
		optimizer = optim.NewSGD(g.Parameters(loss), optim.SGDConfig{LR: *learningRate, Momentum: *momentum})
	case "adam":
		optimizer = optim.NewAdam(g.Parameters(loss), optim.AdamConfig{LR: *learningRate})
	default:
		return errors.Errorf("unknown optimizer %q, valid values are \"sgd\" and \"adam\"", *optimizerName)
	}

	initial := loss.Data()
	for step := 1; step <= *steps; step++ {
		g.Forward(loss)
		loss.Backward()
		optimizer.Step()
		if step%50 == 0 {
			klog.V(1).Infof("step %d: loss=%g w=%g b=%g", step, loss.Data(), w.Data(), b.Data())
		}
	}
	g.Forward(loss)

	_, err := fmt.Fprintf(out, "%s (lr=%g): loss %.6g -> %.6g after %d steps, w=%.6g b=%.6g\n",
		*optimizerName, optimizer.GetLR(), initial, loss.Data(), *steps, w.Data(), b.Data())
	return errors.Wrap(err, "failed to write report")
}
