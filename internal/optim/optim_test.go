package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/graph"
	"github.com/born-ml/micrograd/internal/optim"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	g := graph.NewGraph()
	x := g.New(2.0).WithLabel("x")
	optimizer := optim.NewSGD([]graph.Value{x}, optim.SGDConfig{LR: 0.1})

	// Simulate gradient: grad_x = 1.0
	x.SetGrad(1.0)
	optimizer.Step()

	// Expected: x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if !floatEqual(x.Data(), 1.9, 1e-12) {
		t.Errorf("SGD update: got %f, want %f", x.Data(), 1.9)
	}
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	g := graph.NewGraph()
	x := g.New(1.0)
	optimizer := optim.NewSGD([]graph.Value{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	x.SetGrad(1.0)
	optimizer.Step() // v = 1, x = 0.9
	optimizer.Step() // v = 1.9, x = 0.71

	if !floatEqual(x.Data(), 0.71, 1e-12) {
		t.Errorf("SGD momentum update: got %f, want %f", x.Data(), 0.71)
	}
	assert.InDelta(t, 1.9, optimizer.StateDict()["velocity.0"], 1e-12)
}

// TestSGD_Defaults tests the default learning rate.
func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, 0.01, optimizer.GetLR())

	optimizer.SetLR(0.5)
	assert.Equal(t, 0.5, optimizer.GetLR())
	assert.Empty(t, optimizer.StateDict(), "no momentum, no state")

	var _ optim.Optimizer = optimizer
	var _ optim.Optimizer = optim.NewAdam(nil, optim.AdamConfig{})
}

// TestSGD_StateDict tests exporting and restoring velocities.
func TestSGD_StateDict(t *testing.T) {
	g := graph.NewGraph()
	params := []graph.Value{g.New(1).WithLabel("w"), g.New(2).WithLabel("b")}
	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.1, Momentum: 0.5})
	params[0].SetGrad(2)
	params[1].SetGrad(-1)
	optimizer.Step()

	restored := optim.NewSGD(params, optim.SGDConfig{LR: 0.1, Momentum: 0.5})
	require.NoError(t, restored.LoadStateDict(optimizer.StateDict()))
	assert.Equal(t, optimizer.StateDict(), restored.StateDict())

	err := restored.LoadStateDict(map[string]float64{"velocity.0": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"b"`)

	require.NoError(t, optim.NewSGD(params, optim.SGDConfig{}).LoadStateDict(nil))
}

// TestSGD_ZeroGrad tests clearing parameter gradients.
func TestSGD_ZeroGrad(t *testing.T) {
	g := graph.NewGraph()
	x := g.New(1)
	x.SetGrad(3)
	optim.NewSGD([]graph.Value{x}, optim.SGDConfig{}).ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
}

// TestNewSGD_RejectsNonParameters tests that constants and computed nodes cannot be optimized.
func TestNewSGD_RejectsNonParameters(t *testing.T) {
	g := graph.NewGraph()
	w := g.New(1)
	c := g.Constant(2)

	require.Panics(t, func() { optim.NewSGD([]graph.Value{c}, optim.SGDConfig{}) })
	require.Panics(t, func() { optim.NewSGD([]graph.Value{w.Mul(c)}, optim.SGDConfig{}) })
	require.Panics(t, func() { optim.NewAdam([]graph.Value{c}, optim.AdamConfig{}) })
}

// TestAdam_FirstStep tests that the first Adam step moves each parameter by about lr.
func TestAdam_FirstStep(t *testing.T) {
	g := graph.NewGraph()
	x := g.New(1.0)
	y := g.New(-1.0)
	optimizer := optim.NewAdam([]graph.Value{x, y}, optim.AdamConfig{LR: 0.1})

	x.SetGrad(5)
	y.SetGrad(-0.01)
	optimizer.Step()

	// After bias correction m_hat = g and v_hat = g², so the step is lr * sign(g).
	assert.InDelta(t, 0.9, x.Data(), 1e-6)
	assert.InDelta(t, -0.9, y.Data(), 1e-5)
}

// TestAdam_StateDict tests exporting and restoring moments.
func TestAdam_StateDict(t *testing.T) {
	g := graph.NewGraph()
	x := g.New(1.0)
	optimizer := optim.NewAdam([]graph.Value{x}, optim.AdamConfig{})
	assert.Equal(t, 0.001, optimizer.GetLR())

	x.SetGrad(0.3)
	optimizer.Step()
	optimizer.Step()

	restored := optim.NewAdam([]graph.Value{x}, optim.AdamConfig{})
	require.NoError(t, restored.LoadStateDict(optimizer.StateDict()))
	assert.Equal(t, optimizer.StateDict(), restored.StateDict())
	assert.Equal(t, 2.0, restored.StateDict()["step"])

	require.Error(t, restored.LoadStateDict(map[string]float64{}))
	require.Error(t, restored.LoadStateDict(map[string]float64{"step": 1, "m.0": 0}))
}

// TestOptimizers_MinimizeLoss trains a single tanh neuron with both optimizers.
func TestOptimizers_MinimizeLoss(t *testing.T) {
	for name, newOptimizer := range map[string]func([]graph.Value) optim.Optimizer{
		"SGD": func(p []graph.Value) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.1, Momentum: 0.5})
		},
		"Adam": func(p []graph.Value) optim.Optimizer {
			return optim.NewAdam(p, optim.AdamConfig{LR: 0.05})
		},
	} {
		t.Run(name, func(t *testing.T) {
			g := graph.NewGraph()
			w := g.New(0.1).WithLabel("w")
			b := g.New(0.0).WithLabel("b")

			xs := []float64{-1, 0.5, 2}
			targets := []float64{-0.6, 0.2, 0.9}
			var terms []graph.Value
			for i, x := range xs {
				pred := w.Mul(g.Constant(x)).Add(b).Tanh()
				diff := pred.Sub(g.Constant(targets[i]))
				terms = append(terms, diff.Mul(diff))
			}
			loss := g.Sum(terms...)

			optimizer := newOptimizer(g.Parameters(loss))
			initial := loss.Data()
			for range 300 {
				g.Forward(loss)
				loss.Backward()
				optimizer.Step()
			}
			g.Forward(loss)
			assert.Less(t, loss.Data(), initial/10, "final loss %g, initial %g", loss.Data(), initial)
		})
	}
}
