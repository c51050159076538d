package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/graph"
)

func TestExecute_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute(&out, []string{"version"}))
	assert.Equal(t, "micrograd "+version+"\n", out.String())
}

func TestExecute_Usage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute(&out, nil))
	assert.Contains(t, out.String(), "Commands:")

	err := execute(&out, []string{"serve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "serve"`)
}

func TestExampleProgram(t *testing.T) {
	prog := exampleProgram()
	require.Equal(t, "out", prog.Output.Label())
	require.Len(t, prog.Named, 8)
	assert.Equal(t, math.Tanh(-8), prog.Output.Data())

	prog.Output.Backward()
	a, b, f := prog.Named["a"], prog.Named["b"], prog.Named["f"]
	gradL := 1 - math.Tanh(-8)*math.Tanh(-8)
	assert.InDelta(t, gradL*f.Data()*b.Data(), a.Grad(), 1e-15)
	assert.InDelta(t, gradL*prog.Named["d"].Data(), f.Grad(), 1e-15)
}

func TestRunCmd_Example(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCmd(&out, nil))
	report := out.String()
	assert.True(t, strings.HasPrefix(report, "Backward from Value(label=out"))
	for _, label := range []string{"a", "b", "c", "d", "e", "f", "L", "out", "tanh"} {
		assert.Contains(t, report, " "+label+" ")
	}
	assert.NotContains(t, report, "After")
}

func TestRunCmd_File(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCmd(&out, []string{"-steps", "3", "-lr", "0.5", "../../internal/exprfile/testdata/neuron.hcl"}))
	assert.Contains(t, out.String(), "After 3 steps (lr=0.5)")

	require.Error(t, runCmd(&out, []string{"-steps", "-1"}))
	require.Error(t, runCmd(&out, []string{"does-not-exist.hcl"}))
}

func TestDotCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dotCmd(&out, nil))
	assert.True(t, strings.HasPrefix(out.String(), "digraph G {"))
	assert.Contains(t, out.String(), `[label="tanh", shape=ellipse]`)

	out.Reset()
	require.NoError(t, dotCmd(&out, []string{"-url"}))
	assert.True(t, strings.HasPrefix(out.String(), "https://dreampuf.github.io/GraphvizOnline/#digraph"))
}

func TestTrainCmd(t *testing.T) {
	for _, name := range []string{"sgd", "adam"} {
		var out bytes.Buffer
		require.NoError(t, trainCmd(&out, []string{"-optimizer", name, "-steps", "100"}))
		assert.True(t, strings.HasPrefix(out.String(), name+" (lr=0.1): loss "), out.String())
	}

	var out bytes.Buffer
	require.Error(t, trainCmd(&out, []string{"-optimizer", "lbfgs"}))
	require.Error(t, trainCmd(&out, []string{"-steps", "0"}))
}

func TestNeuronLoss(t *testing.T) {
	g := graph.NewGraph()
	loss, w, b := neuronLoss(g)

	var want float64
	for i, x := range trainInputs {
		d := math.Tanh(0.1*x) - trainTargets[i]
		want += d * d
	}
	assert.InDelta(t, want, loss.Data(), 1e-12)

	params := g.Parameters(loss)
	require.Len(t, params, 2)
	assert.Equal(t, w.ID(), params[0].ID())
	assert.Equal(t, b.ID(), params[1].ID())
}
