package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/micrograd/internal/dot"
)

func runCmd(out io.Writer, args []string) error {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(out)
	learningRate := flags.Float64("lr", 0.1, "Learning rate of the gradient-descent steps.")
	steps := flags.Int("steps", 0, "Number of gradient-descent steps applied after the first backward pass.")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *steps < 0 {
		return errors.Errorf("-steps must be >= 0, got %d", *steps)
	}

	prog, err := loadProgram(flags.Args())
	if err != nil {
		return err
	}
	g, output := prog.Graph, prog.Output

	output.Backward()
	if _, err := fmt.Fprintf(out, "Backward from %s\n%s\n", output, nodeTable(g.Snapshot(output))); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	for step := 1; step <= *steps; step++ {
		g.ApplyGradient(output, *learningRate)
		g.Forward(output)
		output.Backward()
		klog.V(1).Infof("step %d: %s", step, output)
	}
	if *steps > 0 {
		_, err := fmt.Fprintf(out, "After %d steps (lr=%g): %s\n%s\n",
			*steps, *learningRate, output, nodeTable(g.Snapshot(output)))
		if err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}
	return nil
}

func dotCmd(out io.Writer, args []string) error {
	flags := flag.NewFlagSet("dot", flag.ContinueOnError)
	flags.SetOutput(out)
	asURL := flags.Bool("url", false, "Print a GraphvizOnline link instead of DOT text.")
	if err := flags.Parse(args); err != nil {
		return err
	}

	prog, err := loadProgram(flags.Args())
	if err != nil {
		return err
	}
	prog.Output.Backward()
	snap := prog.Graph.Snapshot(prog.Output)

	if *asURL {
		_, err = fmt.Fprintln(out, dot.OnlineURL(snap))
		return errors.Wrap(err, "failed to write link")
	}
	return dot.Write(out, snap)
}
