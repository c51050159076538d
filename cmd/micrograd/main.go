// Package main provides the micrograd command line tool.
//
// Usage:
//
//	micrograd version
//	micrograd run [-lr 0.1] [-steps 0] [FILE.hcl]
//	micrograd dot [-url] [FILE.hcl]
//	micrograd train [-lr 0.1] [-momentum 0.5] [-steps 200] [-optimizer sgd|adam]
//
// Without FILE, run and dot use the built-in example out = tanh((c + a*b) * f).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0"

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() { usage(flag.CommandLine.Output()) }
	flag.Parse()

	err := execute(os.Stdout, flag.Args())
	if err != nil {
		klog.Errorf("%+v", err)
	}
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the sub-command named by args[0], writing its report to out.
func execute(out io.Writer, args []string) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}
	switch args[0] {
	case "version":
		_, err := fmt.Fprintf(out, "micrograd %s\n", version)
		return err
	case "run":
		return runCmd(out, args[1:])
	case "dot":
		return dotCmd(out, args[1:])
	case "train":
		return trainCmd(out, args[1:])
	default:
		return errors.Errorf("unknown command %q, see \"micrograd\" for usage", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "micrograd - scalar reverse-mode automatic differentiation")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                  Show version")
	fmt.Fprintln(w, "  run [flags] [FILE.hcl]   Backpropagate through an expression and print every node")
	fmt.Fprintln(w, "  dot [flags] [FILE.hcl]   Print the expression graph as Graphviz DOT")
	fmt.Fprintln(w, "  train [flags]            Fit a tanh neuron to sample points")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without FILE, the built-in example out = tanh((c + a*b) * f) is used.")
}
