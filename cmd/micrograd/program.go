package main

import (
	"github.com/janpfeifer/must"

	"github.com/born-ml/micrograd/internal/exprfile"
	"github.com/born-ml/micrograd/internal/graph"
)

// exampleSource is the expression used when no file is given.
const exampleSource = `
value "a" { data = 2.0 }
value "b" { data = -3.0 }
value "c" { data = 10.0 }
value "f" { data = -2.0 }

op "e" {
  type     = "*"
  operands = ["a", "b"]
}

op "d" {
  type     = "+"
  operands = ["c", "e"]
}

op "L" {
  type     = "*"
  operands = ["d", "f"]
}

op "out" {
  type     = "tanh"
  operands = ["L"]
}

output = "out"
`

// exampleProgram builds out = tanh((c + a*b) * f) with a=2, b=-3, c=10, f=-2.
// The source is fixed, so any failure is a programming error and panics.
func exampleProgram() *exprfile.Program {
	file := must.M1(exprfile.Parse([]byte(exampleSource), "example.hcl"))
	return must.M1(file.Build(graph.NewGraph()))
}

// loadProgram builds the expression file named by args, or the example
// program when args is empty.
func loadProgram(args []string) (*exprfile.Program, error) {
	if len(args) == 0 {
		return exampleProgram(), nil
	}
	file, err := exprfile.Load(args[0])
	if err != nil {
		return nil, err
	}
	return file.Build(graph.NewGraph())
}
