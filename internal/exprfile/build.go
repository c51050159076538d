package exprfile

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/graph"
	"github.com/born-ml/micrograd/internal/graph/ops"
)

// Program is an expression file built into a graph.
type Program struct {
	Graph  *graph.Graph
	Output graph.Value
	Named  map[string]graph.Value // Every declared node by name.
}

// Build creates the nodes declared by f in g. Every node is labeled with its
// declared name.
//
// It returns an error for duplicate or unknown names, unknown operation
// types, wrong operand counts, dependency cycles and a missing output.
func (f *File) Build(g *graph.Graph) (*Program, error) {
	b := &builder{
		file:    f,
		g:       g,
		ops:     make(map[string]*OpBlock, len(f.Ops)),
		built:   make(map[string]graph.Value, len(f.Values)+len(f.Ops)),
		visited: make(map[string]bool, len(f.Ops)),
	}

	for _, v := range f.Values {
		if _, dup := b.built[v.Name]; dup {
			return nil, errors.Errorf("%s: value %q declared twice", f.Filename, v.Name)
		}
		var leaf graph.Value
		if v.Const {
			leaf = g.Constant(v.Data)
		} else {
			leaf = g.New(v.Data)
		}
		b.built[v.Name] = leaf.WithLabel(v.Name)
	}
	for _, op := range f.Ops {
		if _, dup := b.built[op.Name]; dup {
			return nil, errors.Errorf("%s: op %q reuses the name of a value", f.Filename, op.Name)
		}
		if _, dup := b.ops[op.Name]; dup {
			return nil, errors.Errorf("%s: op %q declared twice", f.Filename, op.Name)
		}
		b.ops[op.Name] = op
	}

	// Build in declaration order so node ids follow the file where possible.
	for _, op := range f.Ops {
		if _, err := b.resolve(op.Name); err != nil {
			return nil, err
		}
	}

	outputName := f.Output
	if outputName == "" {
		if len(f.Ops) == 0 {
			return nil, errors.Errorf("%s: no output given and no op declared", f.Filename)
		}
		outputName = f.Ops[len(f.Ops)-1].Name
	}
	output, found := b.built[outputName]
	if !found {
		return nil, errors.Errorf("%s: output %q is not declared", f.Filename, outputName)
	}

	return &Program{Graph: g, Output: output, Named: b.built}, nil
}

type builder struct {
	file    *File
	g       *graph.Graph
	ops     map[string]*OpBlock
	built   map[string]graph.Value
	visited map[string]bool // ops currently being resolved
}

// resolve returns the node named name, building its op and operands first.
func (b *builder) resolve(name string) (graph.Value, error) {
	if v, found := b.built[name]; found {
		return v, nil
	}
	block, found := b.ops[name]
	if !found {
		return graph.Value{}, errors.Errorf("%s: unknown operand %q", b.file.Filename, name)
	}
	if b.visited[name] {
		return graph.Value{}, errors.Errorf("%s: cycle detected involving op %q", b.file.Filename, name)
	}
	b.visited[name] = true
	defer delete(b.visited, name)

	opType, found := ops.Parse(block.Type)
	if !found {
		return graph.Value{}, errors.Errorf("%s: op %q has unknown type %q", b.file.Filename, name, block.Type)
	}
	if len(block.Operands) != opType.Arity() {
		return graph.Value{}, errors.Errorf("%s: op %q of type %q takes %d operands, %d given",
			b.file.Filename, name, opType, opType.Arity(), len(block.Operands))
	}

	operands := make([]graph.Value, len(block.Operands))
	for i, operandName := range block.Operands {
		operand, err := b.resolve(operandName)
		if err != nil {
			return graph.Value{}, errors.WithMessagef(err, "while building op %q", name)
		}
		operands[i] = operand
	}

	v := b.g.Apply(opType, operands...).WithLabel(name)
	b.built[name] = v
	return v, nil
}
