// Package ops defines the operations a scalar graph node can be produced by.
//
// Each operation is identified by an OpType and registers a Rule that provides:
//   - Forward pass: the node value computed from its operand values
//   - Backward pass: the local contribution to each operand's gradient
//
// Supported operations:
//   - OpAdd: a + b (d/da = 1, d/db = 1)
//   - OpSub: a - b (d/da = 1, d/db = -1)
//   - OpMul: a * b (d/da = b, d/db = a)
//   - OpTanh: tanh(x) (d/dx = 1 - tanh²(x))
//   - OpExp: exp(x) (d/dx = exp(x))
//   - OpReLU: max(0, x) (d/dx = 1 if x > 0, else 0)
//
// New operations are added by calling Register with a fresh OpType; the graph
// traversal never needs to change.
package ops

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// OpType identifies the operation that produced a node.
// OpNone marks a leaf: an input, parameter or constant with no operands.
type OpType int

const (
	OpNone OpType = iota
	OpAdd
	OpMul
	OpTanh
	OpSub
	OpExp
	OpReLU
)

// Rule implements the forward value and local derivative of an operation.
type Rule interface {
	// Forward computes the node value from its operand values.
	Forward(in []float64) float64

	// Backward returns, for each operand, outGrad times the partial derivative
	// of the node value with respect to that operand.
	//
	// out is the node's own (forward) value, so rules such as tanh and exp can
	// express their derivative without recomputing it.
	Backward(out, outGrad float64, in []float64) []float64
}

type registration struct {
	tag   string
	arity int
	rule  Rule
}

var (
	registry = make(map[OpType]registration)
	byTag    = make(map[string]OpType)
)

// Register associates op with its textual tag, arity and rule.
// Aliases are extra names accepted by Parse.
//
// It panics if op or any of its names is already registered, or if arity < 1.
func Register(op OpType, tag string, arity int, rule Rule, aliases ...string) {
	if op == OpNone {
		exceptions.Panicf("ops.Register: OpNone is reserved for leaves")
	}
	if _, found := registry[op]; found {
		exceptions.Panicf("ops.Register: operation %d (%q) registered twice", op, tag)
	}
	if arity < 1 {
		exceptions.Panicf("ops.Register: operation %q must take at least one operand, got arity %d", tag, arity)
	}
	for _, name := range append([]string{tag}, aliases...) {
		if prev, found := byTag[name]; found {
			exceptions.Panicf("ops.Register: name %q already used by operation %s", name, prev)
		}
		byTag[name] = op
	}
	registry[op] = registration{tag: tag, arity: arity, rule: rule}
}

// Lookup returns the rule registered for op.
func Lookup(op OpType) (Rule, bool) {
	reg, found := registry[op]
	return reg.rule, found
}

// Parse returns the operation registered under the given tag or alias.
func Parse(name string) (OpType, bool) {
	op, found := byTag[name]
	return op, found
}

// String returns the short tag of the operation ("+", "*", "tanh", ...).
// Leaves (OpNone) have an empty tag.
func (op OpType) String() string {
	if op == OpNone {
		return ""
	}
	if reg, found := registry[op]; found {
		return reg.tag
	}
	return fmt.Sprintf("OpType(%d)", int(op))
}

// Arity returns the number of operands the operation takes.
// It is 0 for OpNone and -1 for unregistered operations.
func (op OpType) Arity() int {
	if op == OpNone {
		return 0
	}
	if reg, found := registry[op]; found {
		return reg.arity
	}
	return -1
}
