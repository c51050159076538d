// Package exprfile loads scalar expressions described in HCL and builds them
// into a graph.
//
// A file declares leaves with "value" blocks, composite nodes with "op" blocks
// and names the output node:
//
//	value "a" { data = 2.0 }
//	value "b" { data = -3.0 }
//	value "k" {
//	  data  = 0.5
//	  const = true
//	}
//	op "e" {
//	  type     = "*"
//	  operands = ["a", "b"]
//	}
//	op "out" {
//	  type     = "tanh"
//	  operands = ["e"]
//	}
//	output = "out"
//
// Blocks may appear in any order; operands are resolved by name. If output is
// omitted, the last declared op is the output.
package exprfile

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// File is the decoded content of an expression file.
type File struct {
	Filename string
	Values   []*ValueBlock `hcl:"value,block"`
	Ops      []*OpBlock    `hcl:"op,block"`
	Output   string        `hcl:"output,optional"`
}

// ValueBlock declares a leaf.
type ValueBlock struct {
	Name  string  `hcl:"name,label"`
	Data  float64 `hcl:"data"`
	Const bool    `hcl:"const,optional"`
}

// OpBlock declares a node computed from other named nodes.
type OpBlock struct {
	Name     string   `hcl:"name,label"`
	Type     string   `hcl:"type"`
	Operands []string `hcl:"operands"`
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse expression file %s", filename)
	}

	file := &File{}
	diags = gohcl.DecodeBody(hclFile.Body, nil, file)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to decode expression file %s", filename)
	}
	file.Filename = filename
	klog.V(2).Infof("exprfile: %s declares %d values and %d ops", filename, len(file.Values), len(file.Ops))
	return file, nil
}

// Load reads and parses the expression file at path.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read expression file")
	}
	return Parse(src, path)
}
