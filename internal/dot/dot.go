// Package dot renders graph snapshots as Graphviz DOT diagrams.
//
// Every value becomes a record node "label | data | grad". Every composite
// value also gets a small operation node, so an expression c = a * b is drawn as
//
//	a -> (*) -> c
//	b -> (*)
//
// The output can be fed to the dot tool or opened with OnlineURL.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/graph"
)

// OnlineViewer is the Graphviz web viewer used by OnlineURL.
const OnlineViewer = "https://dreampuf.github.io/GraphvizOnline/#"

// Write writes snap to w as a DOT digraph.
func Write(w io.Writer, snap graph.Snapshot) error {
	ew := &errWriter{w: w}
	ew.printf("digraph G {\n")
	ew.printf("  rankdir=LR;\n")
	ew.printf("  node [shape=record];\n")

	for _, info := range snap.Nodes {
		ew.printf("  %s [label=\"{ %s | data %g | grad %g }\"];\n",
			valueID(info.ID), escapeRecord(info.Label), info.Data, info.Grad)
		if info.Op != "" {
			ew.printf("  %s [label=\"%s\", shape=ellipse];\n", opID(info.ID), escapeRecord(info.Op))
			ew.printf("  %s -> %s;\n", opID(info.ID), valueID(info.ID))
		}
	}
	for _, edge := range snap.Edges {
		ew.printf("  %s -> %s;\n", valueID(edge.From), opID(edge.To))
	}
	ew.printf("}\n")

	if ew.err != nil {
		return errors.Wrapf(ew.err, "failed to write DOT graph for node #%d", snap.Root)
	}
	return nil
}

// Render returns snap as DOT text.
func Render(snap graph.Snapshot) string {
	var buf bytes.Buffer
	_ = Write(&buf, snap) // bytes.Buffer never fails.
	return buf.String()
}

// OnlineURL returns a link that displays snap in the Graphviz web viewer.
func OnlineURL(snap graph.Snapshot) string {
	return OnlineViewer + url.PathEscape(Render(snap))
}

func valueID(id graph.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func opID(id graph.NodeID) string {
	return fmt.Sprintf("n%d_op", id)
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

// escapeRecord escapes characters with a special meaning inside record labels.
func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
