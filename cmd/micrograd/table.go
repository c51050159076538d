package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/born-ml/micrograd/internal/graph"
)

// nodeTable formats every node of snap, one row per node in topological order.
func nodeTable(snap graph.Snapshot) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Label", "Op", "Operands", "Data", "Grad")

	operands := make(map[graph.NodeID][]graph.NodeID, len(snap.Nodes))
	for _, edge := range snap.Edges {
		operands[edge.To] = append(operands[edge.To], edge.From)
	}
	for _, info := range snap.Nodes {
		var inputs string
		for i, id := range operands[info.ID] {
			if i > 0 {
				inputs += ", "
			}
			inputs += fmt.Sprintf("#%d", id)
		}
		table.Row(
			fmt.Sprintf("#%d", info.ID),
			info.Label,
			info.Op,
			inputs,
			fmt.Sprintf("%.6g", info.Data),
			fmt.Sprintf("%.6g", info.Grad),
		)
	}
	return table.String()
}
