// Package dot renders a validated blueprint graph in Graphviz DOT format,
// for inspecting what the scheduler is about to run.
package dot

import (
	"fmt"
	"sort"

	"github.com/awalterschulze/gographviz"

	"github.com/mosaicgen/mosaic/internal/graph"
)

const graphName = "blueprint"

// Export renders the graph as DOT. Hard edges are solid, soft ordering edges
// dashed. Nodes appear in topological order so the output is stable.
func Export(g *graph.Graph) (string, error) {
	viz := gographviz.NewGraph()
	if err := viz.SetName(graphName); err != nil {
		return "", fmt.Errorf("naming graph: %w", err)
	}
	if err := viz.SetDir(true); err != nil {
		return "", fmt.Errorf("marking graph directed: %w", err)
	}

	for _, node := range g.Order {
		attrs := map[string]string{
			"label": fmt.Sprintf("%q", node.ID),
			"shape": "box",
		}
		if err := viz.AddNode(graphName, fmt.Sprintf("%q", node.ID), attrs); err != nil {
			return "", fmt.Errorf("adding node '%s': %w", node.ID, err)
		}
	}

	for _, node := range g.Order {
		for _, depID := range sortedDepIDs(node) {
			edge := node.Deps[depID]
			attrs := map[string]string{}
			if edge.Kind == graph.SoftEdge {
				attrs["style"] = "dashed"
			}
			if err := viz.AddEdge(fmt.Sprintf("%q", depID), fmt.Sprintf("%q", node.ID), true, attrs); err != nil {
				return "", fmt.Errorf("adding edge '%s' -> '%s': %w", depID, node.ID, err)
			}
		}
	}

	return viz.String(), nil
}

func sortedDepIDs(node *graph.Node) []string {
	ids := make([]string, 0, len(node.Deps))
	for id := range node.Deps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
