package graph

import (
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/routing"
)

// EdgeKind distinguishes hard dependencies, whose failure cascades to
// dependents, from soft ordering edges that only constrain commit order.
type EdgeKind int

const (
	// HardEdge comes from `requires`, explicit depends_on, or a wire
	// mapping. A failed hard dependency skips all transitive dependents.
	HardEdge EdgeKind = iota
	// SoftEdge comes from `suggests` when the suggested generator happens
	// to be present. It orders execution but never propagates failure.
	SoftEdge
)

// Edge is one directed dependency: To depends on From.
type Edge struct {
	From *Node
	To   *Node
	Kind EdgeKind
}

// Node is one configured generator instance in the validated graph.
type Node struct {
	// ID is the canonical address "<generator_id>.<instance_name>".
	ID string
	// Index is the declaration position in the blueprint, used as the
	// deterministic topological tie-breaker.
	Index int
	// Spec is the node's blueprint block.
	Spec *config.Node
	// Def is the generator definition backing this node.
	Def *config.GeneratorDefinition

	// Deps and Dependents are keyed by the far node's ID.
	Deps       map[string]*Edge
	Dependents map[string]*Edge
}

// Graph is a validated, ordered blueprint graph. It is immutable after
// Validate returns; execution state lives in the executor, not here.
type Graph struct {
	Nodes map[string]*Node
	// Order is the deterministic topological execution order.
	Order []*Node
	// Presence is the set of generator ids present in the graph.
	Presence routing.Presence
}

// addEdge links dep -> node, keeping the strongest kind when the same pair
// is linked more than once.
func addEdge(dep, node *Node, kind EdgeKind) {
	if existing, ok := node.Deps[dep.ID]; ok {
		if kind == HardEdge {
			existing.Kind = HardEdge
		}
		return
	}
	e := &Edge{From: dep, To: node, Kind: kind}
	node.Deps[dep.ID] = e
	dep.Dependents[node.ID] = e
}
