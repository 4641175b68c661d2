package graph

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/registry"
	"github.com/mosaicgen/mosaic/internal/routing"
)

// Validate constructs a complete, validated dependency graph from the
// blueprint. Checks run in order: every requirement resolves, the dependency
// edges are acyclic, and a deterministic topological order exists. Validate
// is pure over its inputs; it performs no side effects beyond logging.
func Validate(ctx context.Context, model *config.Model, reg *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validate: starting graph construction.")

	g := &Graph{
		Nodes:    make(map[string]*Node),
		Presence: routing.NewPresence(),
	}

	// First pass: create all nodes in declaration order.
	for i, spec := range model.Blueprint.Nodes {
		def, ok := reg.Definition(spec.GeneratorID)
		if !ok {
			return nil, fmt.Errorf("node '%s' references unknown generator '%s'", spec.Address(), spec.GeneratorID)
		}
		id := spec.Address()
		if _, exists := g.Nodes[id]; exists {
			return nil, fmt.Errorf("duplicate node definition '%s'", id)
		}
		g.Nodes[id] = &Node{
			ID:         id,
			Index:      i,
			Spec:       spec,
			Def:        def,
			Deps:       make(map[string]*Edge),
			Dependents: make(map[string]*Edge),
		}
		g.Presence[spec.GeneratorID] = struct{}{}
	}
	logger.Debug("Validate: node creation complete.", "node_count", len(g.Nodes))

	// Second pass: link dependency edges.
	byGenerator := make(map[string][]*Node)
	for _, n := range g.Nodes {
		byGenerator[n.Spec.GeneratorID] = append(byGenerator[n.Spec.GeneratorID], n)
	}
	for _, n := range g.Nodes {
		if err := linkNode(ctx, n, g, byGenerator); err != nil {
			return nil, err
		}
	}
	logger.Debug("Validate: node linking complete.")

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	logger.Debug("Validate: cycle detection passed.")

	g.Order = g.topologicalOrder()
	logger.Debug("Validate: graph construction successful.", "order_length", len(g.Order))
	return g, nil
}

// linkNode establishes all dependency edges for one node.
func linkNode(ctx context.Context, n *Node, g *Graph, byGenerator map[string][]*Node) error {
	logger := ctxlog.FromContext(ctx).With("node_id", n.ID)

	// requires: hard edges to every node of the required generator id.
	for _, genID := range n.Def.Requires {
		targets := byGenerator[genID]
		if len(targets) == 0 {
			return &MissingDependencyError{NodeID: n.ID, Missing: genID}
		}
		for _, target := range targets {
			if target == n {
				continue
			}
			logger.Debug("Linking required dependency.", "to", target.ID)
			addEdge(target, n, HardEdge)
		}
	}

	// suggests: soft ordering edges only when the suggested generator is
	// actually present. Absence is not an error.
	for _, genID := range n.Def.Suggests {
		for _, target := range byGenerator[genID] {
			if target == n {
				continue
			}
			logger.Debug("Linking suggested ordering edge.", "to", target.ID)
			addEdge(target, n, SoftEdge)
		}
	}

	// depends_on: explicit hard edges by node address.
	for _, addr := range n.Spec.DependsOn {
		target, ok := g.Nodes[addr]
		if !ok {
			return &MissingDependencyError{NodeID: n.ID, Missing: addr}
		}
		if target == n {
			return fmt.Errorf("node '%s' cannot depend on itself", n.ID)
		}
		logger.Debug("Linking explicit dependency.", "to", target.ID)
		addEdge(target, n, HardEdge)
	}

	// wire mappings: hard edges derived from node.<gen>.<name>.<port>
	// expressions; also validates the referenced output port is declared.
	for portName, expr := range n.Spec.Wires {
		if _, declared := n.Def.Inputs[portName]; !declared {
			return fmt.Errorf("node '%s' wires undeclared input port '%s'", n.ID, portName)
		}
		for _, traversal := range expr.Variables() {
			ref, ok := parseNodeTraversal(traversal)
			if !ok {
				continue
			}
			target, found := g.Nodes[ref.NodeID]
			if !found {
				return &MissingDependencyError{NodeID: n.ID, Missing: ref.NodeID}
			}
			if target == n {
				return fmt.Errorf("node '%s' cannot wire a port to itself", n.ID)
			}
			if ref.Port != "" {
				if _, ok := target.Def.Outputs[ref.Port]; !ok {
					return fmt.Errorf("node '%s' references undeclared output '%s' on node '%s'", n.ID, ref.Port, target.ID)
				}
			}
			logger.Debug("Linking wire dependency.", "to", target.ID, "port", ref.Port)
			addEdge(target, n, HardEdge)
		}
	}

	return nil
}

// nodeRef is a parsed reference to another node's output port.
type nodeRef struct {
	NodeID string
	Port   string
}

// parseNodeTraversal analyzes an HCL traversal of the form
// node.<generator_id>.<instance_name>.<output_port>.
func parseNodeTraversal(traversal hcl.Traversal) (*nodeRef, bool) {
	if len(traversal) < 3 || traversal.RootName() != "node" {
		return nil, false
	}
	genAttr, genOk := traversal[1].(hcl.TraverseAttr)
	nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
	if !genOk || !nameOk {
		return nil, false
	}
	ref := &nodeRef{NodeID: genAttr.Name + "." + nameAttr.Name}
	if len(traversal) > 3 {
		if portAttr, ok := traversal[3].(hcl.TraverseAttr); ok {
			ref.Port = portAttr.Name
		}
	}
	return ref, true
}
