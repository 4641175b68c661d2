package graph

import "sort"

// detectCycles checks for circular dependencies using DFS and reports the
// full cycle path when one exists. Soft edges participate too: any ordering
// constraint can make a topological order impossible.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var stack []string

	var visit func(n *Node) error
	visit = func(n *Node) error {
		visiting[n.ID] = true
		stack = append(stack, n.ID)

		for _, depID := range sortedEdgeKeys(n.Deps) {
			dep := n.Deps[depID].From
			if visiting[dep.ID] {
				return &CyclicDependencyError{Cycle: cycleFrom(stack, dep.ID)}
			}
			if !visited[dep.ID] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(visiting, n.ID)
		visited[n.ID] = true
		return nil
	}

	for _, n := range g.nodesByIndex() {
		if !visited[n.ID] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleFrom trims the DFS stack to the portion forming the cycle and closes
// it with the repeated node.
func cycleFrom(stack []string, repeated string) []string {
	for i, id := range stack {
		if id == repeated {
			cycle := append([]string{}, stack[i:]...)
			return append(cycle, repeated)
		}
	}
	return append([]string{}, repeated)
}

// topologicalOrder produces the deterministic execution order: Kahn's
// algorithm, breaking ties by blueprint declaration index so identical
// blueprints always yield identical orders. Must only be called on an
// acyclic graph.
func (g *Graph) topologicalOrder() []*Node {
	pending := make(map[string]int, len(g.Nodes))
	var ready []*Node
	for _, n := range g.Nodes {
		pending[n.ID] = len(n.Deps)
		if len(n.Deps) == 0 {
			ready = append(ready, n)
		}
	}

	order := make([]*Node, 0, len(g.Nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].Index < ready[j].Index })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, depID := range sortedEdgeKeys(next.Dependents) {
			dependent := next.Dependents[depID].To
			pending[dependent.ID]--
			if pending[dependent.ID] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	return order
}

// nodesByIndex returns all nodes sorted by declaration index.
func (g *Graph) nodesByIndex() []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Index < nodes[j].Index })
	return nodes
}

func sortedEdgeKeys(edges map[string]*Edge) []string {
	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
