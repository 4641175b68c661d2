package graph

import (
	"fmt"
	"strings"
)

// MissingDependencyError reports a node whose `requires` list (or explicit
// depends_on / wire reference) names a generator or node that is not present
// in the blueprint. Graph-level and always fatal, raised before any
// generator runs.
type MissingDependencyError struct {
	NodeID  string
	Missing string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("node '%s' requires '%s', which is not present in the blueprint", e.NodeID, e.Missing)
}

// CyclicDependencyError reports a cycle in the dependency edges, naming the
// nodes on the cycle in traversal order. Graph-level and always fatal.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}
