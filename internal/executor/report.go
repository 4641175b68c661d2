package executor

import (
	"fmt"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/graph"
)

// NodeOutput pairs a completed node with its accumulated output.
type NodeOutput struct {
	Node   *graph.Node
	Output *codegen.Output
}

// Result is everything one executor run produced: the outputs of successful
// nodes in commit (topological) order, plus the run report.
type Result struct {
	RunID     string
	Committed []NodeOutput
	Report    Report
}

// Report enumerates the fate of every node in a run. Node ids appear in
// topological order within each list.
type Report struct {
	Succeeded []string
	Skipped   []string
	Failed    map[string]error
}

// FullySucceeded reports whether every node in the run completed.
func (r Report) FullySucceeded() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// SkippedError marks a node that was never invoked because a hard upstream
// dependency failed.
type SkippedError struct {
	NodeID string
	Cause  string
}

func (e *SkippedError) Error() string {
	return fmt.Sprintf("node '%s' skipped due to upstream failure of '%s'", e.NodeID, e.Cause)
}
