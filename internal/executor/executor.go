package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/graph"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// NodeState tracks one node's lifecycle through a run.
type NodeState int32

const (
	Pending NodeState = iota
	Running
	Done
	Failed
	Skipped
)

// nodeRun is the executor-private runtime state for one graph node. The
// validated graph itself stays immutable.
type nodeRun struct {
	node     *graph.Node
	state    atomic.Int32
	depCount atomic.Int32

	// err and output are written before the terminal state is stored and
	// only read after, so the atomic state publish orders them.
	err    error
	output *codegen.Output
}

// Options configures one executor run.
type Options struct {
	RunID       string
	Workers     int
	NodeTimeout time.Duration
}

// Executor drives generator invocations over the validated graph. Nodes
// with no ordering constraint between them run concurrently; results are
// committed strictly in topological order regardless of completion order.
type Executor struct {
	graph       *graph.Graph
	registry    *registry.Registry
	runID       string
	numWorkers  int
	nodeTimeout time.Duration

	states map[string]*nodeRun
	wg     sync.WaitGroup
	ready  chan *nodeRun
}

// New creates an executor for one run over the given validated graph.
func New(g *graph.Graph, reg *registry.Registry, opts Options) *Executor {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Executor{
		graph:       g,
		registry:    reg,
		runID:       opts.RunID,
		numWorkers:  workers,
		nodeTimeout: opts.NodeTimeout,
	}
}

// Run executes every node and returns the per-node outputs in commit order
// plus the partial-success report. A non-nil error is returned only for
// run-level failures (cancellation); node-scoped failures are in the report.
func (e *Executor) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	e.states = make(map[string]*nodeRun, len(e.graph.Nodes))
	e.ready = make(chan *nodeRun, len(e.graph.Nodes))

	for _, n := range e.graph.Nodes {
		nr := &nodeRun{node: n}
		nr.depCount.Store(int32(len(n.Deps)))
		e.states[n.ID] = nr
	}

	rootCount := 0
	for _, n := range e.graph.Order {
		nr := e.states[n.ID]
		if nr.depCount.Load() == 0 {
			e.ready <- nr
			rootCount++
		}
	}
	logger.Debug("Executor initialized.", "nodes", len(e.states), "roots", rootCount, "workers", e.numWorkers)

	e.wg.Add(len(e.states))
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(ctx, i)
	}

	e.wg.Wait()
	close(e.ready)
	logger.Debug("All nodes settled.")

	if err := ctx.Err(); err != nil {
		// A cancelled run discards everything; nothing is ever partially
		// materialized.
		return nil, err
	}

	return e.collectResult(), nil
}

// settleDependents releases or skips downstream nodes after one node
// reaches a terminal state. Hard dependents of a failed node are skipped
// transitively; everything else just has its dependency counter released.
func (e *Executor) settleDependents(ctx context.Context, nr *nodeRun, failed bool) {
	for _, edge := range nr.node.Dependents {
		dependent := e.states[edge.To.ID]
		if failed && edge.Kind == graph.HardEdge {
			e.skip(ctx, dependent, nr.node.ID)
			continue
		}
		if dependent.depCount.Add(-1) == 0 {
			e.ready <- dependent
		}
	}
}

// skip marks a node Skipped because of an upstream failure and cascades to
// its own hard dependents. The compare-and-swap guarantees a node settles
// exactly once even when skip races with a worker pickup.
func (e *Executor) skip(ctx context.Context, nr *nodeRun, causeID string) {
	if !nr.state.CompareAndSwap(int32(Pending), int32(Skipped)) {
		return
	}
	logger := ctxlog.FromContext(ctx)
	logger.Warn("Skipping node due to upstream failure.", "node_id", nr.node.ID, "failed_dependency", causeID)
	nr.err = &SkippedError{NodeID: nr.node.ID, Cause: causeID}
	e.wg.Done()

	for _, edge := range nr.node.Dependents {
		dependent := e.states[edge.To.ID]
		if edge.Kind == graph.HardEdge {
			e.skip(ctx, dependent, causeID)
			continue
		}
		if dependent.depCount.Add(-1) == 0 {
			e.ready <- dependent
		}
	}
}

// collectResult walks the topological order and assembles the commit list
// and the run report. Using the validated order here, not completion order,
// is what makes merging deterministic under scheduling jitter.
func (e *Executor) collectResult() *Result {
	result := &Result{
		RunID: e.runID,
		Report: Report{
			Failed: make(map[string]error),
		},
	}
	for _, n := range e.graph.Order {
		nr := e.states[n.ID]
		switch NodeState(nr.state.Load()) {
		case Done:
			result.Committed = append(result.Committed, NodeOutput{Node: n, Output: nr.output})
			result.Report.Succeeded = append(result.Report.Succeeded, n.ID)
		case Failed:
			result.Report.Failed[n.ID] = nr.err
		case Skipped:
			result.Report.Skipped = append(result.Report.Skipped, n.ID)
		}
	}
	return result
}
