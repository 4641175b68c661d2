package executor

import (
	"context"

	"github.com/mosaicgen/mosaic/internal/ctxlog"
)

// worker is the processing loop for a single concurrent worker. A node's
// failure never cancels the run: independent branches keep executing and
// the run completes with a partial-success report.
func (e *Executor) worker(ctx context.Context, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "worker_id", workerID)

	for nr := range e.ready {
		workerLogger := logger.With("worker_id", workerID, "node_id", nr.node.ID)

		if !nr.state.CompareAndSwap(int32(Pending), int32(Running)) {
			// Lost the race against a skip cascade; the node already settled.
			continue
		}

		if ctx.Err() != nil {
			workerLogger.Warn("Run cancelled, failing node without invocation.")
			nr.err = ctx.Err()
			nr.state.Store(int32(Failed))
			e.settleDependents(ctx, nr, true)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Worker picked up node for generation.")
		output, err := e.invoke(ctx, nr)
		if err != nil {
			workerLogger.Error("Node generation failed.", "error", err)
			nr.err = err
			nr.state.Store(int32(Failed))
			e.settleDependents(ctx, nr, true)
			e.wg.Done()
			continue
		}

		nr.output = output
		nr.state.Store(int32(Done))
		workerLogger.Debug("Node generation succeeded.",
			"files", len(output.Files),
			"env_vars", len(output.EnvVars),
			"scripts", len(output.Scripts),
		)
		e.settleDependents(ctx, nr, false)
		e.wg.Done()
	}
	logger.Debug("Worker finished.", "worker_id", workerID)
}
