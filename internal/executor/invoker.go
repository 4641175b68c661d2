package executor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/statictpl"
	"github.com/zclconf/go-cty/cty/convert"
)

// invoke validates one node's configuration, wires its inputs, calls the
// generator function under the per-node timeout, and checks the declared
// output contract. Every failure is node-scoped.
func (e *Executor) invoke(ctx context.Context, nr *nodeRun) (*codegen.Output, error) {
	logger := ctxlog.FromContext(ctx).With("node_id", nr.node.ID)
	def := nr.node.Def

	handler, ok := e.registry.Handler(def)
	if !ok {
		// Startup registry validation makes this unreachable in practice.
		return nil, fmt.Errorf("generator '%s': handler '%s' not registered", def.ID, def.Handler)
	}

	values, err := codegen.ValidateConfig(nr.node.ID, nr.node.Spec.Config, def.Config)
	if err != nil {
		return nil, err
	}

	var cfg any
	if handler.NewConfig != nil {
		cfg = handler.NewConfig()
		if err := codegen.DecodeConfig(values, cfg); err != nil {
			return nil, fmt.Errorf("node '%s': %w", nr.node.ID, err)
		}
	}

	inputs, err := e.wireInputs(ctx, nr)
	if err != nil {
		return nil, err
	}

	ec := codegen.NewExecutionContext(e.runID, nr.node.ID, e.graph.Presence, logger, inputs)

	invCtx := ctx
	if e.nodeTimeout > 0 {
		var cancel context.CancelFunc
		invCtx, cancel = context.WithTimeout(ctx, e.nodeTimeout)
		defer cancel()
	}

	logger.Debug("Calling generator function.", "handler", def.Handler)
	output, err := callGenerator(invCtx, handler.Fn, cfg, ec)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &codegen.TimeoutError{NodeID: nr.node.ID, Limit: e.nodeTimeout}
		}
		return nil, &codegen.GenerationError{NodeID: nr.node.ID, Err: err}
	}
	if output == nil {
		output = codegen.NewOutput()
	}

	if err := e.checkOutputPorts(nr, output); err != nil {
		return nil, &codegen.GenerationError{NodeID: nr.node.ID, Err: err}
	}

	if def.TemplatesDir != "" {
		dir := filepath.Join(def.Dir, def.TemplatesDir)
		logger.Debug("Walking static template directory.", "dir", dir)
		if err := statictpl.Walk(dir, def.PathMappings, output); err != nil {
			return nil, &codegen.GenerationError{NodeID: nr.node.ID, Err: err}
		}
	}

	return output, nil
}

// generated carries a generator's return values across the timeout boundary.
type generated struct {
	output *codegen.Output
	err    error
}

// callGenerator invokes the generator function on its own goroutine so a
// handler that ignores its context still cannot outlive the node timeout.
// Panics inside the generator become ordinary errors.
func callGenerator(ctx context.Context, fn codegen.GenerateFunc, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	ch := make(chan generated, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- generated{err: fmt.Errorf("generator panicked: %v", r)}
			}
		}()
		out, err := fn(ctx, cfg, ec)
		ch <- generated{output: out, err: err}
	}()

	select {
	case res := <-ch:
		return res.output, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// checkOutputPorts enforces the declared output contract: every set port
// must be declared in the manifest and carry a convertible value.
func (e *Executor) checkOutputPorts(nr *nodeRun, output *codegen.Output) error {
	def := nr.node.Def
	for name, val := range output.Ports {
		port, declared := def.Outputs[name]
		if !declared {
			return fmt.Errorf("generator set undeclared output port '%s'", name)
		}
		converted, err := convert.Convert(val, port.Type)
		if err != nil {
			return fmt.Errorf("output port '%s': %w", name, err)
		}
		output.Ports[name] = converted
	}
	return nil
}
