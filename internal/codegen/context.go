package codegen

import (
	"context"
	"log/slog"

	"github.com/mosaicgen/mosaic/internal/routing"
	"github.com/zclconf/go-cty/cty"
)

// ExecutionContext is the read-only view a generator receives for one
// invocation. A generator must not retain it past the call and has no other
// channel to the rest of the run.
type ExecutionContext struct {
	// RunID identifies the run for logging and tracing.
	RunID string
	// NodeID is the address of the node being generated.
	NodeID string
	// Presence is the full set of generator ids present in the graph,
	// used only for conditional routing decisions.
	Presence routing.Presence
	// Logger is the run logger scoped to this node.
	Logger *slog.Logger
	// inputs holds the values wired onto this node's input ports.
	inputs map[string]cty.Value
}

// NewExecutionContext assembles a per-node context. The inputs map is copied
// so the caller cannot mutate it after handing it over.
func NewExecutionContext(runID, nodeID string, presence routing.Presence, logger *slog.Logger, inputs map[string]cty.Value) *ExecutionContext {
	copied := make(map[string]cty.Value, len(inputs))
	for k, v := range inputs {
		copied[k] = v
	}
	return &ExecutionContext{
		RunID:    runID,
		NodeID:   nodeID,
		Presence: presence,
		Logger:   logger,
		inputs:   copied,
	}
}

// Input returns the value wired onto the named input port, if any.
func (ec *ExecutionContext) Input(name string) (cty.Value, bool) {
	v, ok := ec.inputs[name]
	return v, ok
}

// InputString returns the named input port as a Go string, or the fallback
// when the port is unwired or not a string.
func (ec *ExecutionContext) InputString(name, fallback string) string {
	v, ok := ec.inputs[name]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return fallback
	}
	return v.AsString()
}

// GenerateFunc is the contract every generator unit implements. cfg is the
// generator's own config struct, already decoded and schema-validated; the
// function returns an accumulator of everything the node contributes.
type GenerateFunc func(ctx context.Context, cfg any, ec *ExecutionContext) (*Output, error)
