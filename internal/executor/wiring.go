package executor

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// wireInputs evaluates the node's wire block against the outputs of already
// completed upstream nodes and returns the values for its input ports. This
// is the only inter-node communication channel: generators never observe
// each other's state directly.
func (e *Executor) wireInputs(ctx context.Context, nr *nodeRun) (map[string]cty.Value, error) {
	if len(nr.node.Spec.Wires) == 0 {
		return nil, nil
	}

	evalCtx := e.buildEvalContext(ctx)
	inputs := make(map[string]cty.Value, len(nr.node.Spec.Wires))

	for portName, expr := range nr.node.Spec.Wires {
		port := nr.node.Def.Inputs[portName] // declared; validated by graph.Validate

		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("node '%s': failed to evaluate wire for input '%s': %w", nr.node.ID, portName, diags)
		}
		converted, err := convert.Convert(val, port.Type)
		if err != nil {
			return nil, fmt.Errorf("node '%s': wire for input '%s': cannot convert %s to %s",
				nr.node.ID, portName, val.Type().FriendlyName(), port.Type.FriendlyName())
		}
		inputs[portName] = converted
	}
	return inputs, nil
}

// buildEvalContext exposes every completed node's output ports under the
// `node` variable, as node.<generator_id>.<instance_name>.<port>.
func (e *Executor) buildEvalContext(ctx context.Context) *hcl.EvalContext {
	logger := ctxlog.FromContext(ctx)

	// map[generator_id] -> map[instance_name] -> object of port values
	byGenerator := make(map[string]map[string]cty.Value)

	for _, nr := range e.states {
		if NodeState(nr.state.Load()) != Done || nr.output == nil {
			continue
		}
		ports := make(map[string]cty.Value, len(nr.node.Def.Outputs))
		for name, port := range nr.node.Def.Outputs {
			if val, ok := nr.output.Ports[name]; ok {
				ports[name] = val
			} else {
				ports[name] = cty.NullVal(port.Type)
			}
		}
		if len(ports) == 0 {
			continue
		}

		genID := nr.node.Spec.GeneratorID
		if _, ok := byGenerator[genID]; !ok {
			byGenerator[genID] = make(map[string]cty.Value)
		}
		byGenerator[genID][nr.node.Spec.Name] = cty.ObjectVal(ports)
	}

	nodeVars := make(map[string]cty.Value, len(byGenerator))
	for genID, instances := range byGenerator {
		nodeVars[genID] = cty.ObjectVal(instances)
	}
	logger.Debug("Built wire evaluation context.", "generators_with_outputs", len(nodeVars))

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"node": cty.ObjectVal(nodeVars),
		},
	}
}
