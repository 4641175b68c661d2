// This file contains the logic for translating raw HCL schema structs into
// the format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateNode converts an HCL node block into the agnostic model.
func translateNode(n *schema.Node) (*config.Node, error) {
	node := &config.Node{
		GeneratorID: n.GeneratorID,
		Name:        n.Name,
		DependsOn:   n.DependsOn,
	}

	var err error
	if n.Config != nil {
		if node.Config, err = bodyAttributes(n.Config.Body); err != nil {
			return nil, fmt.Errorf("node '%s': invalid config block: %w", node.Address(), err)
		}
	}
	if n.Wire != nil {
		if node.Wires, err = bodyAttributes(n.Wire.Body); err != nil {
			return nil, fmt.Errorf("node '%s': invalid wire block: %w", node.Address(), err)
		}
	}
	return node, nil
}

// translateRoute converts an HCL route block into the agnostic model.
func translateRoute(r *schema.Route) *config.Route {
	return &config.Route{
		Category:    r.Category,
		WhenPresent: r.WhenPresent,
		WhenAbsent:  r.WhenAbsent,
		Dir:         r.Dir,
	}
}

// translateGeneratorDefinition converts an HCL generator manifest into the
// agnostic model, resolving type expressions and validating defaults.
func translateGeneratorDefinition(ctx context.Context, g *schema.GeneratorDefinition, filePath string) (*config.GeneratorDefinition, error) {
	def := &config.GeneratorDefinition{
		ID:             g.ID,
		Description:    g.Description,
		Handler:        g.Handler,
		Requires:       g.Requires,
		Suggests:       g.Suggests,
		CompatibleWith: g.CompatibleWith,
		TemplatesDir:   g.TemplatesDir,
		Dir:            filepath.Dir(filePath),
		Config:         make(map[string]*config.ConfigField),
		Inputs:         make(map[string]*config.Port),
		Outputs:        make(map[string]*config.Port),
	}

	for _, c := range g.Configs {
		field, err := translateConfigField(ctx, c, g.ID)
		if err != nil {
			return nil, err
		}
		if _, exists := def.Config[field.Name]; exists {
			return nil, fmt.Errorf("generator '%s': duplicate config field '%s'", g.ID, field.Name)
		}
		def.Config[field.Name] = field
	}

	for _, in := range g.Inputs {
		port, err := translatePort(ctx, in, g.ID, "input")
		if err != nil {
			return nil, err
		}
		def.Inputs[port.Name] = port
	}
	for _, out := range g.Outputs {
		port, err := translatePort(ctx, out, g.ID, "output")
		if err != nil {
			return nil, err
		}
		def.Outputs[port.Name] = port
	}

	for _, m := range g.PathMappings {
		if m.Pattern == "" || m.Category == "" {
			return nil, fmt.Errorf("generator '%s': path_mapping requires both pattern and category", g.ID)
		}
		def.PathMappings = append(def.PathMappings, &config.PathMapping{
			Pattern:  m.Pattern,
			Category: m.Category,
		})
	}

	return def, nil
}

// translateConfigField processes a single config block, handling its default
// value and type expression.
func translateConfigField(ctx context.Context, c *schema.ConfigFieldDefinition, generatorID string) (*config.ConfigField, error) {
	parsedType, err := typeExprToCtyType(ctx, c.Type)
	if err != nil {
		return nil, fmt.Errorf("generator '%s', config '%s': %w", generatorID, c.Name, err)
	}

	var defaultVal *cty.Value
	var optional bool
	if c.Default != nil && !c.Default.IsNull() {
		converted, err := convertValue(*c.Default, parsedType)
		if err != nil {
			return nil, fmt.Errorf("generator '%s', config '%s': default value does not match declared type: %w", generatorID, c.Name, err)
		}
		defaultVal = &converted
		optional = true
	}

	return &config.ConfigField{
		Name:        c.Name,
		Type:        parsedType,
		Description: c.Description,
		Default:     defaultVal,
		Optional:    optional,
	}, nil
}

// translatePort processes a single input or output port block.
func translatePort(ctx context.Context, p *schema.PortDefinition, generatorID, kind string) (*config.Port, error) {
	parsedType, err := typeExprToCtyType(ctx, p.Type)
	if err != nil {
		return nil, fmt.Errorf("generator '%s', %s '%s': %w", generatorID, kind, p.Name, err)
	}
	return &config.Port{
		Name:        p.Name,
		Type:        parsedType,
		Description: p.Description,
	}, nil
}

// bodyAttributes flattens an HCL body into a name -> expression map.
func bodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out, nil
}
