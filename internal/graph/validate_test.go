package graph

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// testModel assembles a model and registry from shorthand definitions.
func testModel(t *testing.T, defs map[string]*config.GeneratorDefinition, nodes ...*config.Node) (*config.Model, *registry.Registry) {
	t.Helper()
	model := &config.Model{
		Generators: defs,
		Blueprint:  &config.Blueprint{Nodes: nodes},
	}
	reg := registry.New()
	reg.PopulateDefinitionsFromModel(model)
	return model, reg
}

func defWith(requires, suggests []string) *config.GeneratorDefinition {
	return &config.GeneratorDefinition{Requires: requires, Suggests: suggests}
}

func TestValidate_RequiresCreatesHardEdges(t *testing.T) {
	model, reg := testModel(t,
		map[string]*config.GeneratorDefinition{
			"scaffold": defWith(nil, nil),
			"erc20":    defWith([]string{"scaffold"}, nil),
		},
		&config.Node{GeneratorID: "scaffold", Name: "base"},
		&config.Node{GeneratorID: "erc20", Name: "token"},
	)

	g, err := Validate(context.Background(), model, reg)
	require.NoError(t, err)

	token := g.Nodes["erc20.token"]
	require.NotNil(t, token)
	edge, ok := token.Deps["scaffold.base"]
	require.True(t, ok)
	assert.Equal(t, HardEdge, edge.Kind)
	assert.True(t, g.Presence.Has("scaffold"))
	assert.True(t, g.Presence.Has("erc20"))
}

func TestValidate_MissingRequirement(t *testing.T) {
	model, reg := testModel(t,
		map[string]*config.GeneratorDefinition{
			"erc20": defWith([]string{"scaffold"}, nil),
		},
		&config.Node{GeneratorID: "erc20", Name: "token"},
	)

	g, err := Validate(context.Background(), model, reg)
	require.Error(t, err)
	assert.Nil(t, g)

	var missingErr *MissingDependencyError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "erc20.token", missingErr.NodeID)
	assert.Equal(t, "scaffold", missingErr.Missing)
}

func TestValidate_SuggestsIsSoftAndOptional(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{
		"chainui":    defWith(nil, nil),
		"walletauth": defWith(nil, []string{"chainui"}),
	}

	t.Run("suggested generator absent is not an error", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "walletauth", Name: "auth"},
		)
		g, err := Validate(context.Background(), model, reg)
		require.NoError(t, err)
		assert.Empty(t, g.Nodes["walletauth.auth"].Deps)
	})

	t.Run("suggested generator present adds a soft edge", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "chainui", Name: "ui"},
			&config.Node{GeneratorID: "walletauth", Name: "auth"},
		)
		g, err := Validate(context.Background(), model, reg)
		require.NoError(t, err)
		edge, ok := g.Nodes["walletauth.auth"].Deps["chainui.ui"]
		require.True(t, ok)
		assert.Equal(t, SoftEdge, edge.Kind)
	})
}

func TestValidate_CycleDetection(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{
		"a": defWith(nil, nil),
		"b": defWith(nil, nil),
		"c": defWith(nil, nil),
	}
	model, reg := testModel(t, defs,
		&config.Node{GeneratorID: "a", Name: "x", DependsOn: []string{"c.x"}},
		&config.Node{GeneratorID: "b", Name: "x", DependsOn: []string{"a.x"}},
		&config.Node{GeneratorID: "c", Name: "x", DependsOn: []string{"b.x"}},
	)

	g, err := Validate(context.Background(), model, reg)
	require.Error(t, err)
	assert.Nil(t, g)

	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	// The cycle closes on its first node and names all three participants.
	assert.Len(t, cycleErr.Cycle, 4)
	assert.Equal(t, cycleErr.Cycle[0], cycleErr.Cycle[len(cycleErr.Cycle)-1])
	assert.ElementsMatch(t, []string{"a.x", "b.x", "c.x"}, cycleErr.Cycle[:3])
}

func TestValidate_SoftEdgeCanFormCycle(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{
		"a": defWith(nil, []string{"b"}),
		"b": defWith([]string{"a"}, nil),
	}
	model, reg := testModel(t, defs,
		&config.Node{GeneratorID: "a", Name: "x"},
		&config.Node{GeneratorID: "b", Name: "x"},
	)

	_, err := Validate(context.Background(), model, reg)
	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
}

func TestValidate_DuplicateNodeAddress(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{"a": defWith(nil, nil)}
	model, reg := testModel(t, defs,
		&config.Node{GeneratorID: "a", Name: "x"},
		&config.Node{GeneratorID: "a", Name: "x"},
	)

	_, err := Validate(context.Background(), model, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node definition 'a.x'")
}

func TestValidate_UnknownGenerator(t *testing.T) {
	model, reg := testModel(t, map[string]*config.GeneratorDefinition{},
		&config.Node{GeneratorID: "ghost", Name: "x"},
	)

	_, err := Validate(context.Background(), model, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generator 'ghost'")
}

func TestValidate_WireEdges(t *testing.T) {
	parseExpr := func(t *testing.T, src string) hcl.Expression {
		t.Helper()
		expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
		require.False(t, diags.HasErrors(), diags.Error())
		return expr
	}

	defs := map[string]*config.GeneratorDefinition{
		"scaffold": {
			Outputs: map[string]*config.Port{"project_name": {Name: "project_name", Type: cty.String}},
		},
		"erc20": {
			Inputs: map[string]*config.Port{"project_name": {Name: "project_name", Type: cty.String}},
		},
	}

	t.Run("wire traversal becomes a hard edge", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "scaffold", Name: "base"},
			&config.Node{GeneratorID: "erc20", Name: "token", Wires: map[string]hcl.Expression{
				"project_name": parseExpr(t, "node.scaffold.base.project_name"),
			}},
		)
		g, err := Validate(context.Background(), model, reg)
		require.NoError(t, err)
		edge, ok := g.Nodes["erc20.token"].Deps["scaffold.base"]
		require.True(t, ok)
		assert.Equal(t, HardEdge, edge.Kind)
	})

	t.Run("undeclared input port is rejected", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "scaffold", Name: "base"},
			&config.Node{GeneratorID: "erc20", Name: "token", Wires: map[string]hcl.Expression{
				"nope": parseExpr(t, "node.scaffold.base.project_name"),
			}},
		)
		_, err := Validate(context.Background(), model, reg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared input port 'nope'")
	})

	t.Run("undeclared output port is rejected", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "scaffold", Name: "base"},
			&config.Node{GeneratorID: "erc20", Name: "token", Wires: map[string]hcl.Expression{
				"project_name": parseExpr(t, "node.scaffold.base.ghost_port"),
			}},
		)
		_, err := Validate(context.Background(), model, reg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared output 'ghost_port'")
	})

	t.Run("wire to unknown node is a missing dependency", func(t *testing.T) {
		model, reg := testModel(t, defs,
			&config.Node{GeneratorID: "erc20", Name: "token", Wires: map[string]hcl.Expression{
				"project_name": parseExpr(t, "node.scaffold.base.project_name"),
			}},
		)
		_, err := Validate(context.Background(), model, reg)
		var missingErr *MissingDependencyError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "scaffold.base", missingErr.Missing)
	})
}
