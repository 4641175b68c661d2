package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicgen/mosaic/internal/config"
)

func orderIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Order))
	for _, n := range g.Order {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestTopologicalOrder_RespectsEdges(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{
		"scaffold": defWith(nil, nil),
		"erc20":    defWith([]string{"scaffold"}, nil),
		"chainui":  defWith([]string{"scaffold"}, nil),
	}
	model, reg := testModel(t, defs,
		&config.Node{GeneratorID: "erc20", Name: "token"},
		&config.Node{GeneratorID: "scaffold", Name: "base"},
		&config.Node{GeneratorID: "chainui", Name: "ui"},
	)

	g, err := Validate(context.Background(), model, reg)
	require.NoError(t, err)

	ids := orderIDs(g)
	require.Len(t, ids, 3)
	assert.Equal(t, "scaffold.base", ids[0])

	pos := make(map[string]int)
	for i, id := range ids {
		pos[id] = i
	}
	assert.Less(t, pos["scaffold.base"], pos["erc20.token"])
	assert.Less(t, pos["scaffold.base"], pos["chainui.ui"])
}

func TestTopologicalOrder_TieBreakByDeclaration(t *testing.T) {
	// Three independent nodes: the only valid orders are all permutations,
	// so the tie-break must pin the declared order.
	defs := map[string]*config.GeneratorDefinition{
		"a": defWith(nil, nil),
		"b": defWith(nil, nil),
		"c": defWith(nil, nil),
	}
	model, reg := testModel(t, defs,
		&config.Node{GeneratorID: "b", Name: "x"},
		&config.Node{GeneratorID: "c", Name: "x"},
		&config.Node{GeneratorID: "a", Name: "x"},
	)

	g, err := Validate(context.Background(), model, reg)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.x", "c.x", "a.x"}, orderIDs(g))
}

func TestTopologicalOrder_DeterministicAcrossRuns(t *testing.T) {
	defs := map[string]*config.GeneratorDefinition{
		"scaffold":   defWith(nil, nil),
		"erc20":      defWith([]string{"scaffold"}, nil),
		"erc721":     defWith([]string{"scaffold"}, nil),
		"walletauth": defWith([]string{"scaffold"}, []string{"chainui"}),
		"chainui":    defWith([]string{"scaffold"}, nil),
	}
	nodes := []*config.Node{
		{GeneratorID: "scaffold", Name: "base"},
		{GeneratorID: "erc721", Name: "nft"},
		{GeneratorID: "erc20", Name: "token"},
		{GeneratorID: "chainui", Name: "ui"},
		{GeneratorID: "walletauth", Name: "auth"},
	}

	var first []string
	for i := 0; i < 20; i++ {
		model, reg := testModel(t, defs, nodes...)
		g, err := Validate(context.Background(), model, reg)
		require.NoError(t, err)
		if first == nil {
			first = orderIDs(g)
			continue
		}
		assert.Equal(t, first, orderIDs(g))
	}
}

func TestAddEdge_KeepsStrongestKind(t *testing.T) {
	a := &Node{ID: "a", Deps: map[string]*Edge{}, Dependents: map[string]*Edge{}}
	b := &Node{ID: "b", Deps: map[string]*Edge{}, Dependents: map[string]*Edge{}}

	addEdge(a, b, SoftEdge)
	assert.Equal(t, SoftEdge, b.Deps["a"].Kind)

	addEdge(a, b, HardEdge)
	assert.Equal(t, HardEdge, b.Deps["a"].Kind)
	assert.Len(t, b.Deps, 1)

	// A later soft link never weakens an existing hard edge.
	addEdge(a, b, SoftEdge)
	assert.Equal(t, HardEdge, b.Deps["a"].Kind)
}
