package dot

import (
	"context"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/graph"
	"github.com/mosaicgen/mosaic/internal/registry"
)

func TestExport(t *testing.T) {
	model := &config.Model{
		Generators: map[string]*config.GeneratorDefinition{
			"scaffold":   {},
			"erc20":      {Requires: []string{"scaffold"}},
			"walletauth": {Suggests: []string{"erc20"}},
		},
		Blueprint: &config.Blueprint{Nodes: []*config.Node{
			{GeneratorID: "scaffold", Name: "base"},
			{GeneratorID: "erc20", Name: "token"},
			{GeneratorID: "walletauth", Name: "auth"},
		}},
	}
	reg := registry.New()
	reg.PopulateDefinitionsFromModel(model)

	g, err := graph.Validate(context.Background(), model, reg)
	require.NoError(t, err)

	out, err := Export(g)
	require.NoError(t, err)

	// Round-trip through the parser: the export must be valid DOT.
	ast, err := gographviz.ParseString(out)
	require.NoError(t, err)
	parsed := gographviz.NewGraph()
	require.NoError(t, gographviz.Analyse(ast, parsed))

	assert.True(t, parsed.Directed)
	assert.Len(t, parsed.Nodes.Nodes, 3)
	require.Len(t, parsed.Edges.Edges, 2)

	styles := make(map[string]string, 2)
	for _, e := range parsed.Edges.Edges {
		styles[e.Src+"->"+e.Dst] = e.Attrs["style"]
	}
	// The requires edge is solid, the suggests edge dashed.
	require.Contains(t, styles, `"scaffold.base"->"erc20.token"`)
	assert.Empty(t, styles[`"scaffold.base"->"erc20.token"`])
	require.Contains(t, styles, `"erc20.token"->"walletauth.auth"`)
	assert.Equal(t, "dashed", styles[`"erc20.token"->"walletauth.auth"`])
}
