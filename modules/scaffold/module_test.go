package scaffold

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/routing"
)

func testContext() *codegen.ExecutionContext {
	return codegen.NewExecutionContext("run", "scaffold.base", routing.NewPresence("scaffold"), slog.Default(), nil)
}

func TestOnGenerateScaffold(t *testing.T) {
	out, err := OnGenerateScaffold(context.Background(), &Config{ProjectName: "my-dapp"}, testContext())
	require.NoError(t, err)

	byPath := make(map[string]string, len(out.Files))
	for _, f := range out.Files {
		byPath[f.Path] = f.Content
	}

	require.Contains(t, byPath, "package.json")
	assert.Contains(t, byPath["package.json"], `"name": "my-dapp"`)
	require.Contains(t, byPath, "README.md")
	assert.Contains(t, byPath["README.md"], "# my-dapp")
	assert.Contains(t, byPath["README.md"], "npm install")
	assert.Contains(t, byPath, ".gitignore")

	require.Len(t, out.Scripts, 1)
	assert.Equal(t, "npm run start", out.Scripts[0].Command)

	name, ok := out.Ports["project_name"]
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("my-dapp"), name)
}

func TestOnGenerateScaffold_CustomPackageManager(t *testing.T) {
	out, err := OnGenerateScaffold(context.Background(), &Config{ProjectName: "p", PackageMgr: "pnpm"}, testContext())
	require.NoError(t, err)

	require.Len(t, out.Scripts, 1)
	assert.Equal(t, "pnpm run start", out.Scripts[0].Command)
}
