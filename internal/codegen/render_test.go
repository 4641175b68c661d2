package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("substitutes parameters", func(t *testing.T) {
		out, err := RenderTemplate("t", "Hello {{.Name}}!", map[string]any{"Name": "world"})
		require.NoError(t, err)
		assert.Equal(t, "Hello world!", out)
	})

	t.Run("missing parameter is an error", func(t *testing.T) {
		_, err := RenderTemplate("t", "{{.Missing}}", map[string]any{})
		require.Error(t, err)
	})

	t.Run("parse error names the template", func(t *testing.T) {
		_, err := RenderTemplate("broken", "{{.Open", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestOutputAccumulator(t *testing.T) {
	out := NewOutput()
	out.AddFile("src/lib.rs", "content", "contracts")
	out.AddFile("README.md", "readme")
	out.AddEnvVar("RPC_URL", "endpoint", EnvVarOptions{Required: true})
	out.AddScript("deploy", "cargo stylus deploy", "Deploy the contract.")
	out.AddDoc("guide.md", "Guide", "body")

	require.Len(t, out.Files, 2)
	assert.Equal(t, "contracts", out.Files[0].Category)
	assert.Empty(t, out.Files[1].Category)
	require.Len(t, out.EnvVars, 1)
	assert.True(t, out.EnvVars[0].Required)
	require.Len(t, out.Scripts, 1)
	assert.Equal(t, "Deploy the contract.", out.Scripts[0].Description)
	require.Len(t, out.Docs, 1)
}
