package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/hcl"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// --- test generator units ---

type baseModule struct{}

type baseConfig struct {
	ProjectName string `mosaic:"project_name"`
}

func (m *baseModule) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateBase", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(baseConfig) },
		ConfigType: reflect.TypeOf(baseConfig{}),
		Fn: func(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
			c := cfg.(*baseConfig)
			out := codegen.NewOutput()
			out.AddFile("package.json", `{"name": "`+c.ProjectName+`", "scripts": {}}`)
			out.AddScript("dev", "vite")
			out.SetPort("project_name", cty.StringVal(c.ProjectName))
			return out, nil
		},
	})
}

type widgetModule struct{}

func (m *widgetModule) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateWidget", &registry.RegisteredGenerator{
		Fn: func(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
			out := codegen.NewOutput()
			out.AddFile("Widget.tsx", "export const Widget = () => null;", "ui")
			out.AddEnvVar("API_KEY", "Widget API key.", codegen.EnvVarOptions{Required: true, Secret: true})
			out.AddScript("widget:check", "tsc --noEmit")
			out.AddDoc("widget.md", "Widget", "How the widget works.")
			return out, nil
		},
	})
}

type brokenModule struct{}

func (m *brokenModule) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateBroken", &registry.RegisteredGenerator{
		Fn: func(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
			return nil, errors.New("broken by construction")
		},
	})
}

type sidecarModule struct{}

func (m *sidecarModule) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateSidecar", &registry.RegisteredGenerator{
		Fn: func(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
			out := codegen.NewOutput()
			out.AddFile("sidecar.yaml", "kind: sidecar\n", "tooling")
			return out, nil
		},
	})
}

// --- fixtures ---

const baseManifest = `
generator "scaffold" {
  handler = "OnGenerateBase"

  config "project_name" {
    type = string
  }

  output "project_name" {
    type = string
  }
}
`

const widgetManifest = `
generator "widget" {
  handler  = "OnGenerateWidget"
  requires = ["scaffold"]
}
`

const brokenManifest = `
generator "broken" {
  handler = "OnGenerateBroken"
}
`

const sidecarManifest = `
generator "sidecar" {
  handler = "OnGenerateSidecar"
}
`

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func setupRun(t *testing.T, blueprint string, manifests map[string]string, modules ...registry.Module) (*App, *Config) {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "blueprint.hcl", blueprint)
	for name, content := range manifests {
		writeFixture(t, dir, filepath.Join("modules", name, "manifest.hcl"), content)
	}

	cfg := &Config{
		BlueprintPath: filepath.Join(dir, "blueprint.hcl"),
		ModulesPath:   filepath.Join(dir, "modules"),
		OutputDir:     filepath.Join(dir, "out"),
		WorkerCount:   4,
	}
	testApp, _ := SetupAppTest(t, cfg, hcl.NewLoader(), modules...)
	return testApp, cfg
}

// snapshotDir reads every file under root into a map keyed by slash-separated
// relative path.
func snapshotDir(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestRun_EndToEnd(t *testing.T) {
	blueprint := `
node "scaffold" "base" {
  config {
    project_name = "my-dapp"
  }
}

node "widget" "w" {}
`
	manifests := map[string]string{
		"scaffold": baseManifest,
		"widget":   widgetManifest,
	}
	testApp, cfg := setupRun(t, blueprint, manifests, &baseModule{}, &widgetModule{})

	require.NoError(t, testApp.Run(context.Background(), cfg))

	// Scaffold marker routes ui output under app/ui.
	widget, err := os.ReadFile(filepath.Join(cfg.OutputDir, "app/ui/Widget.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(widget), "Widget")

	// Scripts from both nodes merged into the root package manifest.
	pkg, err := os.ReadFile(filepath.Join(cfg.OutputDir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(pkg), `"name": "my-dapp"`)
	assert.Contains(t, string(pkg), `"dev": "vite"`)
	assert.Contains(t, string(pkg), `"widget:check": "tsc --noEmit"`)

	// Aggregated env file and docs index.
	env, err := os.ReadFile(filepath.Join(cfg.OutputDir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "API_KEY=")

	docs, err := os.ReadFile(filepath.Join(cfg.OutputDir, "docs/README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(docs), "## [Widget](widget.md)")

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "docs/widget.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "How the widget works.")
}

func TestRun_RepeatRunsProduceIdenticalTrees(t *testing.T) {
	blueprint := `
node "scaffold" "base" {
  config {
    project_name = "my-dapp"
  }
}

node "widget" "w" {}

node "sidecar" "s1" {}

node "sidecar" "s2" {}
`
	manifests := map[string]string{
		"scaffold": baseManifest,
		"widget":   widgetManifest,
		"sidecar":  sidecarManifest,
	}
	testApp, cfg := setupRun(t, blueprint, manifests,
		&baseModule{}, &widgetModule{}, &sidecarModule{})

	require.NoError(t, testApp.Run(context.Background(), cfg))
	first := snapshotDir(t, cfg.OutputDir)

	for i := 0; i < 5; i++ {
		rerun := *cfg
		rerun.OutputDir = filepath.Join(t.TempDir(), "out")
		require.NoError(t, testApp.Run(context.Background(), &rerun))
		assert.Equal(t, first, snapshotDir(t, rerun.OutputDir))
	}
}

func TestRun_UnrelatedSiblingLeavesOutputUntouched(t *testing.T) {
	base := `
node "scaffold" "base" {
  config {
    project_name = "my-dapp"
  }
}

node "widget" "w" {}
`
	withSibling := base + `
node "sidecar" "s" {}
`
	manifests := map[string]string{
		"scaffold": baseManifest,
		"widget":   widgetManifest,
		"sidecar":  sidecarManifest,
	}

	withoutApp, withoutCfg := setupRun(t, base, manifests,
		&baseModule{}, &widgetModule{}, &sidecarModule{})
	require.NoError(t, withoutApp.Run(context.Background(), withoutCfg))
	before := snapshotDir(t, withoutCfg.OutputDir)

	withApp, withCfg := setupRun(t, withSibling, manifests,
		&baseModule{}, &widgetModule{}, &sidecarModule{})
	require.NoError(t, withApp.Run(context.Background(), withCfg))
	after := snapshotDir(t, withCfg.OutputDir)

	// The sibling adds its own file and changes nothing else: every path the
	// smaller graph produced keeps its location and its exact content.
	for path, content := range before {
		assert.Equal(t, content, after[path], "path %s changed when an unrelated sibling was added", path)
	}
	assert.Contains(t, after, "tooling/sidecar.yaml")
	assert.Len(t, after, len(before)+1)
}

func TestRun_PartialFailureStillMaterializes(t *testing.T) {
	blueprint := `
node "scaffold" "base" {
  config {
    project_name = "my-dapp"
  }
}

node "broken" "b" {}
`
	manifests := map[string]string{
		"scaffold": baseManifest,
		"broken":   brokenManifest,
	}
	testApp, cfg := setupRun(t, blueprint, manifests, &baseModule{}, &brokenModule{})

	err := testApp.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 failed")

	// The healthy branch's output is still on disk.
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "package.json"))
	assert.NoError(t, statErr)
}

func TestRun_ValidationFailureProducesNothing(t *testing.T) {
	blueprint := `
node "widget" "w" {}
`
	// widget requires scaffold, which is absent.
	manifests := map[string]string{
		"scaffold": baseManifest,
		"widget":   widgetManifest,
	}
	testApp, cfg := setupRun(t, blueprint, manifests, &baseModule{}, &widgetModule{})

	err := testApp.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "no partial output on validation failure")
}

func TestRun_ExportDotOnly(t *testing.T) {
	blueprint := `
node "scaffold" "base" {
  config {
    project_name = "my-dapp"
  }
}
`
	manifests := map[string]string{"scaffold": baseManifest}
	testApp, cfg := setupRun(t, blueprint, manifests, &baseModule{})
	cfg.OutputDir = ""
	cfg.ExportDotPath = filepath.Join(t.TempDir(), "graph.dot")

	require.NoError(t, testApp.Run(context.Background(), cfg))

	dot, err := os.ReadFile(cfg.ExportDotPath)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph")
}

func TestNewConfig(t *testing.T) {
	t.Run("requires a blueprint path", func(t *testing.T) {
		_, err := NewConfig(Config{OutputDir: "out"})
		require.Error(t, err)
	})

	t.Run("requires at least one output target", func(t *testing.T) {
		_, err := NewConfig(Config{BlueprintPath: "b.hcl"})
		require.Error(t, err)
	})

	t.Run("archive alone is enough", func(t *testing.T) {
		cfg, err := NewConfig(Config{BlueprintPath: "b.hcl", ArchivePath: "p.zip"})
		require.NoError(t, err)
		assert.Equal(t, "p.zip", cfg.ArchivePath)
	})
}
