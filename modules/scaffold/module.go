package scaffold

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the configuration accepted by the scaffold generator.
type Config struct {
	ProjectName string `mosaic:"project_name"`
	PackageMgr  string `mosaic:"package_manager"`
}

// OnGenerateScaffold is the handler for the 'scaffold' generator. It lays
// down the project skeleton every other generator builds on top of.
func OnGenerateScaffold(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	c := cfg.(*Config)
	if c.PackageMgr == "" {
		c.PackageMgr = "npm"
	}
	ec.Logger.Debug("Scaffolding project skeleton.", "project", c.ProjectName)

	out := codegen.NewOutput()

	pkg, err := codegen.RenderTemplate("scaffold/package.json", packageJSONTemplate, map[string]any{
		"Name": c.ProjectName,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("package.json", pkg)

	readme, err := codegen.RenderTemplate("scaffold/README.md", readmeTemplate, map[string]any{
		"Name":       c.ProjectName,
		"PackageMgr": c.PackageMgr,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("README.md", readme)

	out.AddFile(".gitignore", gitignoreContent)

	out.AddScript("dev", fmt.Sprintf("%s run start", c.PackageMgr), "Start the development server.")
	out.AddDoc("getting-started.md", "Getting Started",
		fmt.Sprintf("Run `%s install` and then `%s run dev` to start developing %s.", c.PackageMgr, c.PackageMgr, c.ProjectName))

	out.SetPort("project_name", cty.StringVal(c.ProjectName))
	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateScaffold", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(Config) },
		ConfigType: reflect.TypeOf(Config{}),
		Fn:         OnGenerateScaffold,
	})
}
