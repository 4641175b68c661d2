package chainui

import (
	"context"
	"reflect"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config defines the configuration accepted by the chainui generator.
type Config struct {
	AppTitle string `mosaic:"app_title"`
	Theme    string `mosaic:"theme"`
}

// OnGenerateChainUI is the handler for the 'chainui' generator. Its static
// template tree carries the frontend skeleton; the handler only contributes
// the generated app shell and scripts.
func OnGenerateChainUI(ctx context.Context, cfg any, ec *codegen.ExecutionContext) (*codegen.Output, error) {
	c := cfg.(*Config)
	if c.Theme == "" {
		c.Theme = "dark"
	}
	project := ec.InputString("project_name", "project")
	ec.Logger.Debug("Generating chain UI shell.", "title", c.AppTitle, "theme", c.Theme)

	out := codegen.NewOutput()

	shell, err := codegen.RenderTemplate("chainui/App.tsx", appShellTemplate, map[string]any{
		"Title": c.AppTitle,
		"Theme": c.Theme,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("App.tsx", shell, "ui")

	html, err := codegen.RenderTemplate("chainui/index.html", indexHTMLTemplate, map[string]any{
		"Title":   c.AppTitle,
		"Project": project,
	})
	if err != nil {
		return nil, err
	}
	out.AddFile("index.html", html, "ui")

	out.AddScript("start", "vite", "Run the frontend dev server.")
	out.AddScript("build:ui", "vite build", "Build the frontend for production.")
	out.AddDoc("chain-ui.md", "Chain UI",
		"The frontend shell renders under the routed ui directory. Run the `start` script to develop against it.")

	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("OnGenerateChainUI", &registry.RegisteredGenerator{
		NewConfig:  func() any { return new(Config) },
		ConfigType: reflect.TypeOf(Config{}),
		Fn:         OnGenerateChainUI,
	})
}
