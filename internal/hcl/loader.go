package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/fsutil"
	"github.com/mosaicgen/mosaic/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads all blueprint files under blueprintPath and all generator
// manifests under modulesPath, translating both into the agnostic model.
func (l *Loader) Load(ctx context.Context, blueprintPath, modulesPath string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{
		Generators: make(map[string]*config.GeneratorDefinition),
		Blueprint:  &config.Blueprint{},
	}

	if modulesPath != "" {
		if err := l.loadManifests(ctx, modulesPath, model); err != nil {
			return nil, err
		}
	}
	if blueprintPath != "" {
		if err := l.loadBlueprints(ctx, blueprintPath, model); err != nil {
			return nil, err
		}
	}

	logger.Debug("Configuration loaded.",
		"generators", len(model.Generators),
		"nodes", len(model.Blueprint.Nodes),
		"routes", len(model.Routes),
	)
	return model, nil
}

// loadManifests parses every generator manifest found under path.
func (l *Loader) loadManifests(ctx context.Context, path string, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	files, err := l.hclFilesAt(path)
	if err != nil {
		return fmt.Errorf("failed to discover generator manifests in %s: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No generator manifest files found in path.", "path", path)
		return nil
	}

	for _, filePath := range files {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var manifest schema.ManifestConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
			return fmt.Errorf("failed to decode generator manifest %s: %w", filePath, diags)
		}
		if manifest.Generator == nil {
			logger.Debug("HCL file contains no generator block, skipping.", "file", filePath)
			continue
		}

		def, err := translateGeneratorDefinition(ctx, manifest.Generator, filePath)
		if err != nil {
			return err
		}
		if _, exists := model.Generators[def.ID]; exists {
			return fmt.Errorf("duplicate generator definition '%s' in %s", def.ID, filePath)
		}
		model.Generators[def.ID] = def
		logger.Debug("Loaded generator definition.", "id", def.ID, "file", filePath)
	}
	return nil
}

// loadBlueprints parses every blueprint file found under path, preserving
// declaration order across files (files are visited lexically).
func (l *Loader) loadBlueprints(ctx context.Context, path string, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	files, err := l.hclFilesAt(path)
	if err != nil {
		return fmt.Errorf("failed to discover blueprint files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no blueprint files found in %s", path)
	}

	for _, filePath := range files {
		hclFile, diags := l.parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var bp schema.BlueprintConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &bp); diags.HasErrors() {
			return fmt.Errorf("failed to decode blueprint %s: %w", filePath, diags)
		}

		for _, n := range bp.Nodes {
			node, err := translateNode(n)
			if err != nil {
				return fmt.Errorf("in blueprint %s: %w", filePath, err)
			}
			model.Blueprint.Nodes = append(model.Blueprint.Nodes, node)
		}
		for _, r := range bp.Routes {
			model.Routes = append(model.Routes, translateRoute(r))
		}
		logger.Debug("Loaded blueprint file.", "file", filePath, "nodes", len(bp.Nodes))
	}
	return nil
}

// hclFilesAt accepts either a single .hcl file or a directory to search.
func (l *Loader) hclFilesAt(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}
