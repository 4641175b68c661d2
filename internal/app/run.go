package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/dot"
	"github.com/mosaicgen/mosaic/internal/executor"
	"github.com/mosaicgen/mosaic/internal/graph"
	"github.com/mosaicgen/mosaic/internal/manifest"
	"github.com/mosaicgen/mosaic/internal/materialize"
	"github.com/mosaicgen/mosaic/internal/merge"
	"github.com/mosaicgen/mosaic/internal/routing"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	runID := uuid.NewString()
	a.logger.Info("🧩 Starting run.", "run_id", runID, "nodes", len(a.config.Blueprint.Nodes))

	// Validation failures abort the run before anything executes; an invalid
	// blueprint never produces partial output.
	g, err := graph.Validate(ctx, a.config, a.registry)
	if err != nil {
		return fmt.Errorf("blueprint validation failed: %w", err)
	}
	a.logger.Debug("Blueprint graph validated.", "node_count", len(g.Nodes))

	if appConfig.ExportDotPath != "" {
		if err := a.exportDot(g, appConfig.ExportDotPath); err != nil {
			return err
		}
		if appConfig.OutputDir == "" && appConfig.ArchivePath == "" {
			return nil
		}
	}

	if len(g.Nodes) == 0 {
		a.logger.Warn("No nodes found in blueprint, nothing to generate.")
		return nil
	}

	a.logger.Info("🚀 Starting concurrent generation...")
	exec := executor.New(g, a.registry, executor.Options{
		RunID:       runID,
		Workers:     appConfig.WorkerCount,
		NodeTimeout: appConfig.NodeTimeout,
	})
	result, err := exec.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logReport(result)

	if len(result.Committed) == 0 {
		return fmt.Errorf("run %s produced no output: every node failed or was skipped", runID)
	}

	tree, err := a.assembleTree(ctx, g, result)
	if err != nil {
		return fmt.Errorf("assembling project output: %w", err)
	}
	a.logger.Info("🗂️ Output merged.", "files", tree.Len())

	if appConfig.OutputDir != "" {
		if err := materialize.WriteTree(ctx, tree, appConfig.OutputDir); err != nil {
			return err
		}
	}
	if appConfig.ArchivePath != "" {
		if err := materialize.WriteArchive(ctx, tree, appConfig.ArchivePath); err != nil {
			return err
		}
	}

	if !result.Report.FullySucceeded() {
		return fmt.Errorf("run %s completed with %d failed and %d skipped node(s); partial output was still written",
			runID, len(result.Report.Failed), len(result.Report.Skipped))
	}

	a.logger.Info("🏁 Run finished.", "run_id", runID)
	return nil
}

// assembleTree merges committed file output in topological order, then folds
// the cross-cutting env var, script, and documentation declarations on top.
func (a *App) assembleTree(ctx context.Context, g *graph.Graph, result *executor.Result) (*merge.Tree, error) {
	table := routing.BuildTable(a.config.Routes)
	merger := merge.NewMerger(table, g.Presence)

	fileContribs := make([]merge.Contribution, 0, len(result.Committed))
	manifestContribs := make([]manifest.Contribution, 0, len(result.Committed))
	for _, c := range result.Committed {
		fileContribs = append(fileContribs, merge.Contribution{
			NodeID: c.Node.ID,
			Files:  c.Output.Files,
		})
		manifestContribs = append(manifestContribs, manifest.Contribution{
			NodeID:  c.Node.ID,
			EnvVars: c.Output.EnvVars,
			Scripts: c.Output.Scripts,
			Docs:    c.Output.Docs,
		})
	}

	tree, err := merger.Merge(ctx, fileContribs)
	if err != nil {
		return nil, err
	}

	agg := manifest.NewAggregator(merger)
	if _, err := agg.Aggregate(ctx, manifestContribs, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (a *App) exportDot(g *graph.Graph, path string) error {
	rendered, err := dot.Export(g)
	if err != nil {
		return fmt.Errorf("rendering graph export: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing graph export '%s': %w", path, err)
	}
	a.logger.Info("Graph exported.", "path", path)
	return nil
}

func (a *App) logReport(result *executor.Result) {
	report := result.Report
	for _, id := range report.Succeeded {
		a.logger.Debug("Node succeeded.", "node_id", id)
	}
	for _, id := range report.Skipped {
		a.logger.Warn("Node skipped.", "node_id", id)
	}
	for id, err := range report.Failed {
		a.logger.Error("Node failed.", "node_id", id, "error", err)
	}
	a.logger.Info("Generation finished.",
		"succeeded", len(report.Succeeded), "skipped", len(report.Skipped), "failed", len(report.Failed))
}
