package manifest

import (
	"context"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/merge"
)

// aggregatorID is the contributor id recorded on aggregated artifacts.
const aggregatorID = "manifest-aggregator"

// Contribution is one node's cross-cutting declarations, in commit order
// relative to its siblings.
type Contribution struct {
	NodeID  string
	EnvVars []codegen.EnvVar
	Scripts []codegen.Script
	Docs    []codegen.DocEntry
}

// Aggregator folds env-var, script, and documentation declarations from all
// nodes into single project-level artifacts inside the virtual tree.
type Aggregator struct {
	merger *merge.Merger
}

// NewAggregator creates an aggregator bound to the run's merger, so its
// artifacts obey the same routing rules and merge strategies as node output.
func NewAggregator(m *merge.Merger) *Aggregator {
	return &Aggregator{merger: m}
}

// Aggregate processes contributions in commit order. Environment variable
// redeclarations produce non-fatal warnings; script disagreements are fatal.
func (a *Aggregator) Aggregate(ctx context.Context, contribs []Contribution, tree *merge.Tree) ([]EnvVarConflictWarning, error) {
	logger := ctxlog.FromContext(ctx)

	warnings, err := a.aggregateEnvVars(ctx, contribs, tree)
	if err != nil {
		return warnings, err
	}
	for _, w := range warnings {
		logger.Warn("Conflicting environment variable declaration.", "name", w.Name,
			"first_node", w.FirstNode, "node", w.Node)
	}

	if err := a.aggregateScripts(ctx, contribs, tree); err != nil {
		return warnings, err
	}

	if err := a.aggregateDocs(ctx, contribs, tree); err != nil {
		return warnings, err
	}

	logger.Debug("Manifest aggregation complete.", "env_warnings", len(warnings))
	return warnings, nil
}

// aggregateEnvVars de-duplicates declarations by name in commit order. The
// first declaration's text wins; required is the logical OR across all
// declarations of a name and the same holds for the secret flag.
func (a *Aggregator) aggregateEnvVars(ctx context.Context, contribs []Contribution, tree *merge.Tree) ([]EnvVarConflictWarning, error) {
	var warnings []EnvVarConflictWarning

	byName := make(map[string]*envDecl)
	var order []string

	for _, contrib := range contribs {
		for _, v := range contrib.EnvVars {
			decl, seen := byName[v.Name]
			if !seen {
				byName[v.Name] = &envDecl{v: v, nodeID: contrib.NodeID}
				order = append(order, v.Name)
				continue
			}
			if v.Description != decl.v.Description {
				warnings = append(warnings, EnvVarConflictWarning{
					Name:             v.Name,
					FirstNode:        decl.nodeID,
					Node:             contrib.NodeID,
					FirstDescription: decl.v.Description,
					Description:      v.Description,
				})
			}
			decl.v.Required = decl.v.Required || v.Required
			decl.v.Secret = decl.v.Secret || v.Secret
		}
	}

	if len(order) == 0 {
		return warnings, nil
	}

	vars := make([]codegen.EnvVar, 0, len(order))
	for _, name := range order {
		vars = append(vars, byName[name].v)
	}

	content := RenderEnvFile(vars)
	if err := a.merger.Upsert(ctx, tree, "/.env.example", content, aggregatorID); err != nil {
		return warnings, err
	}
	return warnings, nil
}

type envDecl struct {
	v      codegen.EnvVar
	nodeID string
}

// aggregateScripts keys scripts by name across all nodes and merges them
// into the project's root package manifest, creating it when absent.
func (a *Aggregator) aggregateScripts(ctx context.Context, contribs []Contribution, tree *merge.Tree) error {
	type scriptDecl struct {
		script codegen.Script
		nodeID string
	}

	byName := make(map[string]scriptDecl)
	var order []string

	for _, contrib := range contribs {
		for _, s := range contrib.Scripts {
			existing, seen := byName[s.Name]
			if !seen {
				byName[s.Name] = scriptDecl{script: s, nodeID: contrib.NodeID}
				order = append(order, s.Name)
				continue
			}
			if existing.script.Command != s.Command {
				return &ScriptConflictError{
					Name:          s.Name,
					FirstNode:     existing.nodeID,
					SecondNode:    contrib.NodeID,
					FirstCommand:  existing.script.Command,
					SecondCommand: s.Command,
				}
			}
		}
	}

	if len(order) == 0 {
		return nil
	}

	scripts := make([]codegen.Script, 0, len(order))
	for _, name := range order {
		scripts = append(scripts, byName[name].script)
	}

	var existingContent, existingNode string
	if entry, ok := tree.Get("/package.json"); ok {
		existingContent = entry.Content
		existingNode = entry.NodeID
	}

	merged, err := MergeScriptsIntoPackageJSON(existingContent, existingNode, scripts)
	if err != nil {
		return err
	}
	tree.Replace("/package.json", merged, aggregatorID)
	return nil
}

// aggregateDocs writes one standalone page per documentation entry at its
// declared path, plus a single index linking them, ordered by the topological
// position of the contributing node. Two nodes declaring the same page path
// go through normal merge policy, so identical text is a no-op and divergent
// text is a hard conflict.
func (a *Aggregator) aggregateDocs(ctx context.Context, contribs []Contribution, tree *merge.Tree) error {
	var sections []DocSection
	for _, contrib := range contribs {
		for _, d := range contrib.Docs {
			sections = append(sections, DocSection{Entry: d, NodeID: contrib.NodeID})
		}
	}
	if len(sections) == 0 {
		return nil
	}

	for _, s := range sections {
		pagePath := a.merger.ResolvePath("docs", s.Entry.Path)
		if err := a.merger.Upsert(ctx, tree, pagePath, RenderDocPage(s.Entry), s.NodeID); err != nil {
			return err
		}
	}

	indexPath := a.merger.ResolvePath("docs", "README.md")
	return a.merger.Upsert(ctx, tree, indexPath, RenderDocsIndex(sections), aggregatorID)
}
