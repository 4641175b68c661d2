package merge

import (
	"context"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/routing"
)

// Contribution is one node's file output, already in commit order relative
// to its siblings.
type Contribution struct {
	NodeID string
	Files  []codegen.FileEntry
}

// MergeFunc combines two bodies that legitimately target the same mergeable
// manifest path. It returns the merged content or an error when the inputs
// genuinely disagree.
type MergeFunc func(path, existing, incoming, existingNode, incomingNode string) (string, error)

// Merger folds node contributions into a virtual file tree, resolving each
// file's final path through the routing table and applying conflict policy.
type Merger struct {
	table      *routing.Table
	presence   routing.Presence
	mergeables map[string]MergeFunc
}

// NewMerger creates a merger for one run. The presence set is fixed for the
// whole run so path resolution is reproducible.
func NewMerger(table *routing.Table, presence routing.Presence) *Merger {
	return &Merger{
		table:      table,
		presence:   presence,
		mergeables: DefaultMergeables(),
	}
}

// Merge applies every contribution to a fresh tree, strictly in the given
// (topological) order. The first genuine conflict aborts the run; there is
// no silent last-write-wins.
func (m *Merger) Merge(ctx context.Context, contribs []Contribution) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	tree := NewTree()

	for _, contrib := range contribs {
		for _, f := range contrib.Files {
			finalPath := m.table.Resolve(f.Category, f.Path, m.presence)
			if err := m.Upsert(ctx, tree, finalPath, f.Content, contrib.NodeID); err != nil {
				return nil, err
			}
		}
		logger.Debug("Committed node output to virtual tree.", "node_id", contrib.NodeID, "files", len(contrib.Files))
	}
	return tree, nil
}

// Upsert inserts content at path, applying the conflict policy:
// identical content is an idempotent no-op, a declared mergeable target
// delegates to its merge strategy, and anything else is a hard conflict.
func (m *Merger) Upsert(ctx context.Context, tree *Tree, path, content, nodeID string) error {
	existing, ok := tree.Get(path)
	if !ok {
		tree.put(&Entry{Path: path, Content: content, NodeID: nodeID})
		return nil
	}

	if existing.Content == content {
		ctxlog.FromContext(ctx).Debug("Identical content at shared path, keeping existing entry.",
			"path", path, "first_node", existing.NodeID, "node", nodeID)
		return nil
	}

	if mergeFn, mergeable := m.mergeables[path]; mergeable {
		merged, err := mergeFn(path, existing.Content, content, existing.NodeID, nodeID)
		if err != nil {
			return err
		}
		tree.put(&Entry{Path: path, Content: merged, NodeID: existing.NodeID})
		return nil
	}

	return &HardConflictError{
		Path:       path,
		FirstNode:  existing.NodeID,
		SecondNode: nodeID,
	}
}
