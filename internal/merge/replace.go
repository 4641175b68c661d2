package merge

// Replace overwrites the entry at path with aggregated content. Reserved
// for the manifest aggregator, which rewrites mergeable targets with the
// union of every node's declarations after conflict checks have passed.
func (t *Tree) Replace(path, content, nodeID string) {
	t.put(&Entry{Path: path, Content: content, NodeID: nodeID})
}

// ResolvePath exposes the run's routing table so aggregated artifacts land
// under the same presence-conditional rules as generator output.
func (m *Merger) ResolvePath(category, relPath string) string {
	return m.table.Resolve(category, relPath, m.presence)
}
