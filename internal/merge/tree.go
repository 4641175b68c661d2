package merge

import "sort"

// Entry is one file in the virtual tree, with the node that contributed it.
type Entry struct {
	Path    string
	Content string
	NodeID  string
}

// Tree is the run-scoped virtual file tree: the in-memory merged
// representation of the final project before anything touches real storage.
// It is mutated only by the merger and the manifest aggregator, on the
// scheduler goroutine, in commit order.
type Tree struct {
	entries map[string]*Entry
}

// NewTree returns an empty virtual file tree.
func NewTree() *Tree {
	return &Tree{entries: make(map[string]*Entry)}
}

// Get returns the entry at path, if present.
func (t *Tree) Get(path string) (*Entry, bool) {
	e, ok := t.entries[path]
	return e, ok
}

// Len returns the number of files in the tree.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Paths returns every file path in the tree in lexical order, which is the
// canonical iteration order for materialization and tests.
func (t *Tree) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for p := range t.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// put stores an entry unconditionally. Conflict policy lives in the merger;
// nothing else writes to the tree.
func (t *Tree) put(e *Entry) {
	t.entries[e.Path] = e
}
