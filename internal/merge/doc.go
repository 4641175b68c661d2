// Package merge folds every node's output into one virtual file tree,
// routing each file through the path table and enforcing the conflict
// policy: identical duplicates are idempotent, declared manifest targets
// merge structurally, and everything else conflicting is fatal.
package merge
