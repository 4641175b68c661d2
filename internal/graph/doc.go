// Package graph validates a blueprint into an executable dependency graph:
// requirement resolution, cycle detection, and a deterministic topological
// execution order with declaration-order tie-breaking.
package graph
