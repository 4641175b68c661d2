// Package routing centralizes presence-conditional path resolution: an
// ordered rule table maps (category, relative path, present generator ids)
// to the final location in the virtual file tree. Keeping every conditional
// placement decision in one declarative table makes routing auditable and
// testable in one place instead of scattered across generators.
package routing
