// Package manifest aggregates the cross-cutting declarations of all executed
// nodes into project-level artifacts: a .env.example file, run scripts merged
// into the root package manifest, and a documentation index.
package manifest
