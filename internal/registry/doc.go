// Package registry holds the explicit, per-application generator registry:
// Go handlers registered by module code and immutable definitions loaded
// from manifests, cross-validated at startup.
package registry
