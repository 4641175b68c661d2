// Package config defines the format-agnostic model for a mosaic run: the
// user's blueprint graph, custom routing rules, and the immutable generator
// definitions loaded from module manifests.
package config
