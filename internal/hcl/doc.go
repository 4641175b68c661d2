// Package hcl implements the HCL-backed config.Loader: it parses blueprint
// files and generator manifests and translates them into the format-agnostic
// model, including cty type expression resolution.
package hcl
