package config

import "context"

// Loader is the interface for a format-specific configuration loader. The
// rest of the system only ever sees the format-agnostic Model, so a future
// JSON or YAML blueprint format would slot in behind this interface.
type Loader interface {
	// Load reads blueprint files and generator manifests from the given
	// paths and translates them into the format-agnostic model.
	Load(ctx context.Context, blueprintPath, modulesPath string) (*Model, error)
}
