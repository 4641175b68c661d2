package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of one run's inputs:
// every loaded generator definition plus the user's blueprint.
type Model struct {
	Generators map[string]*GeneratorDefinition
	Blueprint  *Blueprint
	Routes     []*Route
}

// Blueprint represents the user's node graph definition. Node order is the
// declaration order in the source files and is the topological tie-breaker.
type Blueprint struct {
	Nodes []*Node
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	GeneratorID string
	Name        string
	Config      map[string]hcl.Expression
	Wires       map[string]hcl.Expression
	DependsOn   []string
}

// Address returns the canonical node identifier used in dependency
// references, logs, and error messages.
func (n *Node) Address() string {
	return n.GeneratorID + "." + n.Name
}

// Route is the format-agnostic representation of a `route` block.
type Route struct {
	Category    string
	WhenPresent []string
	WhenAbsent  []string
	Dir         string
}

// --- Generator manifest models ---

// GeneratorDefinition is the format-agnostic representation of a generator's
// manifest. Definitions are loaded once per process and never mutated.
type GeneratorDefinition struct {
	ID             string
	Description    string
	Handler        string
	Requires       []string
	Suggests       []string
	CompatibleWith []string

	// TemplatesDir is a path relative to Dir; empty means the generator
	// ships no static templates.
	TemplatesDir string
	// Dir is the directory the manifest was loaded from.
	Dir string

	Config  map[string]*ConfigField
	Inputs  map[string]*Port
	Outputs map[string]*Port

	PathMappings []*PathMapping
}

// ConfigField defines a single declared configuration field.
type ConfigField struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// Port defines a typed input or output port.
type Port struct {
	Name        string
	Type        cty.Type
	Description string
}

// PathMapping maps a relative path pattern to a logical category.
type PathMapping struct {
	Pattern  string
	Category string
}
