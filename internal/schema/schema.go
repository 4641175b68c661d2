// Package schema declares the HCL surface of mosaic: the blueprint blocks a
// user writes and the manifest blocks a generator author writes. These structs
// only capture raw HCL; translation into the typed model lives in internal/hcl.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// --- Blueprint file structures ---

// ConfigArgs represents the content of the 'config' block within a node.
type ConfigArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// WireBlock represents the content of the 'wire' block within a node. Each
// attribute maps one of the node's input ports to another node's output port.
type WireBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Node represents a `node` block from a user's blueprint file. It is a
// configured instance of a registered generator.
type Node struct {
	GeneratorID string      `hcl:"generator_id,label"`
	Name        string      `hcl:"instance_name,label"`
	Config      *ConfigArgs `hcl:"config,block"`
	Wire        *WireBlock  `hcl:"wire,block"`
	DependsOn   []string    `hcl:"depends_on,optional"`
}

// Route represents a `route` block from a blueprint file. User routes are
// evaluated before the built-in routing table, in declaration order.
type Route struct {
	Category    string   `hcl:"category"`
	WhenPresent []string `hcl:"when_present,optional"`
	WhenAbsent  []string `hcl:"when_absent,optional"`
	Dir         string   `hcl:"dir"`
}

// BlueprintConfig represents the top-level structure of a blueprint file.
type BlueprintConfig struct {
	Nodes  []*Node  `hcl:"node,block"`
	Routes []*Route `hcl:"route,block"`
	Body   hcl.Body `hcl:",remain"`
}

// --- Generator manifest schemas ---

// ConfigFieldDefinition defines a single configuration field a generator accepts.
type ConfigFieldDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// PortDefinition defines a typed input or output port on a generator.
type PortDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// PathMapping maps a relative file pattern emitted by a generator (or found
// in its static template directory) to a logical output category.
type PathMapping struct {
	Pattern  string `hcl:"pattern"`
	Category string `hcl:"category"`
}

// GeneratorDefinition represents the HCL manifest for one generator unit.
type GeneratorDefinition struct {
	ID             string                   `hcl:"id,label"`
	Description    string                   `hcl:"description,optional"`
	Handler        string                   `hcl:"handler"`
	Requires       []string                 `hcl:"requires,optional"`
	Suggests       []string                 `hcl:"suggests,optional"`
	CompatibleWith []string                 `hcl:"compatible_with,optional"`
	TemplatesDir   string                   `hcl:"templates_dir,optional"`
	Configs        []*ConfigFieldDefinition `hcl:"config,block"`
	Inputs         []*PortDefinition        `hcl:"input,block"`
	Outputs        []*PortDefinition        `hcl:"output,block"`
	PathMappings   []*PathMapping           `hcl:"path_mapping,block"`
}

// ManifestConfig represents the top-level structure of a generator manifest file.
type ManifestConfig struct {
	Generator *GeneratorDefinition `hcl:"generator,block"`
	Body      hcl.Body             `hcl:",remain"`
}
