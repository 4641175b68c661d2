package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/config"
)

// Module is the interface a built-in generator unit implements to register
// its Go handler with an application instance.
type Module interface {
	Register(r *Registry)
}

// RegisteredGenerator holds the compiled Go side of one generator unit.
type RegisteredGenerator struct {
	// NewConfig returns a pointer to a zero config struct, or nil when the
	// generator takes no configuration.
	NewConfig func() any
	// ConfigType is the config struct type, used for manifest parity checks.
	ConfigType reflect.Type
	// Fn is the generator function itself.
	Fn codegen.GenerateFunc
}

// Registry holds every registered generator handler and loaded definition
// for a single application instance. It is constructed once, passed by
// reference into the orchestrator, and never reached through globals.
type Registry struct {
	Handlers    map[string]*RegisteredGenerator
	Definitions map[string]*config.GeneratorDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Handlers:    make(map[string]*RegisteredGenerator),
		Definitions: make(map[string]*config.GeneratorDefinition),
	}
}

// RegisterGenerator registers the Go handler for a generator unit. A
// duplicate name is a programmer error and panics at startup.
func (r *Registry) RegisterGenerator(name string, handler *RegisteredGenerator) {
	if _, exists := r.Handlers[name]; exists {
		panic(fmt.Sprintf("generator handler with name '%s' already registered", name))
	}
	slog.Debug("Registering generator handler.", "name", name)
	r.Handlers[name] = handler
}

// PopulateDefinitionsFromModel copies the loaded generator definitions from
// the config model into the registry for lookup during execution.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for id, def := range model.Generators {
		r.Definitions[id] = def
	}
}

// Definition looks up a generator definition by id.
func (r *Registry) Definition(id string) (*config.GeneratorDefinition, bool) {
	def, ok := r.Definitions[id]
	return def, ok
}

// Handler looks up the registered Go handler for a definition.
func (r *Registry) Handler(def *config.GeneratorDefinition) (*RegisteredGenerator, bool) {
	h, ok := r.Handlers[def.Handler]
	return h, ok
}
