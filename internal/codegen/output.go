package codegen

import "github.com/zclconf/go-cty/cty"

// FileEntry is one file emitted by a generator. Path is relative to the
// category's routed directory (or the project root when Category is empty).
type FileEntry struct {
	Path     string
	Content  string
	Category string
}

// EnvVar is one environment variable declaration contributed by a generator.
type EnvVar struct {
	Name        string
	Description string
	Required    bool
	Secret      bool
	Default     string
}

// EnvVarOptions carries the optional attributes of an env var declaration.
type EnvVarOptions struct {
	Required bool
	Secret   bool
	Default  string
}

// Script is one named run script contributed by a generator.
type Script struct {
	Name        string
	Command     string
	Description string
}

// DocEntry is one documentation section contributed by a generator.
type DocEntry struct {
	Path    string
	Title   string
	Content string
}

// Output is the write-only accumulator a generator fills during one
// invocation. It is merged into the virtual file tree in commit order and
// discarded afterwards.
type Output struct {
	Files   []FileEntry
	EnvVars []EnvVar
	Scripts []Script
	Docs    []DocEntry

	// Ports holds typed artifacts exposed on the generator's declared
	// output ports, available to downstream nodes through wire mappings.
	Ports map[string]cty.Value
}

// NewOutput returns an empty accumulator.
func NewOutput() *Output {
	return &Output{Ports: make(map[string]cty.Value)}
}

// AddFile records a file. The optional category routes the file through the
// path routing table; files without a category land relative to the root.
func (o *Output) AddFile(path, content string, category ...string) {
	entry := FileEntry{Path: path, Content: content}
	if len(category) > 0 {
		entry.Category = category[0]
	}
	o.Files = append(o.Files, entry)
}

// AddEnvVar records an environment variable declaration.
func (o *Output) AddEnvVar(name, description string, opts EnvVarOptions) {
	o.EnvVars = append(o.EnvVars, EnvVar{
		Name:        name,
		Description: description,
		Required:    opts.Required,
		Secret:      opts.Secret,
		Default:     opts.Default,
	})
}

// AddScript records a named run script.
func (o *Output) AddScript(name, command string, description ...string) {
	s := Script{Name: name, Command: command}
	if len(description) > 0 {
		s.Description = description[0]
	}
	o.Scripts = append(o.Scripts, s)
}

// AddDoc records a documentation entry.
func (o *Output) AddDoc(path, title, content string) {
	o.Docs = append(o.Docs, DocEntry{Path: path, Title: title, Content: content})
}

// SetPort exposes a typed artifact on one of the generator's declared output
// ports. The value is validated against the declared port type after the
// generator returns.
func (o *Output) SetPort(name string, value cty.Value) {
	if o.Ports == nil {
		o.Ports = make(map[string]cty.Value)
	}
	o.Ports[name] = value
}
