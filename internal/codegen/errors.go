package codegen

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FieldError describes one offending configuration field.
type FieldError struct {
	Name   string
	Reason string
}

// SchemaValidationError reports a node configuration that does not satisfy
// its generator's declared schema. It lists every offending field, not just
// the first, and aborts only the affected node.
type SchemaValidationError struct {
	NodeID string
	Fields []FieldError
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Reason)
	}
	sort.Strings(parts)
	return fmt.Sprintf("node '%s': config validation failed: %s", e.NodeID, strings.Join(parts, "; "))
}

// GenerationError wraps any failure raised inside a generator function,
// including recovered panics. It never crashes the scheduler.
type GenerationError struct {
	NodeID string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("node '%s': generator failed: %v", e.NodeID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TimeoutError reports a generator invocation that exceeded the per-node
// time limit. It is node-scoped: dependents are skipped, siblings continue.
type TimeoutError struct {
	NodeID string
	Limit  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("node '%s': generator timed out after %s", e.NodeID, e.Limit)
}
