// Package codegen defines the generator contract: the per-invocation
// execution context, the write-only output accumulator, schema validation of
// node configuration, and the node-scoped error taxonomy.
package codegen
