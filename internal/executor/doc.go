// Package executor schedules generator invocations over a validated graph:
// a worker pool runs independent nodes concurrently, per-node timeouts bound
// each invocation, hard-dependency failures skip transitive dependents, and
// results are always collected in topological order so downstream merging is
// deterministic regardless of scheduling jitter.
package executor
