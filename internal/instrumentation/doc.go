// Package instrumentation provides OpenTelemetry-based observability for
// the groupware MCP server.
//
// It wires metrics and tracing behind a single Provider that is
// configured from environment variables. Metrics cover HTTP traffic,
// groupware backend operations, credential exchanges and MCP tool
// invocations; tracing is optional and disabled by default.
//
// Exporters are selected at startup:
//
//   - metrics: prometheus (default), otlp, stdout
//   - traces: none (default), otlp, stdout
//
// When instrumentation is disabled the Provider hands out no-op
// recorders, so call sites never need nil checks.
//
// Label cardinality is kept low by default. High-cardinality labels
// such as request paths are only recorded when detailed labels are
// explicitly enabled, which is meant for development.
package instrumentation
