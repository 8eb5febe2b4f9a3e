// Package server holds the shared runtime state of the MCP server.
//
// ServerContext owns the groupware gateway and the effective
// configuration, HealthChecker serves the Kubernetes probe endpoints
// and MetricsServer exposes Prometheus metrics on a dedicated port.
package server
