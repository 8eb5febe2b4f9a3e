// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase and
// helpers for anonymizing PII (email addresses, credentials) before it
// reaches log output.
package logging
