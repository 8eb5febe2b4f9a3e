// Package config loads the groupware backend configuration from flags,
// environment variables and an optional YAML file.
//
// Precedence is flags over environment over file. When no credentials are
// configured at all, the server implicitly runs in offline mode and serves
// deterministic mock data instead of contacting a backend.
package config
