// Package cmd implements the command-line interface for groupware-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the groupware tools
//   - version: Display version information
package cmd
