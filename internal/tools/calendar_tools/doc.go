// Package calendar_tools provides MCP tools for creating and listing
// calendar events on the groupware server.
package calendar_tools
