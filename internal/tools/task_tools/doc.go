// Package task_tools provides MCP tools for creating and listing
// infolog tasks on the groupware server.
package task_tools
