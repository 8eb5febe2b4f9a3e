// Package contact_tools provides MCP tools for creating and searching
// addressbook contacts on the groupware server.
package contact_tools
