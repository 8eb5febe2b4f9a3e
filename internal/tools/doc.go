// Package tools provides the tool registry for the MCP server.
//
// Each domain package (calendar_tools, contact_tools, task_tools,
// mail_tools) declares its tool schemas and handlers and registers them
// on a Registry. The registry dispatches by name and converts unknown
// tool names into error tool-results, so the transport layer always
// receives a well-formed result.
package tools
