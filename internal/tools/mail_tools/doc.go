// Package mail_tools provides the MCP tool for sending email through
// the groupware server.
package mail_tools
