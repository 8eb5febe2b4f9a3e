package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the groupware-mcp application
var rootCmd = &cobra.Command{
	Use:   "groupware-mcp",
	Short: "MCP server for calendar, contacts, tasks and email on a groupware backend",
	Long: `groupware-mcp exposes the calendar, addressbook, infolog and mail
modules of a groupware server as MCP (Model Context Protocol) tools for
AI assistants.

Tool calls are translated into the server's HTTP document API: events
are uploaded as iCalendar documents, contacts as vCards and tasks as
JSON. Without backend credentials the server runs against a
deterministic offline backend, which is useful for development and
client integration tests.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "groupware-mcp version %s\n", version)
		},
	}
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "groupware-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
