// Package core provides the core extension for docbridge.
// It registers commands: init, config, serve, guide, vacuum, version, selfupdate.
package core

import (
	"github.com/jpl-au/docbridge/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension   = (*Extension)(nil)
	_ extension.Serviceless = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental docbridge commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands for setup and maintenance.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVacuumCmd(),
		newVersionCmd(),
		newSelfupdateCmd(),
	}
}

// MCPTools returns nil - core commands have no MCP tool equivalents.
// The Google Docs tools are registered directly by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoServiceCommands returns commands that manage their own service lifecycle.
// serve: Long-running MCP server builds its own service for startup reporting.
// vacuum: Prunes the audit log, never reaches the provider.
// version: Displays build info.
// selfupdate: Talks to GitHub releases, not to Google.
func (e *Extension) NoServiceCommands() []string {
	return []string{"serve", "vacuum", "version", "selfupdate"}
}
