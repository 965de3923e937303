// Package auth provides the credential lifecycle extension for docbridge.
// It registers commands: auth (with subcommands login, status, reset).
package auth

import (
	"github.com/jpl-au/docbridge/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the auth extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "auth" - this extension manages the OAuth credential lifecycle.
func (e *Extension) Name() string { return "auth" }

// Init receives the shared context for credential operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the auth command with its subcommands (login, status, reset).
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google OAuth credentials",
		Long:  `Authorize docbridge against Google, inspect credential state, and clear issued tokens.`,
	}
	c.AddCommand(e.newLoginCmd())
	c.AddCommand(e.newStatusCmd())
	c.AddCommand(e.newResetCmd())
	return []*cobra.Command{c}
}

// MCPTools returns nil - credential management stays off the MCP surface.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
