// Package docs provides the docs extension for Google Docs read operations.
// Registers the command group: docs search, docs read, docs ls.
//
// All three commands run through the shared bridge service, so their output
// is byte-identical to the MCP tools. When authorization is incomplete the
// commands still exit zero and print labelled fallback content; run
// "docbridge auth login" to switch them to live data.

package docs

import (
	"github.com/jpl-au/docbridge/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the docs extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "docs" - this extension exposes the document read operations.
func (e *Extension) Name() string { return "docs" }

// Init captures the shared context for provider access.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the docs command group.
func (e *Extension) Commands() []*cobra.Command {
	docs := &cobra.Command{
		Use:   "docs",
		Short: "Search, read, and list Google Docs",
	}
	docs.AddCommand(e.newSearchCmd())
	docs.AddCommand(e.newReadCmd())
	docs.AddCommand(e.newLsCmd())
	return []*cobra.Command{docs}
}

// MCPTools returns nil - the Google Docs tools are registered by the
// internal/mcp server directly.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
