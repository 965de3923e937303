// serve.go implements the "docbridge serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a NoServiceCommand - it builds its own bridge service
// instead of using the shared one from root.go. The server reports credential
// state on startup, and stdout carries only protocol frames, so serve needs
// to control construction order rather than having it managed by the CLI
// framework.

package core

import (
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/gdocs"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/jpl-au/docbridge/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

The server exposes search_google_docs, read_google_doc, and list_google_docs.
Without working credentials the tools return labeled sample content, so the
server is safe to wire into a client before authentication is complete.`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := creds.NewStore(cmd.CredentialsDir())
	log.SetProfile(store.Dir())

	client := gdocs.NewREST()
	svc := bridge.New(auth.New(store, client), client, cfg.ProviderTimeout())
	return mcp.Serve(svc)
}
