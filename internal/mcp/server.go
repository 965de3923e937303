// Package mcp implements the Model Context Protocol server, exposing Google
// Docs search, read, and list operations to LLMs. This lets AI assistants
// pull live document content through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/bridge"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio. Uses stdio transport for
// compatibility with Claude Desktop and other MCP clients.
//
// Design: the server starts successfully even when credentials are missing
// or unauthorized. Tools answer with labelled fallback content until the
// operator completes authorization, rather than failing the client with an
// opaque error.
func Serve(svc *bridge.Service) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{svc: svc}

	s := server.NewMCPServer(
		"docbridge",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	registerResources(s, h)
	registerTools(s, h)

	reportAuthState(svc)

	slog.Info("docbridge MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// reportAuthState runs one credential attempt at startup so operators see
// the authorization URL, or the configuration problem, in the logs straight
// away instead of buried in the first tool result. An available auth code
// is exchanged here as a side effect. Failures are expected; tools fall
// back per call.
func reportAuthState(svc *bridge.Service) {
	_, err := svc.Auth().Credential(context.Background())
	if err == nil {
		slog.Info("Google Docs credentials verified")
		return
	}

	var pending *auth.PendingError
	var cfgErr *auth.ConfigError
	switch {
	case errors.As(err, &pending):
		slog.Info("authorization required - tools serve fallback content until a code is provided", "auth_url", pending.AuthURL)
	case errors.As(err, &cfgErr):
		slog.Info("credentials not configured - tools serve fallback content", "detail", cfgErr.Error())
	default:
		slog.Warn("credential check failed - tools serve fallback content", "error", err)
	}
}

// handlers provides MCP request handlers backed by the bridge service.
type handlers struct {
	svc *bridge.Service
}

// registerResources adds URI-based resource access for direct document
// reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"gdocs://documents/{docId}",
			"Google Doc",
			mcp.WithTemplateDescription("Read a Google Doc's extracted text by document ID"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readDocResource,
	)
}

// registerTools exposes the document operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	// Search
	s.AddTool(
		mcp.NewTool("search_google_docs",
			mcp.WithDescription("Search Google Docs by content. Returns matching documents with their IDs, modification times, and links."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Full-text search query")),
		),
		h.searchDocs,
	)

	// Read
	s.AddTool(
		mcp.NewTool("read_google_doc",
			mcp.WithDescription("Read a Google Doc's content as plain text. Tables are wrapped in [TABLE] markers."),
			mcp.WithString("docId", mcp.Required(), mcp.Description("Document ID, as returned by search or list")),
		),
		h.readDoc,
	)

	// List
	s.AddTool(
		mcp.NewTool("list_google_docs",
			mcp.WithDescription("List Google Docs in your Drive, most recently modified first"),
			mcp.WithNumber("maxResults", mcp.Description("Maximum documents to return (default: 20)")),
		),
		h.listDocs,
	)
}
