// tools_docs.go implements the three document tools.
//
// Handlers delegate to the bridge service so the MCP surface and the CLI
// behave identically. Failures are returned as MCP tool error results
// rather than Go errors, keeping them inside the protocol where the LLM can
// read and act on them; only a panic would surface as a protocol-level
// internal error, via the server's recovery middleware.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/log"
)

// searchDocs handles search_google_docs tool calls.
func (h *handlers) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := h.svc.Search(ctx, query)
	log.Event("mcp:search", "search").Author("mcp").Detail("query", query).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// readDoc handles read_google_doc tool calls.
func (h *handlers) readDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := req.RequireString("docId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := h.svc.Read(ctx, docID)
	log.Event("mcp:read", "read").Author("mcp").Target(docID).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// listDocs handles list_google_docs tool calls.
func (h *handlers) listDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxResults := getInt(req, "maxResults", bridge.DefaultMaxResults)

	text, err := h.svc.List(ctx, maxResults)
	log.Event("mcp:list", "list").Author("mcp").Detail("max_results", maxResults).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
