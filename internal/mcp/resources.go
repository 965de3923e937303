// resources.go implements MCP resource handlers for document access.
//
// MCP resources provide read-only access via URI, letting LLM clients load
// document content as context without a tool call. URIs follow the pattern
// gdocs://documents/{docId}.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyDocID indicates a missing document id in a resource URI.
	ErrEmptyDocID = errors.New("empty document id")
)

// readDocResource handles gdocs://documents/{docId} resource requests.
func (h *handlers) readDocResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	docID, err := parseDocumentURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	text, err := h.svc.Read(ctx, docID)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// parseDocumentURI extracts the document id from a
// gdocs://documents/{docId} URI.
func parseDocumentURI(uri string) (string, error) {
	const prefix = "gdocs://documents/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	docID := strings.TrimPrefix(uri, prefix)
	if docID == "" {
		return "", ErrEmptyDocID
	}
	return docID, nil
}
