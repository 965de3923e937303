// Package gdocs provides a narrow client for the Google Drive and Docs
// REST APIs.
//
// The Client interface exposes only the four operations the bridge needs:
// probe, fetch a document, search, and list. Handlers depend on the
// interface, never on the REST implementation, so tests can substitute
// fakes and the HTTP layer stays in one place.
package gdocs

import (
	"context"
	"fmt"
)

// DocMimeType filters Drive listings to Google Docs documents.
const DocMimeType = "application/vnd.google-apps.document"

// File describes a Drive file as returned by the files.list endpoint.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	WebViewLink  string `json:"webViewLink"`
}

// Document is the structural representation returned by documents.get.
// Only the fields the extractor consumes are mapped; everything else in the
// response is ignored.
type Document struct {
	ID    string `json:"documentId"`
	Title string `json:"title"`
	Body  Body   `json:"body"`
}

// Body holds the document's ordered content elements.
type Body struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is one element of a body or table cell. Exactly one of
// the pointer fields is set; elements of other kinds (section breaks, tables
// of contents) leave both nil and are skipped during extraction.
type StructuralElement struct {
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Table     *Table     `json:"table,omitempty"`
}

// Paragraph is an ordered sequence of text runs.
type Paragraph struct {
	Elements []ParagraphElement `json:"elements"`
}

// ParagraphElement wraps a single run. Non-text elements (inline images,
// page breaks) leave TextRun nil.
type ParagraphElement struct {
	TextRun *TextRun `json:"textRun,omitempty"`
}

// TextRun is a contiguous span of text with uniform styling.
type TextRun struct {
	Content string `json:"content"`
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []TableRow `json:"tableRows"`
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells []TableCell `json:"tableCells"`
}

// TableCell contains nested structural elements, usually paragraphs.
type TableCell struct {
	Content []StructuralElement `json:"content"`
}

// Client is the capability surface the bridge needs from the provider.
//
// Every method takes the bearer token explicitly: tokens change across the
// credential lifecycle and the adapter holds no authentication state of its
// own.
type Client interface {
	// Probe performs a minimal read-only call verifying the token still
	// grants access.
	Probe(ctx context.Context, token string) error
	// Document fetches one document's structural content by id.
	Document(ctx context.Context, token, id string) (*Document, error)
	// Search returns documents whose full text matches the query.
	Search(ctx context.Context, token, query string) ([]File, error)
	// List returns up to max documents, most recently modified first.
	List(ctx context.Context, token string, max int) ([]File, error)
}

// APIError is a provider-side failure decoded from the Google API error
// envelope. It is surfaced to callers verbatim and never retried.
type APIError struct {
	StatusCode int    // HTTP status of the response
	Status     string // provider status, e.g. "NOT_FOUND", "PERMISSION_DENIED"
	Message    string // human-readable provider message
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the error means the token no longer grants
// access, as opposed to a genuine provider-side failure.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
