// rest.go implements Client over the Drive v3 and Docs v1 REST endpoints.
//
// Separated from gdocs.go so the interface and wire types stay free of HTTP
// concerns. Base URLs are injectable for tests against httptest servers.

package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultDriveURL = "https://www.googleapis.com/drive/v3"
	defaultDocsURL  = "https://docs.googleapis.com/v1"

	// listFields trims files.list responses to the fields the formatter uses.
	listFields = "files(id, name, createdTime, modifiedTime, webViewLink)"

	searchPageSize = 10
	maxPageSize    = 100
)

// REST is the production Client backed by the Google REST APIs.
type REST struct {
	http     *http.Client
	driveURL string
	docsURL  string
}

var _ Client = (*REST)(nil)

// Option configures a REST client.
type Option func(*REST)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *REST) { r.http = c }
}

// WithDriveURL overrides the Drive API base URL.
func WithDriveURL(u string) Option {
	return func(r *REST) { r.driveURL = strings.TrimSuffix(u, "/") }
}

// WithDocsURL overrides the Docs API base URL.
func WithDocsURL(u string) Option {
	return func(r *REST) { r.docsURL = strings.TrimSuffix(u, "/") }
}

// NewREST creates a Client for the Google Drive and Docs APIs.
func NewREST(opts ...Option) *REST {
	r := &REST{
		http:     http.DefaultClient,
		driveURL: defaultDriveURL,
		docsURL:  defaultDocsURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fileList mirrors the files.list response envelope.
type fileList struct {
	Files []File `json:"files"`
}

// Probe lists a single document id. The smallest call that still proves the
// token grants Drive access.
func (r *REST) Probe(ctx context.Context, token string) error {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("mimeType='%s'", DocMimeType))
	q.Set("pageSize", "1")
	q.Set("fields", "files(id)")

	var out fileList
	return r.get(ctx, token, r.driveURL+"/files?"+q.Encode(), &out)
}

// Search lists documents whose full text contains the query.
func (r *REST) Search(ctx context.Context, token, query string) ([]File, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("mimeType='%s' and fullText contains '%s'", DocMimeType, escapeQuery(query)))
	q.Set("fields", listFields)
	q.Set("pageSize", strconv.Itoa(searchPageSize))

	var out fileList
	if err := r.get(ctx, token, r.driveURL+"/files?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// List lists up to max documents ordered by most recent modification.
func (r *REST) List(ctx context.Context, token string, max int) ([]File, error) {
	if max < 1 {
		max = 1
	}
	if max > maxPageSize {
		max = maxPageSize
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("mimeType='%s'", DocMimeType))
	q.Set("fields", listFields)
	q.Set("pageSize", strconv.Itoa(max))
	q.Set("orderBy", "modifiedTime desc")

	var out fileList
	if err := r.get(ctx, token, r.driveURL+"/files?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Document fetches one document's structural content.
func (r *REST) Document(ctx context.Context, token, id string) (*Document, error) {
	var doc Document
	if err := r.get(ctx, token, r.docsURL+"/documents/"+url.PathEscape(id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (r *REST) get(ctx context.Context, token, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}

// errorEnvelope mirrors the Google API error response shape.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// decodeAPIError converts a non-200 response into an APIError. Bodies that
// don't carry the standard envelope fall back to the HTTP status text.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Status = env.Error.Status
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// escapeQuery escapes backslashes and single quotes for interpolation into a
// Drive query string literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
