package mcp

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/fallback"
	"github.com/jpl-au/docbridge/internal/gdocs"
)

type fakeClient struct {
	files  []gdocs.File
	doc    *gdocs.Document
	err    error
	gotMax int
}

func (f *fakeClient) Probe(context.Context, string) error { return nil }

func (f *fakeClient) Search(_ context.Context, _, _ string) ([]gdocs.File, error) {
	return f.files, f.err
}

func (f *fakeClient) List(_ context.Context, _ string, max int) ([]gdocs.File, error) {
	f.gotMax = max
	return f.files, f.err
}

func (f *fakeClient) Document(_ context.Context, _, _ string) (*gdocs.Document, error) {
	return f.doc, f.err
}

// newHandlers builds handlers over a temp credentials directory. When authed
// is true the directory holds a registration and a token the fake probe
// accepts; otherwise it is empty and every call falls back.
func newHandlers(t *testing.T, client gdocs.Client, authed bool) *handlers {
	t.Helper()
	t.Setenv(creds.EnvAuthCode, "")
	store := creds.NewStore(t.TempDir())
	if authed {
		registration := `{"installed": {"client_id": "test-client", "client_secret": "test-secret"}}`
		require.NoError(t, os.WriteFile(store.RegistrationPath(), []byte(registration), 0600))
		require.NoError(t, store.SaveToken(creds.Token{"access_token": "ya29.test"}))
	}
	svc := bridge.New(auth.New(store, client), client, time.Second)
	return &handlers{svc: svc}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestSearchTool(t *testing.T) {
	client := &fakeClient{files: []gdocs.File{{
		ID:           "d1",
		Name:         "Doc One",
		ModifiedTime: "2026-02-01T10:00:00.000Z",
		WebViewLink:  "https://docs.google.com/document/d/d1/edit",
	}}}
	h := newHandlers(t, client, true)

	res, err := h.searchDocs(context.Background(), callRequest("search_google_docs", map[string]any{"query": "doc"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Found 1 documents:")
	assert.Contains(t, text, "ID: d1")
}

func TestSearchTool_MissingQuery(t *testing.T) {
	h := newHandlers(t, &fakeClient{}, true)

	res, err := h.searchDocs(context.Background(), callRequest("search_google_docs", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSearchTool_FallbackIsNotAnError(t *testing.T) {
	h := newHandlers(t, &fakeClient{}, false)

	res, err := h.searchDocs(context.Background(), callRequest("search_google_docs", map[string]any{"query": "budget"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, fallback.Notice)
	assert.Contains(t, text, `"budget"`)
}

func TestReadTool(t *testing.T) {
	client := &fakeClient{doc: &gdocs.Document{
		ID:    "d9",
		Title: "Notes",
		Body: gdocs.Body{Content: []gdocs.StructuralElement{
			{Paragraph: &gdocs.Paragraph{Elements: []gdocs.ParagraphElement{
				{TextRun: &gdocs.TextRun{Content: "Hello"}},
			}}},
		}},
	}}
	h := newHandlers(t, client, true)

	res, err := h.readDoc(context.Background(), callRequest("read_google_doc", map[string]any{"docId": "d9"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Notes\n\nHello\n", resultText(t, res))
}

func TestReadTool_MissingDocID(t *testing.T) {
	h := newHandlers(t, &fakeClient{}, true)

	res, err := h.readDoc(context.Background(), callRequest("read_google_doc", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadTool_ProviderErrorBecomesToolError(t *testing.T) {
	client := &fakeClient{err: &gdocs.APIError{StatusCode: 404, Status: "NOT_FOUND", Message: "Requested entity was not found."}}
	h := newHandlers(t, client, true)

	res, err := h.readDoc(context.Background(), callRequest("read_google_doc", map[string]any{"docId": "gone"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "NOT_FOUND")
}

func TestListTool_DefaultMax(t *testing.T) {
	client := &fakeClient{}
	h := newHandlers(t, client, true)

	res, err := h.listDocs(context.Background(), callRequest("list_google_docs", map[string]any{}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, bridge.DefaultMaxResults, client.gotMax)
}

func TestListTool_MaxResults(t *testing.T) {
	client := &fakeClient{}
	h := newHandlers(t, client, true)

	// JSON numbers arrive as float64.
	_, err := h.listDocs(context.Background(), callRequest("list_google_docs", map[string]any{"maxResults": float64(5)}))
	require.NoError(t, err)
	assert.Equal(t, 5, client.gotMax)
}

func TestReadDocResource(t *testing.T) {
	client := &fakeClient{doc: &gdocs.Document{
		ID:    "d9",
		Title: "Notes",
		Body: gdocs.Body{Content: []gdocs.StructuralElement{
			{Paragraph: &gdocs.Paragraph{Elements: []gdocs.ParagraphElement{
				{TextRun: &gdocs.TextRun{Content: "Hello"}},
			}}},
		}},
	}}
	h := newHandlers(t, client, true)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "gdocs://documents/d9"

	contents, err := h.readDocResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/plain", tc.MIMEType)
	assert.Contains(t, tc.Text, "Hello")
}

func TestParseDocumentURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr error
	}{
		{name: "valid", uri: "gdocs://documents/doc-42", want: "doc-42"},
		{name: "wrong scheme", uri: "docs://documents/doc-42", wantErr: ErrInvalidURI},
		{name: "empty id", uri: "gdocs://documents/", wantErr: ErrEmptyDocID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDocumentURI(tt.uri)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
