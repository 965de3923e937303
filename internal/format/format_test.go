package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docbridge/internal/gdocs"
)

var sampleFiles = []gdocs.File{
	{
		ID:           "doc-alpha",
		Name:         "Alpha Notes",
		ModifiedTime: "2026-02-01T10:00:00.000Z",
		WebViewLink:  "https://docs.google.com/document/d/doc-alpha/edit",
	},
	{
		ID:           "doc-beta",
		Name:         "Beta Plan",
		ModifiedTime: "2026-01-15T09:30:00.000Z",
		WebViewLink:  "https://docs.google.com/document/d/doc-beta/edit",
	},
}

func TestSearchResults(t *testing.T) {
	var b strings.Builder
	require.NoError(t, SearchResults(&b, sampleFiles))

	want := "Found 2 documents:\n" +
		"1. Alpha Notes\n" +
		"   ID: doc-alpha\n" +
		"   Modified: 2026-02-01T10:00:00.000Z\n" +
		"   Link: https://docs.google.com/document/d/doc-alpha/edit\n" +
		"\n" +
		"2. Beta Plan\n" +
		"   ID: doc-beta\n" +
		"   Modified: 2026-01-15T09:30:00.000Z\n" +
		"   Link: https://docs.google.com/document/d/doc-beta/edit\n" +
		"\n"
	assert.Equal(t, want, b.String())
}

func TestSearchResults_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, SearchResults(&b, nil))
	assert.Equal(t, "No documents found matching the query.\n", b.String())
}

func TestDriveList(t *testing.T) {
	var b strings.Builder
	require.NoError(t, DriveList(&b, sampleFiles[:1]))

	want := "Found 1 Google Docs:\n" +
		"1. Alpha Notes\n" +
		"   ID: doc-alpha\n" +
		"   Modified: 2026-02-01T10:00:00.000Z\n" +
		"   Link: https://docs.google.com/document/d/doc-alpha/edit\n" +
		"\n"
	assert.Equal(t, want, b.String())
}

func TestDriveList_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, DriveList(&b, []gdocs.File{}))
	assert.Equal(t, "No Google Docs found in your Drive\n", b.String())
}

func TestDocument(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Document(&b, "Quarterly Report", "Hello\nWorld"))
	assert.Equal(t, "Quarterly Report\n\nHello\nWorld\n", b.String())
}

func TestDocument_UntitledOmitsHeader(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Document(&b, "", "body only"))
	assert.Equal(t, "body only\n", b.String())
}
