// Package fallback produces substitute tool results for calls that cannot
// reach Google because no usable credential exists.
//
// Every result is deterministic for identical arguments, keeps the shape of
// the live result it stands in for, and carries an explicit notice plus the
// steps needed to obtain real content. Callers must never mistake it for
// live data.
package fallback

import (
	"fmt"
	"strings"

	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/extract"
	"github.com/jpl-au/docbridge/internal/format"
	"github.com/jpl-au/docbridge/internal/gdocs"
)

// Notice opens every substitute result.
const Notice = "Using fallback mode: sample content, not live data."

// sampleModified is the fixed timestamp stamped on every sample entry.
const sampleModified = "2026-01-01T00:00:00.000Z"

var sampleDocs = []gdocs.File{
	{ID: "sample-doc-1", Name: "Sample Project Plan", ModifiedTime: sampleModified, WebViewLink: sampleLink("sample-doc-1")},
	{ID: "sample-doc-2", Name: "Sample Meeting Notes", ModifiedTime: sampleModified, WebViewLink: sampleLink("sample-doc-2")},
	{ID: "sample-doc-3", Name: "Sample Quarterly Report", ModifiedTime: sampleModified, WebViewLink: sampleLink("sample-doc-3")},
}

func sampleLink(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

// Search returns a substitute search result embedding the caller's query.
// authURL, when non-empty, is the pending authorization URL to surface.
func Search(query, authURL string) string {
	hits := []gdocs.File{
		{ID: "sample-doc-1", Name: fmt.Sprintf("Sample Document matching %q", query), ModifiedTime: sampleModified, WebViewLink: sampleLink("sample-doc-1")},
		{ID: "sample-doc-2", Name: fmt.Sprintf("Sample Notes matching %q", query), ModifiedTime: sampleModified, WebViewLink: sampleLink("sample-doc-2")},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Google Docs Search Results for: %q\n\n", query)
	b.WriteString(Notice + "\n\n")
	format.SearchResults(&b, hits)
	b.WriteString(remediation(authURL))
	return b.String()
}

// Read returns a substitute document body embedding the requested id. The
// body includes a table region so consumers see the same markers live
// extraction produces.
func Read(documentID, authURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sample Document (%s)\n\n", documentID)
	b.WriteString(Notice + "\n\n")
	fmt.Fprintf(&b, "This is sample content for document %s. The Google Docs connection\nis not authenticated, so the real document could not be fetched.\n\n", documentID)
	b.WriteString(extract.TableOpen + "\nSection | Status\nAuthentication | pending\n" + extract.TableClose + "\n\n")
	b.WriteString(remediation(authURL))
	return b.String()
}

// List returns a substitute Drive listing, clamped to maxResults entries.
func List(maxResults int, authURL string) string {
	n := len(sampleDocs)
	if maxResults > 0 && maxResults < n {
		n = maxResults
	}

	var b strings.Builder
	b.WriteString(Notice + "\n\n")
	format.DriveList(&b, sampleDocs[:n])
	b.WriteString(remediation(authURL))
	return b.String()
}

func remediation(authURL string) string {
	var b strings.Builder
	b.WriteString("To get real content:\n")
	b.WriteString("1. Run: docbridge auth login\n")
	b.WriteString("2. Open the authorization URL and approve access\n")
	b.WriteString("3. Provide the code via " + creds.EnvAuthCode + " or the auth_code.txt file\n")
	if authURL != "" {
		b.WriteString("\nAuthorization URL: " + authURL + "\n")
	}
	return b.String()
}
