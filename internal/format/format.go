// Package format renders provider results for tool output and CLI display.
//
// Centralises presentation so the bridge and the CLI emit byte-identical
// text for the same result set.
package format

import (
	"fmt"
	"io"

	"github.com/jpl-au/docbridge/internal/gdocs"
)

// Empty-result messages.
const (
	NoSearchResults = "No documents found matching the query."
	NoDriveDocs     = "No Google Docs found in your Drive"
)

// SearchResults renders search hits as a numbered list with ID, modified
// time, and link per entry.
func SearchResults(w io.Writer, files []gdocs.File) error {
	if len(files) == 0 {
		fmt.Fprintln(w, NoSearchResults)
		return nil
	}
	fmt.Fprintf(w, "Found %d documents:\n", len(files))
	return entries(w, files)
}

// DriveList renders a Drive listing in the same numbered layout.
func DriveList(w io.Writer, files []gdocs.File) error {
	if len(files) == 0 {
		fmt.Fprintln(w, NoDriveDocs)
		return nil
	}
	fmt.Fprintf(w, "Found %d Google Docs:\n", len(files))
	return entries(w, files)
}

func entries(w io.Writer, files []gdocs.File) error {
	for i, f := range files {
		fmt.Fprintf(w, "%d. %s\n", i+1, f.Name)
		fmt.Fprintf(w, "   ID: %s\n", f.ID)
		fmt.Fprintf(w, "   Modified: %s\n", f.ModifiedTime)
		fmt.Fprintf(w, "   Link: %s\n", f.WebViewLink)
		fmt.Fprintln(w)
	}
	return nil
}

// Document renders a fetched document as its title followed by the extracted
// body text.
func Document(w io.Writer, title, body string) error {
	if title != "" {
		fmt.Fprintf(w, "%s\n\n", title)
	}
	fmt.Fprintln(w, body)
	return nil
}
