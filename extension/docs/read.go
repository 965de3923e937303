// read.go implements the "docbridge docs read" command.
//
// Separated from docs.go to keep argument handling per command. Output is
// the document title followed by the extracted body text, identical to the
// read_google_doc MCP tool.

package docs

import (
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Read a Google Doc",
		Long: `Fetch a document by ID and print its title and text content.

The ID is the long identifier from the document URL, also shown by
"docs search" and "docs ls".`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRead,
	}
}

func (e *Extension) runRead(c *cobra.Command, args []string) error {
	id := args[0]

	text, err := e.ctx.Service().Read(c.Context(), id)

	log.Event("docs:read", "read").
		Author(cmd.Author()).
		Target(id).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read %q: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(contentJSON{Content: text})
	}
	fmt.Fprint(cmd.Out(), text)
	return nil
}
