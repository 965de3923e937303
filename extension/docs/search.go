// search.go implements the "docbridge docs search" command.
//
// Separated from docs.go to isolate query handling and output. The command
// is a thin shell over bridge.Service.Search: the service owns rendering,
// fallback, and the per-call timeout.

package docs

import (
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search Google Docs by content",
		Long: `Full-text search across the Google Docs your account can read.

Results are numbered with document ID, modification time, and link.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSearch,
	}
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := args[0]

	text, err := e.ctx.Service().Search(c.Context(), query)

	log.Event("docs:search", "search").
		Author(cmd.Author()).
		Detail("query", query).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(contentJSON{Content: text})
	}
	fmt.Fprint(cmd.Out(), text)
	return nil
}

// contentJSON wraps rendered operation output for -o json. The bridge
// produces display text, not structured records, so JSON mode carries the
// same text.
type contentJSON struct {
	Content string `json:"content"`
}
