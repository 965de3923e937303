// ls.go implements the "docbridge docs ls" command.
//
// Separated from docs.go to isolate the listing flag. The listing is always
// ordered by modification time, newest first, matching the Drive query the
// provider client issues.

package docs

import (
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List recent Google Docs",
		Long:  `List your most recently modified Google Docs, newest first.`,
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
	c.Flags().IntP(extension.FlagMax, "m", bridge.DefaultMaxResults, "Maximum documents to list")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	max, _ := c.Flags().GetInt(extension.FlagMax)

	text, err := e.ctx.Service().List(c.Context(), max)

	log.Event("docs:ls", "list").
		Author(cmd.Author()).
		Detail("max", max).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(contentJSON{Content: text})
	}
	fmt.Fprint(cmd.Out(), text)
	return nil
}
