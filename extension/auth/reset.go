// reset.go implements the "docbridge auth reset" command.
//
// Separated from extension.go because reset is destructive and carries a
// confirmation prompt. Reset clears issued material only - the registration
// file survives so login can run again without console work.

package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the issued token and any staged code",
		Long: `Delete token.json and auth_code.txt. The registration file is kept.

This is irreversible. Use --force to skip confirmation.`,
		RunE: e.runReset,
	}
}

func (e *Extension) runReset(_ *cobra.Command, _ []string) error {
	if !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Delete the issued token? You will need to authorize again. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	err := e.ctx.Service().Auth().Reset()

	log.Event("auth:reset", "reset").
		Author(cmd.Author()).
		Target(e.ctx.Store().Dir()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reset: %w", err))
	}

	fmt.Fprintln(cmd.Out(), "Token and staged code removed. Run: docbridge auth login")
	return nil
}
