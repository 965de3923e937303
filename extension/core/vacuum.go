// vacuum.go implements the "docbridge vacuum" command for audit log pruning.
//
// Separated from extension.go because vacuum is destructive and requires
// special handling including confirmation prompts and dry-run support.
//
// Design: Vacuum is a NoServiceCommand - it operates on the local audit
// database only and must keep working when credentials are absent or broken.

package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/duration"
	"github.com/jpl-au/docbridge/internal/gdocs"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Prune audit log entries",
		Long: `Prune audit log entries and compact the log database.

This is irreversible. Use --force to skip confirmation.
Without --older-than, all entries are pruned.

Duration formats: 7d (days), 4w (weeks), 3m (months)`,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only prune entries older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	olderThanArg, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	// Zero prunes everything: the cutoff becomes "now" and every entry
	// started before it.
	var olderThan time.Duration
	var olderThanPtr *time.Duration
	if olderThanArg != "" {
		d, err := duration.Parse(olderThanArg)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThanArg, err))
		}
		olderThan = d
		olderThanPtr = &d
	}

	if dryRun {
		count, err := log.Prunable(olderThan)

		log.Event("core:vacuum", "vacuum").
			Author(cmd.Author()).
			Detail("dry_run", true).
			Detail("count", count).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("vacuum dry run: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"pruned": count, "dry_run": true})
		}
		fmt.Fprintf(cmd.Out(), "Would prune %d audit log entr%s\n", count, plural(count))
		return nil
	}

	if !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Prune audit log entries? This cannot be undone. [y/N] ")
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

	count, err := log.Prune(olderThan)
	if err == nil {
		err = log.Vacuum()
	}

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Detail("count", count).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}

	// Vacuum extension data (extensions with their own on-disk state
	// implement Vacuumable)
	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	store := creds.NewStore(cmd.CredentialsDir())
	client := gdocs.NewREST()
	svc := bridge.New(auth.New(store, client), client, cfg.ProviderTimeout())
	extCtx := extension.NewContext(svc, store, cfg)
	for _, ext := range extension.All() {
		if v, ok := ext.(extension.Vacuumable); ok {
			extCount, err := v.Vacuum(extCtx, olderThanPtr)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("vacuum extension %s: %w", ext.Name(), err))
			}
			if extCount > 0 {
				fmt.Fprintf(cmd.Out(), "Vacuumed %d record(s) from %s\n", extCount, ext.Name())
			}
		}
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"pruned": count, "dry_run": false})
	}
	fmt.Fprintf(cmd.Out(), "Pruned %d audit log entr%s\n", count, plural(count))
	return nil
}

func plural(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
