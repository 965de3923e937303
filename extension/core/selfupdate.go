// selfupdate.go implements the "docbridge selfupdate" command.
//
// Separated from extension.go to isolate the GitHub release machinery.
// Updates replace the running binary in place with the latest published
// release for this platform.
//
// Design: --check reports without touching the binary, so scripts can poll
// for updates safely. Dev builds refuse to install: replacing an unversioned
// development binary with a release would silently discard local changes.

package core

import (
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/jpl-au/docbridge/internal/version"
	"github.com/spf13/cobra"
)

// repoSlug is the GitHub repository releases are published from.
const repoSlug = "jpl-au/docbridge"

func newSelfupdateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "selfupdate",
		Short: "Update docbridge to the latest release",
		Long: `Update docbridge to the latest GitHub release for this platform.

Use --check to see whether an update is available without installing it.`,
		RunE: runSelfupdate,
	}
	c.Flags().Bool(extension.FlagCheck, false, "Check for updates without installing")
	return c
}

func runSelfupdate(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	check, _ := c.Flags().GetBool(extension.FlagCheck)
	current := version.Short()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))

	log.Event("core:selfupdate", "check").
		Author(cmd.Author()).
		Detail("current", current).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("detecting latest release: %w", err))
	}
	if !found {
		return cmd.PrintJSONError(fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH))
	}

	upToDate := current != "dev" && latest.LessOrEqual(current)

	if check {
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{
				"current":    current,
				"latest":     latest.Version(),
				"up_to_date": upToDate,
			})
		}
		if upToDate {
			fmt.Fprintf(cmd.Out(), "docbridge %s is up to date\n", current)
		} else {
			fmt.Fprintf(cmd.Out(), "Update available: %s -> %s\n", current, latest.Version())
		}
		return nil
	}

	if current == "dev" {
		return cmd.PrintJSONError(fmt.Errorf("refusing to update a dev build; install a released binary first"))
	}
	if upToDate {
		fmt.Fprintf(cmd.Out(), "docbridge %s is up to date\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("locating executable: %w", err))
	}

	err = selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe)

	log.Event("core:selfupdate", "update").
		Author(cmd.Author()).
		Detail("from", current).
		Detail("to", latest.Version()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("updating binary: %w", err))
	}

	fmt.Fprintf(cmd.Out(), "Updated docbridge %s -> %s\n", current, latest.Version())
	return nil
}
