// init.go implements the "docbridge init" command for first-time setup.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before any credentials exist and creates the initial
// credential directory and registration template.
//
// Design: Init never overwrites. An existing registration file is left
// untouched, an existing config file keeps its values, so running init twice
// is safe. The --local flag controls which config scope is created, not where
// credentials live - credential placement follows --credentials-dir.

package core

import (
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Set up the credentials directory and config",
		Long: `Creates the credentials directory with a template credentials.json and a
config file. Existing files are never overwritten.

Use --credentials-dir to place credentials elsewhere:
  docbridge init --credentials-dir /srv/docbridge/creds

Use --local to create the config in the current directory:
  docbridge init --local    # creates .docbridge/config.yaml`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Create local config (.docbridge/config.yaml)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)

	store := creds.NewStore(cmd.CredentialsDir())
	hadRegistration := store.HasRegistration()

	err := initialise(store, local)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("dir", store.Dir()).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	fmt.Fprintf(cmd.Out(), "Initialised docbridge in %s\n", store.Dir())
	if hadRegistration {
		fmt.Fprintf(cmd.Out(), "Registration already present: %s\n", store.RegistrationPath())
	} else {
		fmt.Fprintf(cmd.Out(), "\nNext steps:\n")
		fmt.Fprintf(cmd.Out(), "1. Create an OAuth client (Desktop app) in the Google Cloud console\n")
		fmt.Fprintf(cmd.Out(), "2. Put its client_id and client_secret in %s\n", store.RegistrationPath())
		fmt.Fprintf(cmd.Out(), "3. Run: docbridge auth login\n")
	}
	return nil
}

// initialise writes the registration template and the config file for the
// chosen scope. Both writes skip files that already exist.
func initialise(store *creds.Store, local bool) error {
	if err := store.WriteRegistrationTemplate(); err != nil {
		return err
	}

	scope := config.ScopeGlobal
	if local {
		scope = config.ScopeLocal
	}
	cfg, err := config.LoadScope(scope)
	if err != nil {
		return err
	}
	return cfg.SaveScope(scope)
}
