// status.go implements the "docbridge auth status" command.
//
// Separated from extension.go to isolate the reporting logic. Status runs a
// live credential request first, so the reported state reflects a real probe
// rather than the mere presence of files on disk.

package auth

import (
	"errors"
	"fmt"

	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

// status is the JSON shape of the credential report.
type status struct {
	State            string `json:"state"`
	CredentialsDir   string `json:"credentials_dir"`
	Registration     bool   `json:"registration"`
	RegistrationPath string `json:"registration_path"`
	Token            bool   `json:"token"`
	TokenPath        string `json:"token_path"`
	AuthURL          string `json:"auth_url,omitempty"`
	Problem          string `json:"problem,omitempty"`
}

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report credential state",
		Long: `Report the credential lifecycle state, the resolved file paths, and -
when authorization is pending - the URL to open.

A staged authorization code is consumed by the status check, exactly as any
other credential request would consume it.`,
		RunE: e.runStatus,
	}
}

func (e *Extension) runStatus(c *cobra.Command, _ []string) error {
	store := e.ctx.Store()
	mgr := e.ctx.Service().Auth()

	_, err := e.credential(c.Context())

	st := status{
		State:            mgr.State().String(),
		CredentialsDir:   store.Dir(),
		Registration:     store.HasRegistration(),
		RegistrationPath: store.RegistrationPath(),
		Token:            store.HasToken(),
		TokenPath:        store.TokenPath(),
	}

	var pending *auth.PendingError
	switch {
	case err == nil:
	case errors.As(err, &pending):
		st.AuthURL = pending.AuthURL
	default:
		st.Problem = err.Error()
	}

	log.Event("auth:status", "status").Author(cmd.Author()).Detail("state", st.State).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(st)
	}

	fmt.Fprintf(cmd.Out(), "State:        %s\n", st.State)
	fmt.Fprintf(cmd.Out(), "Credentials:  %s\n", st.CredentialsDir)
	fmt.Fprintf(cmd.Out(), "Registration: %s\n", presence(st.Registration, st.RegistrationPath))
	fmt.Fprintf(cmd.Out(), "Token:        %s\n", presence(st.Token, st.TokenPath))
	if st.AuthURL != "" {
		fmt.Fprintf(cmd.Out(), "\nAuthorization URL: %s\n", st.AuthURL)
		fmt.Fprintln(cmd.Out(), "Run: docbridge auth login")
	}
	if st.Problem != "" {
		fmt.Fprintf(cmd.Out(), "Problem:      %s\n", st.Problem)
	}
	return nil
}

func presence(ok bool, path string) string {
	if ok {
		return path
	}
	return "missing (" + path + ")"
}
