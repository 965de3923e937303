// login.go implements the "docbridge auth login" command.
//
// Separated from extension.go to isolate the interactive authorization flow:
// printing the handshake URL, optionally opening a browser, and prompting for
// the pasted code.
//
// Design: Login drives the same state machine the MCP tools use. The pasted
// code is staged through the side-channel file and picked up by the next
// credential request, so login exercises no exchange path of its own.

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jpl-au/docbridge/cmd"
	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newLoginCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "login",
		Short: "Authorize docbridge against Google",
		Long: `Run the OAuth2 authorization-code flow.

Prints the authorization URL, waits for the code Google shows after you
approve access, exchanges it, and saves the issued token. A code staged in
` + "DOCBRIDGE_AUTH_CODE or auth_code.txt" + ` is picked up without prompting.`,
		RunE: e.runLogin,
	}
	c.Flags().Bool(extension.FlagOpen, false, "Open the authorization URL in a browser")
	return c
}

func (e *Extension) runLogin(c *cobra.Command, _ []string) error {
	open, _ := c.Flags().GetBool(extension.FlagOpen)
	mgr := e.ctx.Service().Auth()

	// First attempt: a valid token, or a code already staged in the
	// side-channel, completes the login with no interaction.
	_, err := e.credential(c.Context())
	if err == nil {
		log.Event("auth:login", "login").Author(cmd.Author()).Detail("state", mgr.State().String()).Write(nil)
		fmt.Fprintln(cmd.Out(), "Authenticated.")
		return nil
	}

	var pending *auth.PendingError
	if !errors.As(err, &pending) {
		log.Event("auth:login", "login").Author(cmd.Author()).Write(err)
		e.explain(err)
		return cmd.PrintJSONError(err)
	}

	fmt.Fprintf(cmd.Out(), "Open this URL in your browser and approve access:\n\n  %s\n\n", pending.AuthURL)
	if open {
		if berr := openBrowser(pending.AuthURL); berr != nil {
			fmt.Fprintf(cmd.Out(), "Could not open browser automatically: %v\n", berr)
		}
	}

	code, err := promptCode()
	if err != nil {
		log.Event("auth:login", "login").Author(cmd.Author()).Write(err)
		return cmd.PrintJSONError(err)
	}
	if code == "" {
		fmt.Fprintln(cmd.Out(), "Cancelled")
		return nil
	}

	if err := e.ctx.Store().WriteAuthCode(code); err != nil {
		log.Event("auth:login", "login").Author(cmd.Author()).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("staging authorization code: %w", err))
	}

	// Second attempt consumes the staged code and performs the exchange.
	_, err = e.credential(c.Context())

	log.Event("auth:login", "login").Author(cmd.Author()).Detail("state", mgr.State().String()).Write(err)

	if err != nil {
		e.explain(err)
		return cmd.PrintJSONError(err)
	}

	fmt.Fprintf(cmd.Out(), "Authenticated. Token saved to %s\n", e.ctx.Store().TokenPath())
	return nil
}

// credential runs one credential request under the configured provider
// deadline.
func (e *Extension) credential(parent context.Context) (*auth.Credential, error) {
	ctx, cancel := context.WithTimeout(parent, e.ctx.Config().ProviderTimeout())
	defer cancel()
	return e.ctx.Service().Auth().Credential(ctx)
}

// explain prints a remediation hint for credential failures that have one.
func (e *Extension) explain(err error) {
	var xerr *auth.ExchangeError
	if errors.As(err, &xerr) {
		switch xerr.Reason {
		case auth.ReasonCodeExpired:
			fmt.Fprintln(cmd.Out(), "The code was rejected as expired or already used. Re-run: docbridge auth login")
		case auth.ReasonBadClient:
			fmt.Fprintf(cmd.Out(), "Google rejected the client registration. Check client_id and client_secret in %s\n", e.ctx.Store().RegistrationPath())
		}
		return
	}

	var cfgErr *auth.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.TemplateWritten {
		fmt.Fprintf(cmd.Out(), "A registration template has been written to %s - fill it in, then re-run: docbridge auth login\n", cfgErr.Path)
	}
}

// promptCode reads the pasted authorization code. Empty input, EOF, or an
// interrupt cancels without error.
func promptCode() (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "Authorization code: ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return "", fmt.Errorf("opening prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading authorization code: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// openBrowser opens the URL in the default browser. The scheme is validated
// first so only web URLs ever reach exec.
func openBrowser(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme for browser: %s (only http/https allowed)", parsed.Scheme)
	}

	var c *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		c = exec.Command("xdg-open", urlStr)
	case "darwin":
		c = exec.Command("open", urlStr)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", urlStr)
	default:
		return fmt.Errorf("unsupported platform")
	}
	return c.Start()
}
