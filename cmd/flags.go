/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. Accessors are provided so extensions can read flag values
// without coupling to cobra internals. The JSON() helper simplifies output
// format detection across all commands.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output         string
	author         string
	force          bool
	credentialsDir string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the audit attribution value.
func Author() string { return author }

// Force returns the force flag value.
func Force() bool { return force }

// CredentialsDir returns the resolved credentials directory.
// Priority: --credentials-dir flag > DOCBRIDGE_CREDENTIALS_DIR env var >
// credentials.dir config key > ~/.docbridge/credentials.
func CredentialsDir() string {
	if credentialsDir != "" {
		return credentialsDir
	}
	if env := os.Getenv("DOCBRIDGE_CREDENTIALS_DIR"); env != "" {
		return env
	}
	if cfg, err := config.Load(); err == nil && cfg.CredentialsDir() != "" {
		return cfg.CredentialsDir()
	}
	return creds.DefaultDir()
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// We ignore the error from PrintJSON here because if we can't print the error,
	// checking it is futile. We just return nil to suppress Cobra's duplicate printing.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the default author for audit attribution.
// Priority: DOCBRIDGE_AUTHOR env var > author.name config key > empty.
func detectAuthor() string {
	if env := os.Getenv("DOCBRIDGE_AUTHOR"); env != "" {
		return env
	}
	if cfg, err := config.Load(); err == nil && cfg.AuthorName() != "" {
		return cfg.AuthorName()
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Audit attribution")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&credentialsDir, "credentials-dir", "", "Credentials directory (default ~/.docbridge/credentials)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
