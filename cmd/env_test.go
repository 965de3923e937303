// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension init -> bridge service -> credential store.
//
// Every test runs the built binary against a throwaway HOME, so the default
// credentials directory, config file, and audit log all land in temp space.
// No test talks to Google: the credential lifecycle stops at the pending
// state before any network call, and the docs commands answer from fallback
// content until authorization completes.
//
// Some internal packages show "[no test files]" - this is intentional.
// These packages are covered by the CLI integration tests:
//   - internal/creds: covered by init/auth tests (files land where expected)
//   - internal/fallback, internal/format: covered by the docs tests
//
// Unit tests for these packages would duplicate coverage without adding value.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the docbridge binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "docbridge-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "docbridge"
		if os.PathSeparator == '\\' {
			binaryName = "docbridge.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	home   string
	dir    string
	binary string
}

// newTestEnv creates a throwaway HOME and working directory. Nothing is
// initialised; tests that need the credentials directory run "init" or
// write files themselves.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		home:   t.TempDir(),
		dir:    t.TempDir(),
		binary: buildBinary(t),
	}
}

// credsDir returns the default credentials directory under the test HOME.
func (e *testEnv) credsDir() string {
	return filepath.Join(e.home, ".docbridge", "credentials")
}

// run executes docbridge with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("docbridge %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes docbridge and returns combined output and any error.
// The child environment is pinned to the test HOME and scrubbed of the
// DOCBRIDGE_* variables so outer shells cannot leak credentials or authors
// into assertions.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"DOCBRIDGE_CREDENTIALS_DIR=",
		"DOCBRIDGE_AUTHOR=",
		"DOCBRIDGE_AUTH_CODE=",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdinErr executes docbridge with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"DOCBRIDGE_CREDENTIALS_DIR=",
		"DOCBRIDGE_AUTHOR=",
		"DOCBRIDGE_AUTH_CODE=",
	)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// writeRegistration plants a syntactically valid client registration so the
// lifecycle reaches the pending state. The client never exchanges a code in
// tests, so the values only have to survive validation.
func (e *testEnv) writeRegistration() {
	e.t.Helper()

	reg := `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-client-secret",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob"]
  }
}`
	if err := os.MkdirAll(e.credsDir(), 0700); err != nil {
		e.t.Fatal(err)
	}
	path := filepath.Join(e.credsDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(reg), 0600); err != nil {
		e.t.Fatal(err)
	}
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// jsonLine unmarshals the first JSON object found in output. Output from
// -o json commands is a single JSON document on one line.
func (e *testEnv) jsonLine(output string, v any) {
	e.t.Helper()
	line := strings.TrimSpace(output)
	if err := json.Unmarshal([]byte(line), v); err != nil {
		e.t.Fatalf("output is not valid JSON: %v\noutput: %s", err, output)
	}
}
