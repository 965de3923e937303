package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthStatus_Unconfigured(t *testing.T) {
	env := newTestEnv(t)

	// Status reports problems, it does not fail on them.
	out := env.run("auth", "status")

	env.contains(out, "State:        unconfigured")
	env.contains(out, "Credentials:  "+env.credsDir())
	env.contains(out, "Registration: missing (")
	env.contains(out, "Token:        missing (")
	env.contains(out, "Problem:")
}

func TestAuthStatus_PendingShowsAuthURL(t *testing.T) {
	env := newTestEnv(t)
	env.writeRegistration()

	out := env.run("auth", "status")

	env.contains(out, "State:        awaiting-code")
	env.contains(out, "Registration: "+filepath.Join(env.credsDir(), "credentials.json"))
	env.contains(out, "Authorization URL: https://accounts.google.com/o/oauth2/auth")
	env.contains(out, "Run: docbridge auth login")
}

func TestAuthStatus_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeRegistration()

	out := env.run("auth", "status", "-o", "json")

	var st struct {
		State        string `json:"state"`
		Registration bool   `json:"registration"`
		Token        bool   `json:"token"`
		AuthURL      string `json:"auth_url"`
	}
	env.jsonLine(out, &st)

	assert.Equal(t, "awaiting-code", st.State)
	assert.True(t, st.Registration)
	assert.False(t, st.Token)
	assert.Contains(t, st.AuthURL, "accounts.google.com")
}

func TestAuthLogin_Unconfigured(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("auth", "login")

	assert.Error(t, err)
	env.contains(out, "registration template has been written")
	env.contains(out, filepath.Join(env.credsDir(), "credentials.json"))
}

func TestAuthLogin_PlaceholderRegistration(t *testing.T) {
	env := newTestEnv(t)

	// An untouched template must be called out, not sent to Google.
	env.run("init")
	out, err := env.runErr("auth", "login")

	assert.Error(t, err)
	env.contains(out, "placeholder")
}

func TestAuthReset(t *testing.T) {
	env := newTestEnv(t)
	env.writeRegistration()

	// Plant a token and a staged code so reset has something to remove.
	tokenPath := filepath.Join(env.credsDir(), "token.json")
	require.NoError(t, os.WriteFile(tokenPath, []byte(`{"access_token":"tok"}`), 0600))
	codePath := filepath.Join(env.credsDir(), "auth_code.txt")
	require.NoError(t, os.WriteFile(codePath, []byte("code\n"), 0600))

	out := env.run("auth", "reset", "--force")

	env.contains(out, "Token and staged code removed")
	assert.NoFileExists(t, tokenPath)
	assert.NoFileExists(t, codePath)
	// The registration survives a reset.
	assert.FileExists(t, filepath.Join(env.credsDir(), "credentials.json"))
}

func TestAuthReset_DeclinedConfirmation(t *testing.T) {
	env := newTestEnv(t)
	env.writeRegistration()

	tokenPath := filepath.Join(env.credsDir(), "token.json")
	require.NoError(t, os.WriteFile(tokenPath, []byte(`{"access_token":"tok"}`), 0600))

	out, err := env.runStdinErr("n\n", "auth", "reset")

	require.NoError(t, err)
	env.contains(out, "Cancelled")
	assert.FileExists(t, tokenPath)
}
