package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistration(t *testing.T, store *Store, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(store.Dir(), 0700))
	require.NoError(t, os.WriteFile(store.RegistrationPath(), []byte(content), 0600))
}

func TestLoadRegistration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantID  string
		wantErr error
	}{
		{
			name:    "flat form",
			content: `{"client_id": "flat-id", "client_secret": "flat-secret"}`,
			wantID:  "flat-id",
		},
		{
			name:    "installed nesting",
			content: `{"installed": {"client_id": "app-id", "client_secret": "app-secret", "redirect_uris": ["http://localhost"]}}`,
			wantID:  "app-id",
		},
		{
			name:    "web nesting",
			content: `{"web": {"client_id": "web-id", "client_secret": "web-secret"}}`,
			wantID:  "web-id",
		},
		{
			name:    "placeholder values rejected",
			content: `{"installed": {"client_id": "YOUR_CLIENT_ID.apps.googleusercontent.com", "client_secret": "YOUR_CLIENT_SECRET"}}`,
			wantErr: ErrPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())
			writeRegistration(t, store, tt.content)

			reg, err := store.LoadRegistration()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, reg.ClientID)
		})
	}
}

func TestLoadRegistration_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.LoadRegistration()
	require.ErrorIs(t, err, ErrNoRegistration)
}

func TestLoadRegistration_Malformed(t *testing.T) {
	store := NewStore(t.TempDir())
	writeRegistration(t, store, `{"installed": [`)

	_, err := store.LoadRegistration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestLoadRegistration_MissingFields(t *testing.T) {
	store := NewStore(t.TempDir())
	writeRegistration(t, store, `{"client_id": "only-id"}`)

	_, err := store.LoadRegistration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")
}

func TestRegistration_RedirectURI(t *testing.T) {
	reg := &Registration{RedirectURIs: []string{"http://localhost:8085", "http://localhost:9000"}}
	assert.Equal(t, "http://localhost:8085", reg.RedirectURI())

	reg = &Registration{}
	assert.Equal(t, "urn:ietf:wg:oauth:2.0:oob", reg.RedirectURI())

	reg = &Registration{RedirectURIs: []string{""}}
	assert.Equal(t, "urn:ietf:wg:oauth:2.0:oob", reg.RedirectURI())
}

func TestWriteRegistrationTemplate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "credentials"))

	require.NoError(t, store.WriteRegistrationTemplate())
	require.True(t, store.HasRegistration())

	// The template must not pass validation until the operator edits it.
	_, err := store.LoadRegistration()
	require.ErrorIs(t, err, ErrPlaceholder)
}

func TestWriteRegistrationTemplate_NeverOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	writeRegistration(t, store, `{"client_id": "real-id", "client_secret": "real-secret"}`)

	require.NoError(t, store.WriteRegistrationTemplate())

	reg, err := store.LoadRegistration()
	require.NoError(t, err)
	assert.Equal(t, "real-id", reg.ClientID)
}

func TestTokenRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "credentials"))

	token := Token{
		"access_token":  "ya29.token",
		"refresh_token": "1//refresh",
		"token_type":    "Bearer",
		"expiry_date":   float64(1767225600000),
		"vendor_extra":  "preserved",
	}
	require.NoError(t, store.SaveToken(token))

	loaded, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", loaded.AccessToken())
	assert.Equal(t, "1//refresh", loaded.RefreshToken())
	assert.Equal(t, "preserved", loaded["vendor_extra"])

	info, err := os.Stat(store.TokenPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveToken_RequiresAccessToken(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.SaveToken(Token{"refresh_token": "1//refresh"})
	require.ErrorIs(t, err, ErrNoAccessToken)
	assert.False(t, store.HasToken())
}

func TestLoadToken_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.LoadToken()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestLoadToken_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed json", content: `{"access_token": `},
		{name: "missing access_token", content: `{"refresh_token": "1//refresh"}`, wantErr: ErrNoAccessToken},
		{name: "blank access_token", content: `{"access_token": ""}`, wantErr: ErrNoAccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())
			require.NoError(t, os.WriteFile(store.TokenPath(), []byte(tt.content), 0600))

			_, err := store.LoadToken()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDeleteToken(t *testing.T) {
	store := NewStore(t.TempDir())

	// Missing file is fine.
	require.NoError(t, store.DeleteToken())

	require.NoError(t, store.SaveToken(Token{"access_token": "ya29.token"}))
	require.NoError(t, store.DeleteToken())
	assert.False(t, store.HasToken())
}

func TestConsumeAuthCode_EnvFirst(t *testing.T) {
	store := NewStore(t.TempDir())
	t.Setenv(EnvAuthCode, "  4/env-code  ")
	require.NoError(t, store.WriteAuthCode("4/file-code"))

	code, ok, err := store.ConsumeAuthCode()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "4/env-code", code)

	// The env source does not consume the file.
	_, err = os.Stat(store.AuthCodePath())
	assert.NoError(t, err)
}

func TestConsumeAuthCode_FileDeletedAfterRead(t *testing.T) {
	store := NewStore(t.TempDir())
	t.Setenv(EnvAuthCode, "")
	require.NoError(t, store.WriteAuthCode("4/file-code"))

	code, ok, err := store.ConsumeAuthCode()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "4/file-code", code)

	_, _, err = store.ConsumeAuthCode()
	require.NoError(t, err)
	_, statErr := os.Stat(store.AuthCodePath())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestConsumeAuthCode_NoSource(t *testing.T) {
	store := NewStore(t.TempDir())
	t.Setenv(EnvAuthCode, "")

	code, ok, err := store.ConsumeAuthCode()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, code)
}

func TestConsumeAuthCode_BlankFile(t *testing.T) {
	store := NewStore(t.TempDir())
	t.Setenv(EnvAuthCode, "")
	require.NoError(t, store.WriteAuthCode("   "))

	_, ok, err := store.ConsumeAuthCode()
	require.NoError(t, err)
	assert.False(t, ok)

	// A blank file is still consumed.
	_, statErr := os.Stat(store.AuthCodePath())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
