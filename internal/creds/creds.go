// Package creds reads and writes the on-disk credential material: the OAuth
// client registration, the issued token record, and the ephemeral
// authorization-code side-channel.
//
// The package is pure data access. Deciding whether material is usable -
// probing tokens, driving exchanges - belongs to internal/auth.
package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the credentials directory.
const (
	RegistrationFile = "credentials.json"
	TokenFile        = "token.json"
	AuthCodeFile     = "auth_code.txt"
)

// EnvAuthCode is the environment source for an authorization code, checked
// before the side-channel file.
const EnvAuthCode = "DOCBRIDGE_AUTH_CODE"

// placeholderMarker appears in template registration values that the
// operator has not yet replaced.
const placeholderMarker = "YOUR_CLIENT"

// redirectOOB is the out-of-band redirect URI used by manual copy-paste
// flows when the registration lists no redirect URIs.
const redirectOOB = "urn:ietf:wg:oauth:2.0:oob"

var (
	// ErrNoRegistration is returned when the registration file does not exist.
	ErrNoRegistration = errors.New("registration file not found")
	// ErrPlaceholder is returned when the registration still carries template values.
	ErrPlaceholder = errors.New("registration contains placeholder values")
	// ErrNoToken is returned when no token record has been persisted.
	ErrNoToken = errors.New("token file not found")
	// ErrNoAccessToken is returned when a token record lacks an access_token.
	ErrNoAccessToken = errors.New("token record missing access_token")
)

// Store provides access to the credential material in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the credentials directory.
func (s *Store) Dir() string { return s.dir }

// RegistrationPath returns the path of the registration file.
func (s *Store) RegistrationPath() string { return filepath.Join(s.dir, RegistrationFile) }

// TokenPath returns the path of the token file.
func (s *Store) TokenPath() string { return filepath.Join(s.dir, TokenFile) }

// AuthCodePath returns the path of the side-channel code file.
func (s *Store) AuthCodePath() string { return filepath.Join(s.dir, AuthCodeFile) }

// DefaultDir returns the default credentials directory,
// ~/.docbridge/credentials.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory so unusual environments
		// (containers without HOME) still work.
		return filepath.Join(".docbridge", "credentials")
	}
	return filepath.Join(home, ".docbridge", "credentials")
}

// Registration is the OAuth client registration read from credentials.json.
type Registration struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
}

// RedirectURI returns the first registered redirect URI, falling back to the
// out-of-band URI.
func (r *Registration) RedirectURI() string {
	if len(r.RedirectURIs) > 0 && r.RedirectURIs[0] != "" {
		return r.RedirectURIs[0]
	}
	return redirectOOB
}

// Placeholder reports whether the registration still carries template
// values and must be rejected.
func (r *Registration) Placeholder() bool {
	return strings.Contains(r.ClientID, placeholderMarker) ||
		strings.Contains(r.ClientSecret, placeholderMarker)
}

// registrationFile mirrors the accepted on-disk shapes. Google's console
// download nests the registration under "installed" (desktop clients) or
// "web"; a flat object is also accepted.
type registrationFile struct {
	Installed *Registration `json:"installed"`
	Web       *Registration `json:"web"`
	Registration
}

func (f *registrationFile) pick() *Registration {
	switch {
	case f.Installed != nil:
		return f.Installed
	case f.Web != nil:
		return f.Web
	default:
		return &f.Registration
	}
}

// LoadRegistration reads and validates the registration file. A missing file
// yields ErrNoRegistration; template values yield ErrPlaceholder.
func (s *Store) LoadRegistration() (*Registration, error) {
	data, err := os.ReadFile(s.RegistrationPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoRegistration, s.RegistrationPath())
	}
	if err != nil {
		return nil, fmt.Errorf("reading registration: %w", err)
	}

	var f registrationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed registration file %s: %w", s.RegistrationPath(), err)
	}

	reg := f.pick()
	if reg.ClientID == "" || reg.ClientSecret == "" {
		return nil, fmt.Errorf("registration file %s missing client_id or client_secret", s.RegistrationPath())
	}
	if reg.Placeholder() {
		return nil, fmt.Errorf("%w: edit %s with your OAuth client registration", ErrPlaceholder, s.RegistrationPath())
	}
	return reg, nil
}

// HasRegistration reports whether a registration file exists, without
// validating its contents.
func (s *Store) HasRegistration() bool {
	_, err := os.Stat(s.RegistrationPath())
	return err == nil
}

// WriteRegistrationTemplate writes a placeholder registration file for the
// operator to fill in. Existing files are never overwritten.
func (s *Store) WriteRegistrationTemplate() error {
	if s.HasRegistration() {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	template := map[string]Registration{
		"installed": {
			ClientID:     "YOUR_CLIENT_ID.apps.googleusercontent.com",
			ClientSecret: "YOUR_CLIENT_SECRET",
			RedirectURIs: []string{redirectOOB},
		},
	}
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling registration template: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.RegistrationPath(), data, 0600); err != nil {
		return fmt.Errorf("writing registration template: %w", err)
	}
	return nil
}
