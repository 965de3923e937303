package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Token is a persisted token record. It is kept as a loose map so provider
// fields docbridge does not understand survive a load/save round trip.
type Token map[string]any

// AccessToken returns the access_token field, or "" when absent.
func (t Token) AccessToken() string {
	s, _ := t["access_token"].(string)
	return s
}

// RefreshToken returns the refresh_token field, or "" when absent.
func (t Token) RefreshToken() string {
	s, _ := t["refresh_token"].(string)
	return s
}

// LoadToken reads the persisted token record. A missing file yields
// ErrNoToken; a record without an access token yields ErrNoAccessToken.
func (s *Store) LoadToken() (Token, error) {
	data, err := os.ReadFile(s.TokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoToken, s.TokenPath())
	}
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("malformed token file %s: %w", s.TokenPath(), err)
	}
	if t.AccessToken() == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAccessToken, s.TokenPath())
	}
	return t, nil
}

// SaveToken persists the record atomically. The JSON is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a partial record behind.
func (s *Store) SaveToken(t Token) error {
	if t.AccessToken() == "" {
		return ErrNoAccessToken
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, TokenFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.TokenPath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persisting token: %w", err)
	}
	return nil
}

// DeleteToken removes the persisted record. A missing file is not an error.
func (s *Store) DeleteToken() error {
	err := os.Remove(s.TokenPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// HasToken reports whether a token record exists on disk, without
// validating its contents.
func (s *Store) HasToken() bool {
	_, err := os.Stat(s.TokenPath())
	return err == nil
}
