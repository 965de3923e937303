package creds

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ConsumeAuthCode checks the two authorization-code sources in order: the
// DOCBRIDGE_AUTH_CODE environment value, then the side-channel file. The
// file is deleted after a successful read so a code is never seen twice.
// ok is false when neither source holds a code.
func (s *Store) ConsumeAuthCode() (code string, ok bool, err error) {
	if v := strings.TrimSpace(os.Getenv(EnvAuthCode)); v != "" {
		return v, true, nil
	}

	data, err := os.ReadFile(s.AuthCodePath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading auth code: %w", err)
	}

	// Delete before use. A code that fails exchange is spent either way,
	// and a stale file must never feed a second attempt.
	if err := os.Remove(s.AuthCodePath()); err != nil {
		return "", false, fmt.Errorf("consuming auth code: %w", err)
	}

	code = strings.TrimSpace(string(data))
	if code == "" {
		return "", false, nil
	}
	return code, true, nil
}

// WriteAuthCode stores a code in the side-channel file for the next
// credential acquisition to consume.
func (s *Store) WriteAuthCode(code string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	if err := os.WriteFile(s.AuthCodePath(), []byte(code+"\n"), 0600); err != nil {
		return fmt.Errorf("writing auth code: %w", err)
	}
	return nil
}

// DeleteAuthCode removes the side-channel file. A missing file is not an
// error.
func (s *Store) DeleteAuthCode() error {
	err := os.Remove(s.AuthCodePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting auth code: %w", err)
	}
	return nil
}
