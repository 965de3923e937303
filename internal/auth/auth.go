// Package auth owns the credential lifecycle: registration validation, the
// mandatory token probe, the authorization handshake, and the one-shot code
// exchange.
//
// A single Manager instance guards the shared credential state. Handlers ask
// it for a usable credential per call; they never read token material
// directly.
package auth

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"

	"github.com/jpl-au/docbridge/internal/creds"
)

// Lifecycle states. A credential request drives the manager as far along
// this sequence as it can get in one attempt.
type State int

const (
	StateUnconfigured State = iota
	StateUnauthenticated
	StateAwaitingCode
	StateExchanging
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAwaitingCode:
		return "awaiting-code"
	case StateExchanging:
		return "exchanging"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// googleEndpoint is the production OAuth2 endpoint pair. Tests override it
// via WithEndpoint.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// defaultScopes grants read-only access to Docs content and Drive metadata.
var defaultScopes = []string{
	"https://www.googleapis.com/auth/documents.readonly",
	"https://www.googleapis.com/auth/drive.readonly",
}

// Prober verifies that a token still grants access, with a minimal
// read-only provider call. Possession of a token file alone is never
// treated as proof of validity.
type Prober interface {
	Probe(ctx context.Context, token string) error
}

// Credential is a usable access credential handed to provider calls.
type Credential struct {
	AccessToken string
}

// Manager drives the credential lifecycle over one credentials directory.
// Safe for concurrent use; at most one exchange attempt is in flight at a
// time.
type Manager struct {
	mu       sync.Mutex
	store    *creds.Store
	prober   Prober
	endpoint oauth2.Endpoint
	scopes   []string

	state        State
	token        string
	handshakeURL string
}

// Option configures a Manager.
type Option func(*Manager)

// WithEndpoint overrides the OAuth2 endpoint pair.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(m *Manager) {
		m.endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	}
}

// WithScopes overrides the requested scopes.
func WithScopes(scopes ...string) Option {
	return func(m *Manager) {
		m.scopes = scopes
	}
}

// New creates a manager over the given store. The prober is consulted
// before any persisted token is trusted.
func New(store *creds.Store, prober Prober, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		prober:   prober,
		endpoint: googleEndpoint,
		scopes:   append([]string(nil), defaultScopes...),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Credential returns a usable access credential, advancing the lifecycle as
// far as one attempt allows. Once authenticated, later calls return the
// cached credential without re-probing for the rest of the process.
//
// Failures are typed: *ConfigError (registration missing, malformed, or
// placeholder), *PendingError (manual authorization required, carries the
// URL), *ExchangeError (code exchange failed, carries a reason).
func (m *Manager) Credential(ctx context.Context) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAuthenticated && m.token != "" {
		return &Credential{AccessToken: m.token}, nil
	}

	reg, err := m.registration()
	if err != nil {
		m.state = StateUnconfigured
		return nil, err
	}
	m.state = StateUnauthenticated

	// A persisted token counts only if a live probe accepts it.
	if tok, loadErr := m.store.LoadToken(); loadErr == nil {
		if probeErr := m.prober.Probe(ctx, tok.AccessToken()); probeErr == nil {
			return m.authenticated(tok.AccessToken()), nil
		}
	}

	cfg := m.oauthConfig(reg)

	// The handshake URL is generated once per attempt cycle, so a second
	// caller racing the first observes the same pending URL instead of
	// minting another.
	if m.handshakeURL == "" {
		m.handshakeURL = cfg.AuthCodeURL("",
			oauth2.AccessTypeOffline,
			oauth2.SetAuthURLParam("prompt", "consent"))
	}
	m.state = StateAwaitingCode

	code, ok, err := m.store.ConsumeAuthCode()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &PendingError{AuthURL: m.handshakeURL}
	}

	m.state = StateExchanging
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		// The attempt is spent. Fall back so the next request starts a
		// fresh handshake rather than getting stuck.
		m.state = StateUnauthenticated
		m.handshakeURL = ""
		return nil, exchangeError(err)
	}

	if err := m.store.SaveToken(tokenRecord(tok)); err != nil {
		m.state = StateUnauthenticated
		m.handshakeURL = ""
		return nil, err
	}
	return m.authenticated(tok.AccessToken), nil
}

// State returns the lifecycle position reached by the most recent
// credential request.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset discards the persisted token and any in-progress handshake, forcing
// the next credential request to start over from the registration check.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteToken(); err != nil {
		return err
	}
	if err := m.store.DeleteAuthCode(); err != nil {
		return err
	}
	m.token = ""
	m.handshakeURL = ""
	m.state = StateUnconfigured
	return nil
}

func (m *Manager) authenticated(token string) *Credential {
	m.token = token
	m.state = StateAuthenticated
	m.handshakeURL = ""
	return &Credential{AccessToken: token}
}

func (m *Manager) oauthConfig(reg *creds.Registration) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     reg.ClientID,
		ClientSecret: reg.ClientSecret,
		Endpoint:     m.endpoint,
		RedirectURL:  reg.RedirectURI(),
		Scopes:       m.scopes,
	}
}

// registration loads and validates the client registration, writing a
// template for the operator when none exists.
func (m *Manager) registration() (*creds.Registration, error) {
	reg, err := m.store.LoadRegistration()
	if err == nil {
		return reg, nil
	}

	cfgErr := &ConfigError{Path: m.store.RegistrationPath(), Err: err}
	switch {
	case errors.Is(err, creds.ErrNoRegistration):
		if werr := m.store.WriteRegistrationTemplate(); werr != nil {
			cfgErr.Err = werr
		} else {
			cfgErr.TemplateWritten = true
		}
	case errors.Is(err, creds.ErrPlaceholder):
		cfgErr.Placeholder = true
	}
	return nil, cfgErr
}

// tokenRecord flattens an exchanged token into the persisted shape.
// expiry_date carries milliseconds since epoch, matching the record layout
// other Google tooling writes.
func tokenRecord(tok *oauth2.Token) creds.Token {
	record := creds.Token{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
	}
	if tok.RefreshToken != "" {
		record["refresh_token"] = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		record["expiry_date"] = tok.Expiry.UnixMilli()
	}
	if v := tok.Extra("scope"); v != nil {
		record["scope"] = v
	}
	if v := tok.Extra("id_token"); v != nil {
		record["id_token"] = v
	}
	return record
}
