// Package bridge implements the three document operations over a credential
// manager and a provider client. It is the shared core behind both the MCP
// tools and the CLI commands, so the two surfaces cannot drift apart.
//
// Authorization failures never surface as hard errors here: the caller
// receives labelled fallback content instead, because a missing credential
// is an operator problem, not a caller problem. Genuine provider failures
// (not found, quota, network) are returned as errors.
package bridge

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/extract"
	"github.com/jpl-au/docbridge/internal/fallback"
	"github.com/jpl-au/docbridge/internal/format"
	"github.com/jpl-au/docbridge/internal/gdocs"
)

// DefaultMaxResults is the listing page size when the caller does not give
// one.
const DefaultMaxResults = 20

// Service binds the credential lifecycle to the provider client.
type Service struct {
	mgr      *auth.Manager
	provider gdocs.Client
	timeout  time.Duration
}

// New creates a service. timeout bounds each operation end to end,
// including the probe and any code exchange; zero disables the bound.
func New(mgr *auth.Manager, provider gdocs.Client, timeout time.Duration) *Service {
	return &Service{mgr: mgr, provider: provider, timeout: timeout}
}

// Auth exposes the credential manager for status and reset commands.
func (s *Service) Auth() *auth.Manager { return s.mgr }

// Search runs a full-text Docs search and renders the hits.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	cred, err := s.mgr.Credential(ctx)
	if err != nil {
		if url, ok := authFallback(err); ok {
			return fallback.Search(query, url), nil
		}
		return "", err
	}

	files, err := s.provider.Search(ctx, cred.AccessToken, query)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	format.SearchResults(&b, files)
	return b.String(), nil
}

// Read fetches one document and returns its title and extracted text.
func (s *Service) Read(ctx context.Context, documentID string) (string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	cred, err := s.mgr.Credential(ctx)
	if err != nil {
		if url, ok := authFallback(err); ok {
			return fallback.Read(documentID, url), nil
		}
		return "", err
	}

	doc, err := s.provider.Document(ctx, cred.AccessToken, documentID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	format.Document(&b, doc.Title, extract.Text(doc))
	return b.String(), nil
}

// List renders the most recently modified documents, newest first.
func (s *Service) List(ctx context.Context, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	cred, err := s.mgr.Credential(ctx)
	if err != nil {
		if url, ok := authFallback(err); ok {
			return fallback.List(maxResults, url), nil
		}
		return "", err
	}

	files, err := s.provider.List(ctx, cred.AccessToken, maxResults)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	format.DriveList(&b, files)
	return b.String(), nil
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// authFallback reports whether a credential failure should be answered with
// fallback content, and supplies the pending authorization URL when one
// exists. Anything outside the three lifecycle categories is an internal
// fault and propagates.
func authFallback(err error) (authURL string, ok bool) {
	var pending *auth.PendingError
	if errors.As(err, &pending) {
		return pending.AuthURL, true
	}
	var cfgErr *auth.ConfigError
	if errors.As(err, &cfgErr) {
		return "", true
	}
	var exErr *auth.ExchangeError
	if errors.As(err, &exErr) {
		return "", true
	}
	return "", false
}
