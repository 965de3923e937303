// context.go defines the Context interface for extension access to docbridge
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialization pattern where extensions register before
// the service is available.

package extension

import (
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
)

// Context provides extensions controlled access to docbridge internals.
// Extensions receive this during initialisation to access shared resources.
type Context interface {
	// Service returns the bridge service for search, read, and list
	// operations. The service resolves credentials and substitutes
	// fallback content on credential failures.
	Service() *bridge.Service

	// Store exposes credential storage for extensions that work with the
	// registration, token, or authorization-code files directly.
	Store() *creds.Store

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc   *bridge.Service
	store *creds.Store
	cfg   *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc *bridge.Service, store *creds.Store, cfg *config.Config) Context {
	return &extContext{
		svc:   svc,
		store: store,
		cfg:   cfg,
	}
}

// Service returns the bridge service, the primary interface for document access.
func (c *extContext) Service() *bridge.Service {
	return c.svc
}

// Store returns credential storage for extensions managing credential files.
func (c *extContext) Store() *creds.Store {
	return c.store
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
