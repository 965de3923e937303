/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that resolves
// the credentials directory, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before any credentials exist. The bridge service is
// created once and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/docbridge/extension"
	"github.com/jpl-au/docbridge/internal/auth"
	"github.com/jpl-au/docbridge/internal/bridge"
	"github.com/jpl-au/docbridge/internal/config"
	"github.com/jpl-au/docbridge/internal/creds"
	"github.com/jpl-au/docbridge/internal/gdocs"
	"github.com/jpl-au/docbridge/internal/log"
)

// noServiceCommands lists commands that bypass automatic service initialisation.
// Built dynamically from bootstrap commands plus extension-declared serviceless commands.
var noServiceCommands map[string]bool

// buildNoServiceCommands creates the set of commands that skip service initialisation.
//
// Why this exists: Most commands need the bridge service, but some must work
// without it. There are two categories:
//
//  1. Bootstrap commands (init, guide, config) - These help users set up or
//     learn about docbridge before any credentials exist. Running
//     "docbridge guide" shouldn't fail just because credentials.json is
//     missing.
//
//  2. Extension-declared serviceless commands - Extensions can implement the
//     Serviceless interface to declare commands that manage their own service
//     lifecycle. For example, "serve" builds its own service so it controls
//     startup reporting and shutdown.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Serviceless in your extension.
func buildNoServiceCommands() map[string]bool {
	cmds := map[string]bool{
		// Core bootstrap commands - always serviceless
		"init":   true,
		"guide":  true,
		"config": true,
	}

	// Add extension-declared serviceless commands
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Serviceless); ok {
			for _, name := range s.NoServiceCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions builds the bridge service and injects it into extensions.
//
// Why sync.Once: The service wires together credential storage, the auth
// manager, and the provider client, and must be shared across all extensions
// so they observe one credential state machine. sync.Once guarantees exactly
// one initialisation per process, even if multiple commands somehow trigger it.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		store := creds.NewStore(CredentialsDir())

		// Set profile identifier for audit logging
		log.SetProfile(store.Dir())

		client := gdocs.NewREST()
		svc := bridge.New(auth.New(store, client), client, cfg.ProviderTimeout())
		extContext = extension.NewContext(svc, store, cfg)

		// Inject the shared context into all Initializable extensions.
		// This is dependency injection - extensions receive the service rather
		// than creating it themselves, enabling shared credential state.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noServiceCommands after all extensions are registered
		noServiceCommands = buildNoServiceCommands()
	})
}
