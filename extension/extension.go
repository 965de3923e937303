// Package extension provides the plugin architecture for docbridge.
// Extensions encapsulate related functionality (commands, MCP tools) and
// register at init time, enabling modular feature development without
// touching core code.
package extension

import (
	"time"

	"github.com/spf13/cobra"
)

// Extension defines the contract for docbridge extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once shared services exist.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Serviceless is an optional interface for extensions with commands that
// don't require the bridge service. Commands returned by
// NoServiceCommands() will not trigger service initialisation in
// PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before credentials exist
// 2. Commands that manage their own service lifecycle
// 3. Utility commands that never reach the provider
type Serviceless interface {
	NoServiceCommands() []string
}

// Vacuumable extensions can clean up their own persistent data.
// The vacuum command calls Vacuum on all extensions implementing this
// interface after pruning the audit log. This allows extensions with their
// own on-disk state (caches, scratch files) to participate in the cleanup.
type Vacuumable interface {
	Extension
	// Vacuum removes extension data older than the given duration.
	// If olderThan is nil, all removable data is deleted.
	// Returns the count of records deleted.
	Vacuum(ctx Context, olderThan *time.Duration) (int64, error)
}
