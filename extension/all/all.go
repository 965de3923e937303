// Package all imports all core docbridge extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/docbridge/extension/auth"
	_ "github.com/jpl-au/docbridge/extension/core"
	_ "github.com/jpl-au/docbridge/extension/docs"
)
