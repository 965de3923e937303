// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagCheck  = "check"   // Check for updates without installing
	FlagDryRun = "dry-run" // Preview without making changes
	FlagLocal  = "local"   // Use local scope (.docbridge in current directory)
	FlagOpen   = "open"    // Open the authorization URL in a browser

	// String flags

	FlagOlderThan = "older-than" // Duration threshold

	// Integer flags

	FlagMax = "max" // Limit number of results
)
