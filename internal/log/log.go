// Package log provides centralised audit logging for docbridge operations.
// Logs are stored in ~/.docbridge/log/docbridge-log.db and track CLI commands
// and MCP tool invocations across credential profiles.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("docs:read", "read").
//		Author(cmd.Author()).
//		Target(documentID).
//		Write(err)
//
//	log.Event("docs:search", "search").
//		Author(cmd.Author()).
//		Detail("query", query).
//		Detail("fallback", usedFallback).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "auth:login",
// "docs:search", "mcp:read".
package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// ErrNotOpen is returned by maintenance operations when the logger has not
// been opened.
var ErrNotOpen = errors.New("audit log not open")

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "auth:login", "mcp:read"
	Author string // who performed the action
	Action string // verb: search, read, list, login, reset, etc.
	Target string // what the operation addressed: document id, config key, path

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "auth:login", "docs:ls")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:search", "mcp:read")
//
// The action describes what operation was performed:
//   - "search", "read", "list", "login", "status", "reset", "set", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Target sets what the operation addressed: a document id, a search query,
// a config key, or a filesystem path. Leave unset for operations without a
// single target (e.g., serve).
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// queries, result counts, whether fallback content was served, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	text, err := svc.Read(ctx, id)
//	log.Event("docs:read", "read").Target(id).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProfile sets the credential profile identifier for subsequent entries.
// The dir should be the resolved credentials directory; its hash lets audit
// queries distinguish profiles without recording the path itself.
func SetProfile(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.profile = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Prune deletes entries that started more than olderThan ago and reports how
// many were removed. Returns ErrNotOpen when the logger is not initialised.
func Prune(olderThan time.Duration) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return 0, ErrNotOpen
	}
	return l.prune(time.Now().Add(-olderThan).Unix())
}

// Prunable reports how many entries Prune would delete for the same
// olderThan, without deleting anything. Supports vacuum --dry-run.
func Prunable(olderThan time.Duration) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return 0, ErrNotOpen
	}
	return l.countBefore(time.Now().Add(-olderThan).Unix())
}

// Vacuum compacts the log database, reclaiming space from pruned entries.
func Vacuum() error {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return ErrNotOpen
	}
	_, err := l.db.Exec(`VACUUM`)
	return err
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
