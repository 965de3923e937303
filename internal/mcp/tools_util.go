// tools_util.go provides helpers for MCP tool parameter extraction.
//
// Optional parameters use permissive extraction: the default comes back when
// the parameter is missing or the wrong type, because an LLM omitting an
// optional argument should never produce a cryptic type error.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON has no integer type, only "number", so encoding/json hands numbers to
// Go as float64; the assertion must go through float64 before converting.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}
