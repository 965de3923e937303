package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	env := newTestEnv(t)

	// Piped output gets raw markdown, not glamour rendering.
	out := env.run("guide")
	env.contains(out, "# docbridge")
	env.contains(out, "docbridge serve")
}

func TestGuide_Pages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		page   string
		expect string
	}{
		{"setup", "OAuth client"},
		{"auth", "DOCBRIDGE_AUTH_CODE"},
		{"serve", "mcpServers"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			out := env.run("guide", tt.page)
			env.contains(out, tt.expect)
		})
	}
}

func TestGuide_UnknownPage(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("guide", "nonexistent")
	assert.Error(t, err)
	env.contains(out, `guide "nonexistent" not found`)
	env.contains(out, "Available:")
	env.contains(out, "setup")
}
