package extension

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	// Register with a unique name for this test
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	// Registering the same name again should panic
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()

	Register(testExtension{name: name})
}

func TestRegister_PreservesOrder(t *testing.T) {
	first := "test-order-first"
	second := "test-order-second"
	Register(testExtension{name: first})
	Register(testExtension{name: second})

	names := Names()
	fi := slices.Index(names, first)
	si := slices.Index(names, second)
	if fi == -1 || si == -1 {
		t.Fatalf("registered extensions missing from Names(): %v", names)
	}
	if fi > si {
		t.Errorf("registration order not preserved: %q at %d, %q at %d", first, fi, second, si)
	}
}

func TestGet(t *testing.T) {
	name := "test-get"
	Register(testExtension{name: name})

	if got := Get(name); got == nil || got.Name() != name {
		t.Errorf("Get(%q) = %v, want registered extension", name, got)
	}
	if got := Get("test-get-never-registered"); got != nil {
		t.Errorf("Get for unregistered name = %v, want nil", got)
	}
}
