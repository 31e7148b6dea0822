package cmd

import (
	"github.com/spf13/cobra"

	"mailpress/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a command for the root CLI. Call from init() in extension
// packages; panics once Apply has locked the registry.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

// Apply attaches all queued commands to the root command and locks the
// registry, so late Register calls fail loudly instead of being ignored.
func Apply() {
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
