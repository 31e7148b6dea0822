package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, routes) — stored in GlobalRegistry
	KeyRegistryCmd    = "registry:cmd"
	KeyRegistryRoutes = "registry:routes"
)
