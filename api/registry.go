package api

import (
	"sync"

	"github.com/labstack/echo/v4"

	"mailpress/core/registry"
	"mailpress/service/transform"
)

var mu sync.Mutex

// RouteFunc registers routes on the root Echo instance with access to the
// transform pipeline.
type RouteFunc func(e *echo.Echo, tr transform.Transformer)

func getRoutes() []RouteFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]RouteFunc)
	}
	return nil
}

// RegisterRoute registers a route module. Call from init() in route packages.
func RegisterRoute(fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("api/registry: routes locked (register only during init)")
	}
	list := getRoutes()
	list = append(list, fn)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, list)
}

// RegisterGET is shorthand for registering a simple GET route.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ transform.Transformer) {
		e.GET(path, handler)
	})
}

// RegisterPOST is shorthand for registering a simple POST route.
func RegisterPOST(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ transform.Transformer) {
		e.POST(path, handler)
	})
}

// ApplyRoutes calls all registered route modules. Locks the registry.
func ApplyRoutes(e *echo.Echo, tr transform.Transformer) {
	for _, fn := range getRoutes() {
		fn(e, tr)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}
