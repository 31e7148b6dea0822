package registry

import "sync"

// Registry is a keyed store for extension points (routes, CLI commands).
// Feature packages append to it from init(); Apply* functions lock each key
// afterwards so late registration fails loudly instead of being ignored.
type Registry struct {
	mu     sync.RWMutex
	global map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = New()

func New() *Registry {
	return &Registry{
		global: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

// SetGlobal stores a value for a key. Callers check IsLocked first.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global[key] = value
}

// GetGlobal retrieves a value for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.global[key]
	return v, ok
}

// Lock marks a key immutable. Called by Apply* after registration closes.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = true
}

// IsLocked reports whether a key has been locked.
func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens a locked key so tests can register mock entries.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = false
}
