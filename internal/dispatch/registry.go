package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Handler executes one registered method against a parameter mapping.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// ErrMethodNotSupported is returned by Resolve for unknown method names.
// Dispatch surfaces it immediately and never retries it.
var ErrMethodNotSupported = errors.New("method not supported")

// Registry maps method names to handlers. It is populated once during
// startup and read-only afterward; the lock exists so registration order
// does not matter across wiring goroutines.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds name to handler. Registering the same name twice is a
// wiring bug and returns an error; callers treat it as fatal at startup.
func (r *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return errors.New("method name must not be empty")
	}
	if handler == nil {
		return fmt.Errorf("nil handler for method %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("method %s already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// Resolve returns the handler bound to name.
func (r *Registry) Resolve(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotSupported, name)
	}
	return h, nil
}

// Methods returns the registered method names in no particular order.
// Used by the transport to advertise the catalogue.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
