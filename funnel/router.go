package funnel

import (
	"fmt"
	"sort"
	"sync"
)

// Handler folds one inbound envelope into the application's aggregate state
// A and returns the next state plus any envelopes to send back out.
type Handler[A any] func(env Envelope, app A) (A, []Envelope, error)

// Router routes inbound envelopes to the handler registered for their
// module name. Build it once at application startup; registration after
// dispatch has begun is safe but rarely useful.
type Router[A any] struct {
	handlers map[string]Handler[A]
	mu       sync.RWMutex
}

// NewRouter creates an empty Router.
func NewRouter[A any]() *Router[A] {
	return &Router[A]{handlers: make(map[string]Handler[A])}
}

// Register adds a handler for a module name.
// Returns ErrAlreadyRegistered if the module is already taken.
// Thread-safe for concurrent registration.
func (r *Router[A]) Register(module string, h Handler[A]) error {
	if module == "" {
		return ErrEmptyModule
	}
	if h == nil {
		return ErrHandlerNil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[module]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, module)
	}

	r.handlers[module] = h
	return nil
}

// Modules returns the registered module names, sorted.
func (r *Router[A]) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes one envelope to the handler registered for its module and
// returns the handler's resulting state and outbound envelopes. On any
// failure, unknown module included, the aggregate state is returned
// untouched: handlers never leave it partially updated.
func (r *Router[A]) Dispatch(env Envelope, app A) (A, []Envelope, error) {
	r.mu.RLock()
	h, exists := r.handlers[env.Module]
	r.mu.RUnlock()

	if !exists {
		return app, nil, fmt.Errorf("%w: %s", ErrUnknownModule, env.Module)
	}

	next, out, err := h(env, app)
	if err != nil {
		return app, nil, fmt.Errorf("module %s: %w", env.Module, err)
	}
	return next, out, nil
}
