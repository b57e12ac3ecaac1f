package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/bundlechain/pkg/errors"
)

// Registry stores items by name and remembers the order they were
// registered in. It is safe for concurrent use.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates an empty registry. kind names the items in error messages.
func New[T any](kind string) *Registry[T] {
	if kind == "" {
		kind = "item"
	}
	return &Registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

// Register adds an item under a name that is not taken yet
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s %q is already registered", r.kind, name).
			WithDetail(r.kind, name)
	}
	r.items[name] = item
	r.order = append(r.order, name)
	return nil
}

// Get returns the item registered under name
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%s %q is not registered", r.kind, name).
			WithDetail(r.kind, name)
	}
	return item, nil
}

// Remove drops the item registered under name
func (r *Registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; !exists {
		return errors.Newf(errors.ErrNotFound, "%s %q is not registered", r.kind, name).
			WithDetail(r.kind, name)
	}
	delete(r.items, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Names returns the registered names in registration order
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Sorted returns the registered names in lexical order
func (r *Registry[T]) Sorted() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.items[name]
	return exists
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// MustRegister registers an item and panics if registration fails. It is
// meant for init() functions, where a duplicate name is a programming error.
func MustRegister[T any](reg *Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
