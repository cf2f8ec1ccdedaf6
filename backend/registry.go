// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/postfx/render"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first that opens wins).
	backendPriority = []string{BackendNative, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in lexical order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames(backends)
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens a context with the named backend.
func Open(name string, cfg Config) (render.Context, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	ctx, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return ctx, nil
}

// Default opens a context with the best backend that accepts cfg.
// Backends are tried in priority order (native, then software), then any
// other registered backend in name order. It returns the chosen name.
func Default(cfg Config) (render.Context, string, error) {
	registryMu.RLock()
	order := slices.Clone(backendPriority)
	for _, name := range sortedNames(backends) {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	factories := make(map[string]Factory, len(backends))
	for name, f := range backends {
		factories[name] = f
	}
	registryMu.RUnlock()

	var errs []error
	for _, name := range order {
		factory, ok := factories[name]
		if !ok {
			continue
		}
		ctx, err := factory(cfg)
		if err == nil {
			return ctx, name, nil
		}
		errs = append(errs, fmt.Errorf("backend %s: %w", name, err))
	}
	return nil, "", errors.Join(append([]error{ErrBackendNotAvailable}, errs...)...)
}

func sortedNames(m map[string]Factory) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
