// Package catalog holds the built-in model registrations. Each model lives in
// its own file and registers itself from init.
package catalog

import (
	"sync"

	"evalmodels/internal/registry"
	"evalmodels/pkg/types"
)

var (
	mu     sync.Mutex
	models []types.ModelEntry
)

func register(e types.ModelEntry) {
	mu.Lock()
	defer mu.Unlock()
	models = append(models, e.Clone())
}

// Models returns the built-in `models` sequence. Each call returns fresh copies.
func Models() []types.ModelEntry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]types.ModelEntry, 0, len(models))
	for _, e := range models {
		out = append(out, e.Clone())
	}
	return out
}

// Registry returns a registry seeded with the built-in models.
func Registry() (*registry.Registry, error) {
	return registry.New(Models()...)
}
