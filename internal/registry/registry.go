// Package registry holds model entries keyed by abbr and reads them from
// YAML, JSON or TOML documents.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"evalmodels/pkg/types"
)

var (
	ErrNotFound      = errors.New("model not found")
	ErrDuplicateAbbr = errors.New("duplicate abbr")
)

// IsNotFound reports whether err indicates a missing abbr.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Registry is an ordered set of entries keyed by abbr. Entries are copied on
// the way in and on the way out, so registered records never change.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byAbbr map[string]types.ModelEntry
}

// New builds a registry from entries in order.
func New(entries ...types.ModelEntry) (*Registry, error) {
	r := &Registry{byAbbr: make(map[string]types.ModelEntry, len(entries))}
	for _, e := range entries {
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends e. An empty or already registered abbr is rejected.
func (r *Registry) Add(e types.ModelEntry) error {
	if e.Abbr == "" {
		return fmt.Errorf("entry without abbr (path %q)", e.Path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byAbbr[e.Abbr]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateAbbr, e.Abbr)
	}
	r.byAbbr[e.Abbr] = e.Clone()
	r.order = append(r.order, e.Abbr)
	return nil
}

// Get returns a copy of the entry registered under abbr.
func (r *Registry) Get(abbr string) (types.ModelEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byAbbr[abbr]
	if !ok {
		return types.ModelEntry{}, fmt.Errorf("%w: %s", ErrNotFound, abbr)
	}
	return e.Clone(), nil
}

// List returns copies of all entries in registration order.
func (r *Registry) List() []types.ModelEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.ModelEntry, 0, len(r.order))
	for _, abbr := range r.order {
		out = append(out, r.byAbbr[abbr].Clone())
	}
	return out
}

// Abbrs returns registered abbrs in order.
func (r *Registry) Abbrs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// File returns the registry as a models document.
func (r *Registry) File() types.ModelsFile {
	return types.ModelsFile{Models: r.List()}
}
