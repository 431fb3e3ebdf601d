// Package registry keeps the deduplicated, insertion-ordered list of viewers
// who joined the giveaway. Names are folded to lowercase for matching; the
// first-seen display form is what the UI shows.
package registry

import (
	"strings"
	"sync"
)

type Registry struct {
	mu    sync.RWMutex
	order []string
	seen  map[string]struct{}
}

func New() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add registers a display name if its folded form is new and reports whether
// it was inserted.
func (r *Registry) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	r.order = append(r.order, name)
	return true
}

// Contains matches case-insensitively.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seen[strings.ToLower(name)]
	return ok
}

// Resolve returns the stored display form for a name, matched
// case-insensitively.
func (r *Registry) Resolve(name string) (string, bool) {
	key := strings.ToLower(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.seen[key]; !ok {
		return "", false
	}
	for _, stored := range r.order {
		if strings.ToLower(stored) == key {
			return stored, true
		}
	}
	return "", false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Snapshot returns the participants in first-seen order. The returned slice
// is a copy.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// At returns the participant at index i in first-seen order.
func (r *Registry) At(i int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.order[i]
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.seen = make(map[string]struct{})
}
