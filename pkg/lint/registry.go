package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered analyzers and their descriptors.
type Registry struct {
	mu        sync.RWMutex
	analyzers map[string]Analyzer    // analyzer name -> analyzer
	byID      map[string]*Descriptor // descriptor ID -> descriptor
	byName    map[string]*Descriptor // descriptor name -> descriptor
	owners    map[string]Analyzer    // descriptor ID -> analyzer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: make(map[string]Analyzer),
		byID:      make(map[string]*Descriptor),
		byName:    make(map[string]*Descriptor),
		owners:    make(map[string]Analyzer),
	}
}

// Register adds an analyzer and indexes its descriptors.
// An analyzer with the same name is replaced.
func (r *Registry) Register(analyzer Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.analyzers[analyzer.Name()] = analyzer
	for _, d := range analyzer.SupportedDiagnostics() {
		r.byID[d.ID] = d
		if d.Name != "" {
			r.byName[d.Name] = d
		}
		r.owners[d.ID] = analyzer
	}
}

// Analyzer retrieves an analyzer by name.
func (r *Registry) Analyzer(name string) (Analyzer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyzers[name]
	return a, ok
}

// Get retrieves a descriptor by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.byID[key]; ok {
		return d, true
	}
	if d, ok := r.byName[key]; ok {
		return d, true
	}
	return nil, false
}

// Resolve returns the canonical ID, descriptor and owning analyzer for a key.
// The key can be a descriptor ID or name.
func (r *Registry) Resolve(key string) (string, *Descriptor, Analyzer, bool) {
	d, ok := r.Get(key)
	if !ok {
		return "", nil, nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return d.ID, d, r.owners[d.ID], true
}

// Analyzers returns all registered analyzers sorted by name.
func (r *Registry) Analyzers() []Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Analyzer, 0, len(r.analyzers))
	for _, a := range r.analyzers {
		result = append(result, a)
	}

	// Sort by name for consistent, deterministic output.
	slices.SortFunc(result, func(a, b Analyzer) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Descriptors returns every primary descriptor sorted by ID.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		result = append(result, d)
	}

	slices.SortFunc(result, func(a, b *Descriptor) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result
}

// IDs returns all registered descriptor IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in analyzers.
// Analyzers register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for analyzer registration
var DefaultRegistry = NewRegistry()
