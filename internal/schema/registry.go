// Package schema tracks which room attributes are declared filterable and
// sortable in the search engine. The registry is the single piece of mutable
// process-wide state outside session data; it starts from the static config
// and grows when the engine rejects a query over an undeclared attribute.
package schema

import (
	"sync"

	"github.com/chippyinn/concierge/internal/domain"
)

// Registry holds the filterable and sortable attribute sets.
// Insertion order is preserved so settings pushes are deterministic.
type Registry struct {
	mu         sync.Mutex
	filterable []string
	sortable   []string
}

// New creates a Registry seeded with the initial attribute sets.
func New(filterable, sortable []string) *Registry {
	return &Registry{
		filterable: dedupe(filterable),
		sortable:   dedupe(sortable),
	}
}

// Snapshot returns copies of both attribute sets.
func (r *Registry) Snapshot() (filterable, sortable []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.filterable...), append([]string(nil), r.sortable...)
}

// Add appends the attributes to the set named by facet, skipping ones already
// present. Returns true if the registry changed.
func (r *Registry) Add(facet domain.SchemaFacet, attributes ...string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := &r.filterable
	if facet == domain.FacetSort {
		set = &r.sortable
	}

	changed := false
	for _, attr := range attributes {
		if attr == "" || contains(*set, attr) {
			continue
		}
		*set = append(*set, attr)
		changed = true
	}
	return changed
}

// Has reports whether the attribute is present in the set named by facet.
func (r *Registry) Has(facet domain.SchemaFacet, attribute string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if facet == domain.FacetSort {
		return contains(r.sortable, attribute)
	}
	return contains(r.filterable, attribute)
}

func contains(set []string, attr string) bool {
	for _, a := range set {
		if a == attr {
			return true
		}
	}
	return false
}

func dedupe(attrs []string) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if a != "" && !contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}
