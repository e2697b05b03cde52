package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource (e.g. an absent index).
	ErrNotFound = errors.New("not found")
	// ErrSlotsIncomplete signals a slot set that cannot back a search.
	ErrSlotsIncomplete = errors.New("slots incomplete")
	// ErrCompletionUnavailable signals a completion provider failure.
	ErrCompletionUnavailable = errors.New("completion provider unavailable")
	// ErrEngineUnavailable signals an unreachable search engine.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrSchemaMismatch signals a query attribute missing from engine settings.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrTaskFailed signals an engine task that reached the failed state.
	ErrTaskFailed = errors.New("engine task failed")
	// ErrTaskTimeout signals an engine task that never reached a terminal state.
	ErrTaskTimeout = errors.New("engine task timed out")
)

// SchemaFacet names the registry set a schema mismatch concerns.
type SchemaFacet string

// Schema facets.
const (
	FacetFilter SchemaFacet = "filter"
	FacetSort   SchemaFacet = "sort"
)

// SchemaMismatchError wraps ErrSchemaMismatch with the offending attributes
// extracted from the engine's error message.
type SchemaMismatchError struct {
	Facet      SchemaFacet
	Attributes []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s attributes not registered: %s",
		ErrSchemaMismatch.Error(), e.Facet, strings.Join(e.Attributes, ", "))
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// NewSchemaMismatch creates a schema mismatch error for the given facet.
func NewSchemaMismatch(facet SchemaFacet, attributes []string) error {
	return &SchemaMismatchError{Facet: facet, Attributes: attributes}
}
