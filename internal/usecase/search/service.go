// Package search executes room searches with a bounded self-healing retry:
// when the engine rejects an undeclared filter or sort attribute, the schema
// registry is extended, settings are re-pushed, and the query runs once more.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/logger"
	"github.com/chippyinn/concierge/internal/metrics"
	"github.com/chippyinn/concierge/internal/schema"
)

const (
	// resultLimit caps every search at five hits.
	resultLimit = 5
	// defaultMaxAttempts bounds engine calls per logical query: one initial
	// attempt plus at most one post-heal retry.
	defaultMaxAttempts = 2
)

// priceAscending is the fixed sort specification for every search.
var priceAscending = []string{"price:asc"}

// Service is the search executor.
type Service struct {
	engine      Engine
	registry    *schema.Registry
	maxAttempts int

	// healMu serializes "extend registry -> push settings" so concurrent
	// healing for different sessions cannot race on overlapping updates.
	healMu sync.Mutex
}

// New creates a search executor over the given engine and registry.
func New(engine Engine, registry *schema.Registry) *Service {
	return &Service{engine: engine, registry: registry, maxAttempts: defaultMaxAttempts}
}

// WithMaxAttempts overrides the engine call bound per logical search.
func (s *Service) WithMaxAttempts(n int) *Service {
	if n > 0 {
		s.maxAttempts = n
	}
	return s
}

// Search runs the slots' filter against the engine. Empty hits are a valid
// outcome. A schema mismatch triggers one heal-and-retry; any other failure,
// or a second failure, is returned to the caller.
func (s *Service) Search(ctx context.Context, slots domain.Slots) ([]domain.Room, error) {
	filter := BuildFilter(slots)
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		hits, err := s.engine.Search(ctx, filter, resultLimit, priceAscending)
		if err == nil {
			return hits, nil
		}
		lastErr = err

		var mismatch *domain.SchemaMismatchError
		if !errors.As(err, &mismatch) || attempt == s.maxAttempts {
			break
		}

		log.Warn("schema mismatch, healing registry",
			zap.String("facet", string(mismatch.Facet)),
			zap.Strings("attributes", mismatch.Attributes),
		)
		if err := s.heal(ctx, mismatch); err != nil {
			return nil, fmt.Errorf("heal schema: %w", err)
		}
	}
	return nil, fmt.Errorf("search rooms: %w", lastErr)
}

// heal extends the registry with the offending attributes and pushes the
// updated settings to the engine as one critical section. The attributes are
// registered locally even if the push fails, so the next caller re-pushes a
// consistent set.
func (s *Service) heal(ctx context.Context, mismatch *domain.SchemaMismatchError) error {
	s.healMu.Lock()
	defer s.healMu.Unlock()

	s.registry.Add(mismatch.Facet, mismatch.Attributes...)
	metrics.SchemaHealsTotal.WithLabelValues(string(mismatch.Facet)).Inc()

	filterable, sortable := s.registry.Snapshot()
	if err := s.engine.PushSettings(ctx, filterable, sortable); err != nil {
		return fmt.Errorf("push settings: %w", err)
	}
	return nil
}
