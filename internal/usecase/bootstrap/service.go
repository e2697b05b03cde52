// Package bootstrap brings the search index to a usable state at startup:
// index present, room set loaded, schema settings applied. Any unrecoverable
// failure here is fatal to the process — there is no degraded mode without a
// working index.
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/logger"
	"github.com/chippyinn/concierge/internal/schema"
)

// Service is the index bootstrapper.
type Service struct {
	engine       Engine
	rooms        []domain.Room
	registry     *schema.Registry
	readyTimeout time.Duration

	// mu ensures only one bootstrap attempt runs; later callers observe the
	// completed state and return immediately.
	mu   sync.Mutex
	done bool
}

// New creates a bootstrapper for the given room set and registry.
func New(engine Engine, rooms []domain.Room, registry *schema.Registry, readyTimeout time.Duration) *Service {
	if readyTimeout <= 0 {
		readyTimeout = 30 * time.Second
	}
	return &Service{engine: engine, rooms: rooms, registry: registry, readyTimeout: readyTimeout}
}

// Run performs the bootstrap. Idempotent: safe to call again after success.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}

	log := logger.FromContext(ctx)

	if err := s.engine.WaitForReady(ctx, s.readyTimeout); err != nil {
		return fmt.Errorf("engine readiness: %w", err)
	}

	exists, err := s.engine.HasIndex(ctx)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if !exists {
		log.Info("index missing, creating and loading rooms", zap.Int("rooms", len(s.rooms)))
		if err := s.engine.CreateIndex(ctx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		if err := s.engine.LoadRooms(ctx, s.rooms); err != nil {
			return fmt.Errorf("load rooms: %w", err)
		}
	}

	filterable, sortable := s.registry.Snapshot()
	if err := s.engine.PushSettings(ctx, filterable, sortable); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}

	log.Info("index bootstrap complete",
		zap.Strings("filterable", filterable),
		zap.Strings("sortable", sortable),
	)
	s.done = true
	return nil
}
