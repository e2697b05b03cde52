package bootstrap

import (
	"context"
	"time"

	"github.com/chippyinn/concierge/internal/domain"
)

// Engine is the search-engine surface the bootstrapper needs. Every
// asynchronous operation is awaited to a terminal task state by the
// implementation before returning.
type Engine interface {
	WaitForReady(ctx context.Context, timeout time.Duration) error
	HasIndex(ctx context.Context) (bool, error)
	CreateIndex(ctx context.Context) error
	LoadRooms(ctx context.Context, rooms []domain.Room) error
	PushSettings(ctx context.Context, filterable, sortable []string) error
}
