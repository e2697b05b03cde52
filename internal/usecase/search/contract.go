package search

import (
	"context"

	"github.com/chippyinn/concierge/internal/domain"
)

// Engine is the search-engine surface the executor needs. Implemented by the
// meili transport; an asynchronous settings push is awaited to a terminal
// state before PushSettings returns.
type Engine interface {
	Search(ctx context.Context, filter string, limit int, sort []string) ([]domain.Room, error)
	PushSettings(ctx context.Context, filterable, sortable []string) error
}
