package chat

import (
	"context"

	"github.com/chippyinn/concierge/internal/domain"
)

// Extractor turns conversation history into a booking intent.
type Extractor interface {
	Extract(ctx context.Context, history []domain.Turn) (domain.Intent, error)
}

// Searcher runs a room search for a validated slot set.
type Searcher interface {
	Search(ctx context.Context, slots domain.Slots) ([]domain.Room, error)
}

// Sessions is the per-conversation turn log.
type Sessions interface {
	Append(id string, turn domain.Turn)
	History(id string) []domain.Turn
}
