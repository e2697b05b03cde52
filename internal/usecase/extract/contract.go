package extract

import (
	"context"

	"github.com/chippyinn/concierge/internal/domain"
)

// Completer produces one chat completion for a system instruction and turn
// history. Implemented by the OpenRouter transport.
type Completer interface {
	Complete(ctx context.Context, system string, history []domain.Turn) (string, error)
}
