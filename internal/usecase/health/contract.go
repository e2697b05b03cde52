package health

import "context"

// EngineChecker checks search engine availability.
type EngineChecker interface {
	Health(ctx context.Context) error
}

// CompletionChecker checks completion provider availability.
type CompletionChecker interface {
	HealthCheck(ctx context.Context) error
}
