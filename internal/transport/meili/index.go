package meili

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/metrics"
)

const (
	// wildcardQuery matches all documents; filtering does the narrowing.
	wildcardQuery = "*"
	primaryKey    = "id"
)

// RoomIndex binds a Client to one index and hides task bookkeeping: every
// asynchronous operation is awaited to a terminal state before returning.
type RoomIndex struct {
	client      *Client
	uid         string
	taskTimeout time.Duration
}

// NewRoomIndex creates a RoomIndex for the given index UID.
func NewRoomIndex(client *Client, uid string, taskTimeout time.Duration) *RoomIndex {
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	return &RoomIndex{client: client, uid: uid, taskTimeout: taskTimeout}
}

// WaitForReady waits for the engine to come up.
func (x *RoomIndex) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return x.client.WaitForReady(ctx, timeout)
}

// HasIndex reports whether the index exists.
func (x *RoomIndex) HasIndex(ctx context.Context) (bool, error) {
	return x.client.HasIndex(ctx, x.uid)
}

// CreateIndex creates the index and awaits the creation task.
func (x *RoomIndex) CreateIndex(ctx context.Context) error {
	taskUID, err := x.client.CreateIndex(ctx, x.uid, primaryKey)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.uid, err)
	}
	if err := x.client.WaitForTask(ctx, taskUID, x.taskTimeout); err != nil {
		return fmt.Errorf("create index %s: %w", x.uid, err)
	}
	return nil
}

// LoadRooms loads the room set into the index and awaits the indexing task.
func (x *RoomIndex) LoadRooms(ctx context.Context, rooms []domain.Room) error {
	taskUID, err := x.client.AddDocuments(ctx, x.uid, rooms)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	if err := x.client.WaitForTask(ctx, taskUID, x.taskTimeout); err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	return nil
}

// PushSettings replaces the filterable and sortable attribute sets and awaits
// both settings tasks.
func (x *RoomIndex) PushSettings(ctx context.Context, filterable, sortable []string) error {
	filterTask, err := x.client.UpdateFilterableAttributes(ctx, x.uid, filterable)
	if err != nil {
		return fmt.Errorf("push filterable attributes: %w", err)
	}
	if err := x.client.WaitForTask(ctx, filterTask, x.taskTimeout); err != nil {
		return fmt.Errorf("push filterable attributes: %w", err)
	}

	sortTask, err := x.client.UpdateSortableAttributes(ctx, x.uid, sortable)
	if err != nil {
		return fmt.Errorf("push sortable attributes: %w", err)
	}
	if err := x.client.WaitForTask(ctx, sortTask, x.taskTimeout); err != nil {
		return fmt.Errorf("push sortable attributes: %w", err)
	}
	return nil
}

// Search runs a wildcard query restricted by filter, sorted and capped.
func (x *RoomIndex) Search(ctx context.Context, filter string, limit int, sort []string) ([]domain.Room, error) {
	hits, err := x.client.Search(ctx, x.uid, wildcardQuery, filter, limit, sort)
	if err != nil {
		var mismatch *domain.SchemaMismatchError
		if errors.As(err, &mismatch) {
			metrics.EngineSearchesTotal.WithLabelValues("schema_error").Inc()
		} else {
			metrics.EngineSearchesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.EngineSearchesTotal.WithLabelValues("success").Inc()
	return hits, nil
}
