package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chippyinn/concierge/internal/domain"
	"github.com/chippyinn/concierge/internal/schema"
)

// --- Mocks ---

type mockEngine struct {
	mu           sync.Mutex
	readyErr     error
	hasIndex     bool
	hasIndexErr  error
	createErr    error
	loadErr      error
	settingsErr  error
	createCalls  int
	loadCalls    int
	pushCalls    int
	loadedRooms  []domain.Room
	pushedFilter []string
	pushedSort   []string
}

func (m *mockEngine) WaitForReady(_ context.Context, _ time.Duration) error {
	return m.readyErr
}

func (m *mockEngine) HasIndex(_ context.Context) (bool, error) {
	return m.hasIndex, m.hasIndexErr
}

func (m *mockEngine) CreateIndex(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	return m.createErr
}

func (m *mockEngine) LoadRooms(_ context.Context, rooms []domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	m.loadedRooms = rooms
	return m.loadErr
}

func (m *mockEngine) PushSettings(_ context.Context, filterable, sortable []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushCalls++
	m.pushedFilter = filterable
	m.pushedSort = sortable
	return m.settingsErr
}

func testRooms() []domain.Room {
	return []domain.Room{{ID: "r-1", Name: "A", Location: "Pune", Price: 1500, Guests: 2}}
}

func testRegistry() *schema.Registry {
	return schema.New([]string{"location", "guests", "price"}, []string{"price"})
}

// --- Tests ---

func TestRun_CreatesMissingIndex(t *testing.T) {
	engine := &mockEngine{hasIndex: false}
	svc := New(engine, testRooms(), testRegistry(), time.Second)

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.createCalls != 1 || engine.loadCalls != 1 {
		t.Errorf("create/load calls = %d/%d, want 1/1", engine.createCalls, engine.loadCalls)
	}
	if len(engine.loadedRooms) != 1 {
		t.Errorf("loaded rooms = %v", engine.loadedRooms)
	}
	if engine.pushCalls != 1 {
		t.Errorf("settings pushes = %d, want 1", engine.pushCalls)
	}
	if len(engine.pushedFilter) != 3 || len(engine.pushedSort) != 1 {
		t.Errorf("pushed settings = %v / %v", engine.pushedFilter, engine.pushedSort)
	}
}

func TestRun_ExistingIndexSkipsLoadButPushesSettings(t *testing.T) {
	engine := &mockEngine{hasIndex: true}
	svc := New(engine, testRooms(), testRegistry(), time.Second)

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.createCalls != 0 || engine.loadCalls != 0 {
		t.Errorf("create/load calls = %d/%d, want 0/0", engine.createCalls, engine.loadCalls)
	}
	if engine.pushCalls != 1 {
		t.Errorf("settings pushes = %d, want 1", engine.pushCalls)
	}
}

func TestRun_Idempotent(t *testing.T) {
	engine := &mockEngine{hasIndex: false}
	svc := New(engine, testRooms(), testRegistry(), time.Second)

	for i := 0; i < 3; i++ {
		if err := svc.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if engine.createCalls != 1 || engine.pushCalls != 1 {
		t.Errorf("create/push calls = %d/%d, want 1/1 across repeated runs",
			engine.createCalls, engine.pushCalls)
	}
}

func TestRun_ConcurrentCallersBootstrapOnce(t *testing.T) {
	engine := &mockEngine{hasIndex: false}
	svc := New(engine, testRooms(), testRegistry(), time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Run(context.Background())
		}()
	}
	wg.Wait()

	if engine.createCalls != 1 {
		t.Errorf("create calls = %d, want 1 under concurrency", engine.createCalls)
	}
}

func TestRun_FailuresPropagate(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		engine *mockEngine
	}{
		{"engine not ready", &mockEngine{readyErr: boom}},
		{"index check fails", &mockEngine{hasIndexErr: boom}},
		{"create fails", &mockEngine{createErr: boom}},
		{"load fails", &mockEngine{loadErr: boom}},
		{"settings push fails", &mockEngine{hasIndex: true, settingsErr: boom}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(tc.engine, testRooms(), testRegistry(), time.Second)
			err := svc.Run(context.Background())
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want wrapped boom", err)
			}
			// A failed bootstrap is retryable.
			tcEngineReset(tc.engine)
			if err := svc.Run(context.Background()); err != nil {
				t.Errorf("retry after failure: %v", err)
			}
		})
	}
}

func tcEngineReset(m *mockEngine) {
	m.readyErr = nil
	m.hasIndexErr = nil
	m.createErr = nil
	m.loadErr = nil
	m.settingsErr = nil
}
