// Package rooms loads the room source set. The file is the source of truth
// at startup; the search index holds the queryable copy afterwards.
package rooms

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chippyinn/concierge/internal/domain"
)

// Repo reads room records from a JSON file.
type Repo struct {
	path string
}

// New creates a room repository for the given file path.
func New(path string) *Repo {
	return &Repo{path: path}
}

// Load reads and validates the full room set.
func (r *Repo) Load() ([]domain.Room, error) {
	data, err := os.ReadFile(filepath.Clean(r.path))
	if err != nil {
		return nil, fmt.Errorf("read rooms file %s: %w", r.path, err)
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("parse rooms file %s: %w", r.path, err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("rooms file %s contains no rooms", r.path)
	}

	for i, room := range rooms {
		if err := validate(room); err != nil {
			return nil, fmt.Errorf("rooms file %s: record %d: %w", r.path, i, err)
		}
	}
	return rooms, nil
}

func validate(r domain.Room) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required (id %s)", r.ID)
	}
	if r.Location == "" {
		return fmt.Errorf("location is required (id %s)", r.ID)
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative (id %s)", r.ID)
	}
	if r.Guests < 1 {
		return fmt.Errorf("guests must be at least 1 (id %s)", r.ID)
	}
	return nil
}
