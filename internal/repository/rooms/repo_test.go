package rooms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRoomsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rooms file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoomsFile(t, `[
		{"id": "r-1", "name": "Budget Twin", "location": "Pune", "price": 1500, "guests": 2, "amenities": ["wifi"], "available": true},
		{"id": "r-2", "name": "Sea View Suite", "location": "Goa", "price": 5200, "guests": 4, "available": false}
	]`)

	rooms, err := New(path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("rooms = %d, want 2", len(rooms))
	}
	if rooms[0].ID != "r-1" || rooms[0].Location != "Pune" || rooms[0].Guests != 2 {
		t.Errorf("first room = %+v", rooms[0])
	}
	if rooms[1].Available {
		t.Error("second room should be unavailable")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.json")).Load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeRoomsFile(t, `{"not": "an array"`)

	_, err := New(path).Load()
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_EmptySet(t *testing.T) {
	path := writeRoomsFile(t, `[]`)

	_, err := New(path).Load()
	if err == nil || !strings.Contains(err.Error(), "no rooms") {
		t.Fatalf("error = %v, want empty-set error", err)
	}
}

func TestLoad_InvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			"missing id",
			`[{"name": "Twin", "location": "Pune", "price": 1500, "guests": 2}]`,
			"id is required",
		},
		{
			"missing location",
			`[{"id": "r-1", "name": "Twin", "price": 1500, "guests": 2}]`,
			"location is required",
		},
		{
			"negative price",
			`[{"id": "r-1", "name": "Twin", "location": "Pune", "price": -1, "guests": 2}]`,
			"price must not be negative",
		},
		{
			"zero guests",
			`[{"id": "r-1", "name": "Twin", "location": "Pune", "price": 1500, "guests": 0}]`,
			"guests must be at least 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeRoomsFile(t, tc.json)

			_, err := New(path).Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
}
