package domain

import (
	"reflect"
	"testing"
)

func TestBuildCatalog(t *testing.T) {
	rooms := []Room{
		{ID: "1", Name: "A", Location: "Pune", Price: 2800, Guests: 2, Amenities: []string{"wifi", "ac"}},
		{ID: "2", Name: "B", Location: "Goa", Price: 1200, Guests: 6, Amenities: []string{"pool", "wifi"}},
		{ID: "3", Name: "C", Location: "Pune", Price: 4500, Guests: 4, Amenities: nil},
	}

	c := BuildCatalog(rooms)

	if want := []string{"Goa", "Pune"}; !reflect.DeepEqual(c.Cities, want) {
		t.Errorf("cities = %v, want %v", c.Cities, want)
	}
	if want := []string{"ac", "pool", "wifi"}; !reflect.DeepEqual(c.Amenities, want) {
		t.Errorf("amenities = %v, want %v", c.Amenities, want)
	}
	if c.MinPrice != 1200 || c.MaxPrice != 4500 {
		t.Errorf("price range = %.0f..%.0f, want 1200..4500", c.MinPrice, c.MaxPrice)
	}
	if c.MaxGuests != 6 {
		t.Errorf("max guests = %d, want 6", c.MaxGuests)
	}
}

func TestBuildCatalog_Empty(t *testing.T) {
	c := BuildCatalog(nil)
	if len(c.Cities) != 0 || len(c.Amenities) != 0 || c.MaxGuests != 0 {
		t.Errorf("empty room set should yield empty catalog, got %+v", c)
	}
}
