package domain

import (
	"errors"
	"testing"
)

func validSlots() Slots {
	return Slots{
		Location: "Pune",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-04",
		Guests:   2,
	}
}

func TestSlots_MissingMandatory(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Slots)
		missing []string
	}{
		{"complete", func(*Slots) {}, nil},
		{"no location", func(s *Slots) { s.Location = "" }, []string{"location"}},
		{"no check_in", func(s *Slots) { s.CheckIn = "" }, []string{"check_in"}},
		{"no check_out", func(s *Slots) { s.CheckOut = "" }, []string{"check_out"}},
		{"zero guests", func(s *Slots) { s.Guests = 0 }, []string{"guests"}},
		{"negative guests", func(s *Slots) { s.Guests = -1 }, []string{"guests"}},
		{
			"everything empty",
			func(s *Slots) { *s = Slots{} },
			[]string{"location", "check_in", "check_out", "guests"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSlots()
			tc.mutate(&s)

			got := s.MissingMandatory()
			if len(got) != len(tc.missing) {
				t.Fatalf("missing = %v, want %v", got, tc.missing)
			}
			for i := range got {
				if got[i] != tc.missing[i] {
					t.Errorf("missing[%d] = %q, want %q", i, got[i], tc.missing[i])
				}
			}
		})
	}
}

func TestSlots_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Slots)
		wantErr bool
	}{
		{"valid", func(*Slots) {}, false},
		{"valid with budget", func(s *Slots) { s.BudgetPerNight = 3000 }, false},
		{"missing field", func(s *Slots) { s.Location = "" }, true},
		{"bad check_in", func(s *Slots) { s.CheckIn = "next tuesday" }, true},
		{"bad check_out", func(s *Slots) { s.CheckOut = "01/10/2026" }, true},
		{"check_out equals check_in", func(s *Slots) { s.CheckOut = s.CheckIn }, true},
		{"check_out before check_in", func(s *Slots) { s.CheckOut = "2026-09-30" }, true},
		{"negative budget", func(s *Slots) { s.BudgetPerNight = -1 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSlots()
			tc.mutate(&s)

			err := s.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrSlotsIncomplete) {
					t.Errorf("error %v does not wrap ErrSlotsIncomplete", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSchemaMismatchError_Unwrap(t *testing.T) {
	err := NewSchemaMismatch(FacetSort, []string{"amenities"})

	if !errors.Is(err, ErrSchemaMismatch) {
		t.Error("expected errors.Is(err, ErrSchemaMismatch)")
	}

	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatal("expected errors.As to find *SchemaMismatchError")
	}
	if mismatch.Facet != FacetSort {
		t.Errorf("facet = %q, want %q", mismatch.Facet, FacetSort)
	}
	if len(mismatch.Attributes) != 1 || mismatch.Attributes[0] != "amenities" {
		t.Errorf("attributes = %v, want [amenities]", mismatch.Attributes)
	}
}
