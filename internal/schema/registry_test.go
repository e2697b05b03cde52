package schema

import (
	"reflect"
	"sync"
	"testing"

	"github.com/chippyinn/concierge/internal/domain"
)

func TestRegistry_SnapshotCopies(t *testing.T) {
	r := New([]string{"location", "guests"}, []string{"price"})

	filterable, sortable := r.Snapshot()
	filterable[0] = "mutated"
	sortable[0] = "mutated"

	gotF, gotS := r.Snapshot()
	if gotF[0] != "location" || gotS[0] != "price" {
		t.Error("Snapshot must return copies, not the backing slices")
	}
}

func TestRegistry_Add(t *testing.T) {
	r := New([]string{"location"}, []string{"price"})

	if !r.Add(domain.FacetSort, "amenities") {
		t.Error("adding a new sortable attribute should report a change")
	}
	if r.Add(domain.FacetSort, "amenities") {
		t.Error("re-adding the same attribute should report no change")
	}
	if r.Add(domain.FacetFilter, "") {
		t.Error("empty attribute should be ignored")
	}

	if !r.Has(domain.FacetSort, "amenities") {
		t.Error("sortable set should contain amenities")
	}
	if r.Has(domain.FacetFilter, "amenities") {
		t.Error("filterable set should not contain amenities")
	}

	_, sortable := r.Snapshot()
	if want := []string{"price", "amenities"}; !reflect.DeepEqual(sortable, want) {
		t.Errorf("sortable = %v, want %v (insertion order preserved)", sortable, want)
	}
}

func TestRegistry_DedupesInitialSets(t *testing.T) {
	r := New([]string{"location", "location", ""}, nil)
	filterable, _ := r.Snapshot()
	if want := []string{"location"}; !reflect.DeepEqual(filterable, want) {
		t.Errorf("filterable = %v, want %v", filterable, want)
	}
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	r := New(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(domain.FacetFilter, "location", "guests")
			r.Add(domain.FacetSort, "price")
			r.Snapshot()
		}()
	}
	wg.Wait()

	filterable, sortable := r.Snapshot()
	if len(filterable) != 2 || len(sortable) != 1 {
		t.Errorf("sets = %v / %v, want 2 filterable and 1 sortable", filterable, sortable)
	}
}
