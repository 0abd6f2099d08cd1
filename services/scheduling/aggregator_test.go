package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestAggregateSlots_MergesByStart(t *testing.T) {
	alice := tutorWith("alice", time.Wednesday, Window{Start: 9 * 60, End: 11 * 60})
	bob := tutorWith("bob", time.Wednesday, Window{Start: 10 * 60, End: 12 * 60})
	carol := tutorWith("carol", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})

	snap := NewSnapshot()
	snap.Put("alice", "2026-10-21", nil)
	snap.Put("bob", "2026-10-21", nil)
	snap.Put("carol", "2026-10-21", []Booking{oneTime("c1", "carol", "2026-10-21", 9*60, 60)})

	agg, err := AggregateSlots([]Person{bob, alice, carol}, "2026-10-21", 60, 0, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[TimeOfDay][]string{
		540: {"alice"},
		600: {"bob", "alice", "carol"},
		660: {"bob", "carol"},
	}
	if len(agg) != len(want) {
		t.Fatalf("expected %d aggregated slots, got %+v", len(want), agg)
	}
	for i, a := range agg {
		if i > 0 && agg[i-1].Start >= a.Start {
			t.Fatalf("aggregated slots out of order: %+v", agg)
		}
		ids := want[a.Start]
		if len(ids) != len(a.Persons) {
			t.Fatalf("slot %s: expected %v, got %+v", a.Start, ids, a.Persons)
		}
		for j, p := range a.Persons {
			if p.ID != ids[j] {
				t.Fatalf("slot %s: expected %v, got %+v", a.Start, ids, a.Persons)
			}
		}
	}
	first, ok := agg[1].FirstAvailable()
	if !ok || first.ID != "bob" {
		t.Fatalf("expected bob to be first available at 10:00, got %+v", first)
	}
	if agg[1].Label != "10:00 AM - 11:00 AM" {
		t.Fatalf("unexpected label %q", agg[1].Label)
	}
}

func TestAggregateSlots_SkipsUnloadedPersons(t *testing.T) {
	alice := tutorWith("alice", time.Wednesday, Window{Start: 9 * 60, End: 10 * 60})
	bob := tutorWith("bob", time.Wednesday, Window{Start: 9 * 60, End: 10 * 60})

	snap := NewSnapshot()
	snap.Put("alice", "2026-10-21", nil)

	agg, err := AggregateSlots([]Person{bob, alice}, "2026-10-21", 60, 15, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg) != 1 || len(agg[0].Persons) != 1 || agg[0].Persons[0].ID != "alice" {
		t.Fatalf("expected only alice at 09:00, got %+v", agg)
	}
}

func TestAggregateSlots_Empty(t *testing.T) {
	agg, err := AggregateSlots(nil, "2026-10-21", 60, 15, NewSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg == nil || len(agg) != 0 {
		t.Fatalf("expected an empty list, got %#v", agg)
	}
	if _, ok := (AggregatedSlot{}).FirstAvailable(); ok {
		t.Fatal("expected no person for an empty slot")
	}
}

func TestAggregateSlots_InputErrors(t *testing.T) {
	_, err := AggregateSlots(nil, "2026-10-21", -1, 15, NewSnapshot())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	_, err = AggregateSlots([]Person{{Role: RoleTutor}}, "2026-10-21", 60, 15, NewSnapshot())
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError for a person without id, got %v", err)
	}
}
