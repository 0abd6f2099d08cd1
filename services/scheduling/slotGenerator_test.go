package scheduling

import (
	"errors"
	"testing"
	"time"
)

func tutorWith(id string, wd time.Weekday, windows ...Window) Person {
	return Person{
		ID:   id,
		Role: RoleTutor,
		Availability: map[time.Weekday]DayAvailability{
			wd: {Available: true, Windows: windows},
		},
	}
}

func slotStarts(slots []Slot) []TimeOfDay {
	out := make([]TimeOfDay, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func equalStarts(a, b []TimeOfDay) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateSlots_EmptyCalendar(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", nil)

	slots, err := GenerateSlots(p, "2026-10-21", 60, 15, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %v", slots)
	}
	if slots[0] != (Slot{Start: 540, End: 600}) || slots[1] != (Slot{Start: 615, End: 675}) {
		t.Fatalf("expected 09:00-10:00 and 10:15-11:15, got %v", slots)
	}
	if slots[1].Label() != "10:15 AM - 11:15 AM" {
		t.Fatalf("unexpected label %q", slots[1].Label())
	}
}

func TestGenerateSlots_ExistingBookingKeepsGap(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", []Booking{oneTime("b1", "t1", "2026-10-21", 615, 60)})

	slots, err := GenerateSlots(p, "2026-10-21", 60, 15, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStarts(slotStarts(slots), []TimeOfDay{540}) {
		t.Fatalf("expected only 09:00, got %v", slots)
	}
}

func TestGenerateSlots_RecurringBookingBlocks(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", []Booking{recurring("r1", "t1", NewWeekdaySet(time.Wednesday), 9*60, 60)})

	slots, _ := GenerateSlots(p, "2026-10-21", 60, 15, snap)
	if !equalStarts(slotStarts(slots), []TimeOfDay{615}) {
		t.Fatalf("expected only 10:15, got %v", slots)
	}
}

func TestGenerateSlots_FailsClosedWithoutSnapshot(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})

	for _, snap := range []*Snapshot{nil, NewSnapshot()} {
		slots, err := GenerateSlots(p, "2026-10-21", 60, 15, snap)
		if !errors.Is(err, ErrIncompleteData) {
			t.Fatalf("expected ErrIncompleteData, got %v", err)
		}
		if slots != nil {
			t.Fatalf("expected no slots, got %v", slots)
		}
	}

	other := NewSnapshot()
	other.Put("t1", "2026-10-22", nil)
	if _, err := GenerateSlots(p, "2026-10-21", 60, 15, other); !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData for a different date, got %v", err)
	}
}

func TestGenerateSlots_UnavailableDay(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-22", nil)

	slots, err := GenerateSlots(p, "2026-10-22", 60, 15, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected an empty, non-nil list, got %#v", slots)
	}
}

func TestGenerateSlots_PointWindows(t *testing.T) {
	p := tutorWith("t1", time.Wednesday,
		Window{Start: 10*60 + 30, Point: true},
		Window{Start: 9 * 60, Point: true},
		Window{Start: 9 * 60, Point: true},
		Window{Start: 23*60 + 30, Point: true},
	)
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", []Booking{oneTime("b1", "t1", "2026-10-21", 10*60+15, 30)})

	slots, err := GenerateSlots(p, "2026-10-21", 60, 0, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10:30 collides with 10:15-10:45 and 23:30 runs past midnight.
	if !equalStarts(slotStarts(slots), []TimeOfDay{540}) {
		t.Fatalf("expected only 09:00, got %v", slots)
	}
}

func TestGenerateSlots_StudentCalendar(t *testing.T) {
	p := Person{
		ID:   "s1",
		Role: RoleStudent,
		Availability: map[time.Weekday]DayAvailability{
			time.Wednesday: {Available: true, Windows: []Window{{Start: 9 * 60, End: 11 * 60}}},
		},
	}
	snap := NewSnapshot()
	snap.Put("s1", "2026-10-21", []Booking{
		oneTime("b1", "t7", "2026-10-21", 9*60, 30, "s1"),
		oneTime("b2", "t7", "2026-10-21", 10*60, 30, "s2"),
	})

	slots, err := GenerateSlots(p, "2026-10-21", 30, 0, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStarts(slotStarts(slots), []TimeOfDay{570, 600, 630}) {
		t.Fatalf("expected 09:30, 10:00 and 10:30, got %v", slots)
	}
}

func TestGenerateSlots_SlotsRespectGap(t *testing.T) {
	p := tutorWith("t1", time.Wednesday,
		Window{Start: 8 * 60, End: 12 * 60},
		Window{Start: 11 * 60, End: 17 * 60},
	)
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", []Booking{
		oneTime("b1", "t1", "2026-10-21", 9*60+50, 40),
		oneTime("b2", "t1", "2026-10-21", 14*60, 25),
	})

	for _, gap := range []int{0, 5, 15} {
		for _, duration := range []int{30, 45, 60} {
			slots, err := GenerateSlots(p, "2026-10-21", duration, gap, snap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			existing, _ := snap.Lookup("t1", "2026-10-21")
			for i, s := range slots {
				if s.End-s.Start != TimeOfDay(duration) {
					t.Fatalf("slot %v has the wrong length", s)
				}
				if i > 0 && slots[i-1].Start >= s.Start {
					t.Fatalf("slots out of order: %v", slots)
				}
				for _, b := range existing {
					if s.Start < b.End()+TimeOfDay(gap) && b.StartTime-TimeOfDay(gap) < s.End {
						t.Fatalf("gap %d duration %d: slot %v is within %d minutes of %s", gap, duration, s, gap, b.ID)
					}
				}
			}
		}
	}
}

func TestGenerateSlots_InputErrors(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 9 * 60, End: 12 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", nil)

	cases := []struct {
		name     string
		person   Person
		date     string
		duration int
		gap      int
	}{
		{"zero duration", p, "2026-10-21", 0, 15},
		{"negative gap", p, "2026-10-21", 60, -5},
		{"bad date", p, "21.10.2026", 60, 15},
		{"no id", Person{}, "2026-10-21", 60, 15},
	}
	for _, tc := range cases {
		_, err := GenerateSlots(tc.person, tc.date, tc.duration, tc.gap, snap)
		var ie *InputError
		if !errors.As(err, &ie) {
			t.Errorf("%s: expected InputError, got %v", tc.name, err)
		}
	}
}

// The stride grows with the gap, so a larger gap can shift candidates onto a
// start that clears an existing booking. Slot counts are not monotonic in gap.
func TestGenerateSlots_StrideFollowsGap(t *testing.T) {
	p := tutorWith("t1", time.Wednesday, Window{Start: 8 * 60, End: 10 * 60})
	snap := NewSnapshot()
	snap.Put("t1", "2026-10-21", []Booking{oneTime("b1", "t1", "2026-10-21", 8*60+10, 60)})

	slots, err := GenerateSlots(p, "2026-10-21", 30, 5, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("gap 5: expected no slots, got %v", slots)
	}

	slots, err = GenerateSlots(p, "2026-10-21", 30, 10, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStarts(slotStarts(slots), []TimeOfDay{9*60 + 20}) {
		t.Fatalf("gap 10: expected only 09:20, got %v", slots)
	}
}

func TestSnapshot_ZeroValueIsUsable(t *testing.T) {
	var snap Snapshot
	if _, ok := snap.Lookup("t1", "2026-10-21"); ok {
		t.Fatal("expected an empty snapshot to report nothing loaded")
	}
	snap.Put("t1", "2026-10-21", nil)
	got, ok := snap.Lookup("t1", "2026-10-21")
	if !ok || len(got) != 0 {
		t.Fatalf("expected loaded and empty, got %v %v", got, ok)
	}
}
