package scheduling

import (
	"sort"
)

// Slot is a candidate session [Start, End).
type Slot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (s Slot) Label() string {
	return s.Start.Label() + " - " + s.End.Label()
}

// GenerateSlots lists the session start times available to p on date.
//
// Ranged windows are walked with a stride of duration+gap so that any two
// generated slots are already gap-compliant with each other; each candidate is
// then checked against the person's existing bookings from snap only, keeping
// at least gap minutes to each of them. If snap holds no entry for
// (p.ID, date) the result is ErrIncompleteData and no slots.
//
// Because the stride moves with gap, a larger gap can yield more slots.
func GenerateSlots(p Person, date string, duration, gap int, snap *Snapshot) ([]Slot, error) {
	d, err := validateSlotRequest(date, duration, gap)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, &InputError{Field: "personId", Message: "person id is required"}
	}
	existing, ok := snap.Lookup(p.ID, d)
	if !ok {
		return nil, ErrIncompleteData
	}

	opts := ConflictOptions{PersonID: p.ID, Role: p.Role, GapMinutes: gap, BufferOnce: true}
	if opts.Role == "" {
		opts.Role = RoleTutor
	}

	slots := []Slot{}
	seen := make(map[TimeOfDay]bool)
	try := func(start TimeOfDay) {
		if seen[start] {
			return
		}
		seen[start] = true
		if start+TimeOfDay(duration) > MinutesPerDay {
			return
		}
		candidate := Booking{
			ScheduleType: OneTime,
			Date:         d,
			StartTime:    start,
			Duration:     duration,
		}
		if opts.Role == RoleStudent {
			candidate.StudentIDs = []string{p.ID}
		} else {
			candidate.TutorID = p.ID
		}
		res, err := DetectConflicts(candidate, existing, opts)
		if err != nil || res.Conflict {
			return
		}
		slots = append(slots, Slot{Start: start, End: start + TimeOfDay(duration)})
	}

	stride := TimeOfDay(duration + gap)
	for _, w := range ResolveDayAvailability(p, d).Windows {
		if w.Point {
			try(w.Start)
			continue
		}
		for c := w.Start; c+TimeOfDay(duration) <= w.End; c += stride {
			try(c)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots, nil
}

func validateSlotRequest(date string, duration, gap int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	if duration <= 0 {
		return "", &InputError{Field: "duration", Message: "must be greater than zero"}
	}
	if gap < 0 {
		return "", &InputError{Field: "gapMinutes", Message: "must not be negative"}
	}
	return d, nil
}
