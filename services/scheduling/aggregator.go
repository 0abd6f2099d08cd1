package scheduling

import (
	"errors"
	"sort"
)

// AggregatedSlot is a start time offered by one or more persons. Persons keeps
// the order in which they were passed to AggregateSlots.
type AggregatedSlot struct {
	Start   TimeOfDay `json:"start"`
	End     TimeOfDay `json:"end"`
	Label   string    `json:"label"`
	Persons []Person  `json:"persons"`
}

// FirstAvailable is the person auto-selected when a caller picks this time:
// the first eligible one in input order, not a ranked choice.
func (a AggregatedSlot) FirstAvailable() (Person, bool) {
	if len(a.Persons) == 0 {
		return Person{}, false
	}
	return a.Persons[0], true
}

// AggregateSlots merges the slots of every person into one time-ordered list.
// Persons whose bookings are missing from snap contribute nothing.
func AggregateSlots(persons []Person, date string, duration, gap int, snap *Snapshot) ([]AggregatedSlot, error) {
	if _, err := validateSlotRequest(date, duration, gap); err != nil {
		return nil, err
	}

	byStart := make(map[TimeOfDay]*AggregatedSlot)
	for _, p := range persons {
		slots, err := GenerateSlots(p, date, duration, gap, snap)
		if errors.Is(err, ErrIncompleteData) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, s := range slots {
			agg, ok := byStart[s.Start]
			if !ok {
				agg = &AggregatedSlot{Start: s.Start, End: s.End, Label: s.Label()}
				byStart[s.Start] = agg
			}
			agg.Persons = append(agg.Persons, p)
		}
	}

	out := make([]AggregatedSlot, 0, len(byStart))
	for _, agg := range byStart {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}
