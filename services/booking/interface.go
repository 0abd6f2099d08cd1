package booking

import (
	"context"

	"tutorhub/config"
	"tutorhub/services/scheduling"
)

// SchedulingService fetches profiles and classes, builds a booking snapshot and
// runs the scheduling engine over it.
type SchedulingService interface {
	Presets() config.Scheduling
	SlotsForPerson(ctx context.Context, personID, date string, duration int) (*PersonSlots, error)
	AggregateTutorSlots(ctx context.Context, date string, duration int, tutorIDs []string) (*AggregateResult, error)
	CheckConflicts(ctx context.Context, proposed scheduling.Booking, excludeBookingID string) (*scheduling.ConflictResult, error)
	InvalidatePerson(ctx context.Context, personID string) (int, error)
}

// SnapshotCache keeps the bookings loaded for a person on a date for a short
// while. A miss is reported as ok=false, never as an error.
type SnapshotCache interface {
	Get(ctx context.Context, personID, date string) ([]scheduling.Booking, bool, error)
	Set(ctx context.Context, personID, date string, bookings []scheduling.Booking) error
	InvalidatePerson(ctx context.Context, personID string) (int, error)
}

type PersonSlots struct {
	Person   scheduling.Person `json:"person"`
	Date     string            `json:"date"`
	Duration int               `json:"duration"`
	Slots    []SlotView        `json:"slots"`
}

// SlotView is a slot with its display label.
type SlotView struct {
	scheduling.Slot
	Label string `json:"label"`
}

type AggregateResult struct {
	Date     string                      `json:"date"`
	Duration int                         `json:"duration"`
	Slots    []scheduling.AggregatedSlot `json:"slots"`
	// Unavailable lists tutors whose bookings could not be loaded; they are
	// left out of Slots rather than shown as free.
	Unavailable []string `json:"unavailable,omitempty"`
}
