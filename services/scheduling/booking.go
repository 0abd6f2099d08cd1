package scheduling

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tutorhub/models"
)

type ScheduleType string

const (
	OneTime         ScheduleType = "one-time"
	WeeklyRecurring ScheduleType = "weekly-recurring"
)

// ParseScheduleType maps the spellings found in stored classes onto a ScheduleType.
func ParseScheduleType(raw string) (ScheduleType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "one-time", "onetime", "one_time", "single", "once":
		return OneTime, true
	case "weekly-recurring", "weekly_recurring", "recurring", "weekly":
		return WeeklyRecurring, true
	}
	return "", false
}

// WeekdaySet is a set of weekdays, bit i set for time.Weekday(i).
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Intersect(o WeekdaySet) WeekdaySet { return s & o }

func (s WeekdaySet) Empty() bool { return s == 0 }

// Days lists the members Sunday first.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, strings.ToLower(d.String()))
	}
	return json.Marshal(names)
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out WeekdaySet
	for _, n := range names {
		d, ok := ParseWeekday(n)
		if !ok {
			return fmt.Errorf("unknown weekday %q", n)
		}
		out = out.With(d)
	}
	*s = out
	return nil
}

// Booking is a scheduled class. Bookings are supplied by the caller and never
// mutated by the engine.
type Booking struct {
	ID            string       `json:"id"`
	Title         string       `json:"title,omitempty"`
	ScheduleType  ScheduleType `json:"scheduleType"`
	Date          string       `json:"date,omitempty"`
	RecurringDays WeekdaySet   `json:"recurringDays,omitempty"`
	StartDate     string       `json:"startDate,omitempty"`
	EndDate       string       `json:"endDate,omitempty"`
	StartTime     TimeOfDay    `json:"startTime"`
	Duration      int          `json:"duration"`
	TutorID       string       `json:"tutorId"`
	StudentIDs    []string     `json:"studentIds,omitempty"`
}

// End is the unbuffered end of the session.
func (b Booking) End() TimeOfDay {
	return b.StartTime + TimeOfDay(b.Duration)
}

// bufferedRange widens the session by gap minutes on both sides.
func (b Booking) bufferedRange(gap int) (TimeOfDay, TimeOfDay) {
	return b.StartTime - TimeOfDay(gap), b.End() + TimeOfDay(gap)
}

func (b Booking) hasStudent(id string) bool {
	for _, s := range b.StudentIDs {
		if s == id {
			return true
		}
	}
	return false
}

func (b Booking) sharesStudentWith(o Booking) bool {
	for _, s := range b.StudentIDs {
		if o.hasStudent(s) {
			return true
		}
	}
	return false
}

// Validate checks the shape invariants of a booking.
func (b Booking) Validate() error {
	if b.Duration <= 0 {
		return &InputError{Field: "duration", Message: "must be greater than zero"}
	}
	if !b.StartTime.Valid() {
		return &InputError{Field: "startTime", Message: fmt.Sprintf("%d is outside a day", b.StartTime)}
	}
	switch b.ScheduleType {
	case OneTime:
		if _, err := ParseDate(b.Date); err != nil {
			return &InputError{Field: "date", Message: "required for one-time bookings"}
		}
	case WeeklyRecurring:
		if b.RecurringDays.Empty() {
			return &InputError{Field: "recurringDays", Message: "required for weekly-recurring bookings"}
		}
		if _, err := ParseDate(b.StartDate); err != nil {
			return &InputError{Field: "startDate", Message: "required for weekly-recurring bookings"}
		}
		if _, err := ParseDate(b.EndDate); err != nil {
			return &InputError{Field: "endDate", Message: "required for weekly-recurring bookings"}
		}
		if b.EndDate < b.StartDate {
			return &InputError{Field: "endDate", Message: "must not precede startDate"}
		}
	default:
		return &InputError{Field: "scheduleType", Message: fmt.Sprintf("unknown schedule type %q", b.ScheduleType)}
	}
	return nil
}

// BookingFromRecord converts a stored class into a Booking. Records that cannot
// be interpreted are reported as errors so the caller can skip and log them.
func BookingFromRecord(rec models.ClassRecord) (Booking, error) {
	st, ok := ParseScheduleType(rec.ScheduleType)
	if !ok {
		return Booking{}, &InputError{Field: "scheduleType", Message: fmt.Sprintf("class %s: unknown schedule type %q", rec.ID, rec.ScheduleType)}
	}
	start, err := ParseTime(rec.StartTime)
	if err != nil {
		return Booking{}, fmt.Errorf("class %s: %w", rec.ID, err)
	}
	duration := rec.Duration
	if rec.CustomDuration > 0 {
		duration = rec.CustomDuration
	}

	b := Booking{
		ID:           rec.ID,
		Title:        rec.Title,
		ScheduleType: st,
		StartTime:    start,
		Duration:     duration,
		TutorID:      rec.Tutor.ID,
	}
	for _, s := range rec.Students {
		if s.ID != "" {
			b.StudentIDs = append(b.StudentIDs, s.ID)
		}
	}

	switch st {
	case OneTime:
		if b.Date, err = ParseDate(rec.ClassDate); err != nil {
			return Booking{}, fmt.Errorf("class %s: %w", rec.ID, err)
		}
	case WeeklyRecurring:
		for _, n := range rec.RecurringDays {
			if d, ok := ParseWeekday(n); ok {
				b.RecurringDays = b.RecurringDays.With(d)
			}
		}
		// Open-ended series are stored without bounds.
		if rec.StartDate != "" {
			if b.StartDate, err = ParseDate(rec.StartDate); err != nil {
				return Booking{}, fmt.Errorf("class %s: %w", rec.ID, err)
			}
		}
		if rec.EndDate != "" {
			if b.EndDate, err = ParseDate(rec.EndDate); err != nil {
				return Booking{}, fmt.Errorf("class %s: %w", rec.ID, err)
			}
		}
	}
	if b.Duration <= 0 {
		return Booking{}, &InputError{Field: "duration", Message: fmt.Sprintf("class %s: must be greater than zero", rec.ID)}
	}
	return b, nil
}
