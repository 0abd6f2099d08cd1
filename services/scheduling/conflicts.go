package scheduling

import (
	"fmt"
	"strings"
	"time"
)

type ConflictOptions struct {
	// PersonID whose calendar is checked. For tutors it defaults to the
	// proposed booking's tutor; for students an empty PersonID means "any
	// student of the proposed booking".
	PersonID         string
	Role             PersonRole
	ExcludeBookingID string
	GapMinutes       int
	// BufferOnce widens only the existing booking by the gap, guaranteeing
	// gap minutes between sessions. By default both sides are widened.
	BufferOnce bool
	// StrictRecurringBounds also requires dates to fall inside a recurring
	// series' [StartDate, EndDate]. Off by default.
	StrictRecurringBounds bool
}

type ConflictReason string

const (
	ReasonTutor   ConflictReason = "tutor"
	ReasonStudent ConflictReason = "student"
)

// Conflict describes one existing booking that collides with a proposal.
type Conflict struct {
	Other       Booking          `json:"other"`
	Reasons     []ConflictReason `json:"reasons"`
	Date        string           `json:"date,omitempty"` // set when the collision is on a single date
	Days        WeekdaySet       `json:"days,omitempty"` // set when two series collide on weekdays
	Description string           `json:"description"`
}

type ConflictResult struct {
	Conflict   bool       `json:"conflict"`
	Collisions []Conflict `json:"collisions"`
}

// Summary joins the collision descriptions, one per line.
func (r ConflictResult) Summary() string {
	lines := make([]string, 0, len(r.Collisions))
	for _, c := range r.Collisions {
		lines = append(lines, c.Description)
	}
	return strings.Join(lines, "\n")
}

// DetectConflicts reports every booking in existing that belongs to the
// checked person and collides with proposed once both are widened by the gap.
func DetectConflicts(proposed Booking, existing []Booking, opts ConflictOptions) (ConflictResult, error) {
	if opts.GapMinutes < 0 {
		return ConflictResult{}, &InputError{Field: "gapMinutes", Message: "must not be negative"}
	}
	if opts.Role == "" {
		opts.Role = RoleTutor
	}

	var owns func(Booking) bool
	reason := ReasonTutor
	switch opts.Role {
	case RoleTutor:
		personID := opts.PersonID
		if personID == "" {
			personID = proposed.TutorID
		}
		if personID == "" {
			return ConflictResult{}, &InputError{Field: "personId", Message: "tutor id is required"}
		}
		owns = func(b Booking) bool { return b.TutorID == personID }
	case RoleStudent:
		reason = ReasonStudent
		if opts.PersonID != "" {
			owns = func(b Booking) bool { return b.hasStudent(opts.PersonID) }
		} else {
			if len(proposed.StudentIDs) == 0 {
				return ConflictResult{}, &InputError{Field: "studentIds", Message: "at least one student id is required"}
			}
			owns = proposed.sharesStudentWith
		}
	default:
		return ConflictResult{}, &InputError{Field: "role", Message: fmt.Sprintf("unknown role %q", opts.Role)}
	}

	result := ConflictResult{Collisions: []Conflict{}}
	for _, other := range existing {
		if opts.ExcludeBookingID != "" && other.ID == opts.ExcludeBookingID {
			continue
		}
		if !owns(other) {
			continue
		}
		date, days, ok := commonOccurrence(proposed, other, opts.StrictRecurringBounds)
		if !ok {
			continue
		}
		if !timesOverlap(proposed, other, opts.GapMinutes, opts.BufferOnce) {
			continue
		}
		result.Collisions = append(result.Collisions, Conflict{
			Other:       other,
			Reasons:     []ConflictReason{reason},
			Date:        date,
			Days:        days,
			Description: describeConflict(other, date, days),
		})
	}
	result.Conflict = len(result.Collisions) > 0
	return result, nil
}

// CheckBooking validates a proposal against both its tutor's and its students'
// calendars. A booking colliding on both counts is reported once.
func CheckBooking(proposed Booking, existing []Booking, opts ConflictOptions) (ConflictResult, error) {
	if proposed.TutorID == "" && len(proposed.StudentIDs) == 0 {
		return ConflictResult{}, &InputError{Field: "tutorId", Message: "tutor or student ids are required"}
	}

	var runs []ConflictResult
	if proposed.TutorID != "" {
		o := opts
		o.Role, o.PersonID = RoleTutor, proposed.TutorID
		r, err := DetectConflicts(proposed, existing, o)
		if err != nil {
			return ConflictResult{}, err
		}
		runs = append(runs, r)
	}
	if len(proposed.StudentIDs) > 0 {
		o := opts
		o.Role, o.PersonID = RoleStudent, ""
		r, err := DetectConflicts(proposed, existing, o)
		if err != nil {
			return ConflictResult{}, err
		}
		runs = append(runs, r)
	}

	merged := ConflictResult{Collisions: []Conflict{}}
	index := make(map[string]int)
	for _, r := range runs {
		for _, c := range r.Collisions {
			if i, ok := index[c.Other.ID]; ok && c.Other.ID != "" {
				merged.Collisions[i].Reasons = append(merged.Collisions[i].Reasons, c.Reasons...)
				continue
			}
			index[c.Other.ID] = len(merged.Collisions)
			merged.Collisions = append(merged.Collisions, c)
		}
	}
	merged.Conflict = len(merged.Collisions) > 0
	return merged, nil
}

// commonOccurrence decides whether two bookings can fall on the same calendar
// date. It returns the shared date for single-date collisions or the shared
// weekdays for two series.
func commonOccurrence(a, b Booking, strict bool) (string, WeekdaySet, bool) {
	switch {
	case a.ScheduleType == OneTime && b.ScheduleType == OneTime:
		da, errA := ParseDate(a.Date)
		db, errB := ParseDate(b.Date)
		if errA != nil || errB != nil || da != db {
			return "", 0, false
		}
		return da, 0, true
	case a.ScheduleType == OneTime && b.ScheduleType == WeeklyRecurring:
		return oneTimeAgainstSeries(a, b, strict)
	case a.ScheduleType == WeeklyRecurring && b.ScheduleType == OneTime:
		return oneTimeAgainstSeries(b, a, strict)
	case a.ScheduleType == WeeklyRecurring && b.ScheduleType == WeeklyRecurring:
		shared := a.RecurringDays.Intersect(b.RecurringDays)
		if shared.Empty() {
			return "", 0, false
		}
		if strict && !seriesOverlap(a, b, shared) {
			return "", 0, false
		}
		return "", shared, true
	}
	return "", 0, false
}

func oneTimeAgainstSeries(single, series Booking, strict bool) (string, WeekdaySet, bool) {
	date, err := ParseDate(single.Date)
	if err != nil {
		return "", 0, false
	}
	wd, _ := Weekday(date)
	if !series.RecurringDays.Has(wd) {
		return "", 0, false
	}
	if strict && !withinSeries(series, date) {
		return "", 0, false
	}
	return date, 0, true
}

func withinSeries(series Booking, date string) bool {
	if series.StartDate != "" && date < series.StartDate {
		return false
	}
	if series.EndDate != "" && date > series.EndDate {
		return false
	}
	return true
}

// seriesOverlap reports whether the two series' date ranges share at least one
// date whose weekday is in shared. Missing bounds are open-ended.
func seriesOverlap(a, b Booking, shared WeekdaySet) bool {
	lo := maxDate(a.StartDate, b.StartDate)
	hi := minDate(a.EndDate, b.EndDate)
	if lo == "" || hi == "" {
		return true
	}
	if hi < lo {
		return false
	}
	from, err := time.Parse("2006-01-02", lo)
	if err != nil {
		return true
	}
	to, err := time.Parse("2006-01-02", hi)
	if err != nil {
		return true
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if shared.Has(d.Weekday()) {
			return true
		}
		if d.Sub(from) >= 6*24*time.Hour {
			break
		}
	}
	return false
}

func maxDate(a, b string) string {
	if a > b {
		return a
	}
	return b
}

// minDate treats "" as unbounded.
func minDate(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	case a < b:
		return a
	}
	return b
}

func timesOverlap(a, b Booking, gap int, once bool) bool {
	aStart, aEnd := a.bufferedRange(gap)
	if once {
		aStart, aEnd = a.StartTime, a.End()
	}
	bStart, bEnd := b.bufferedRange(gap)
	// Half-open: [aStart,aEnd) overlaps [bStart,bEnd) iff aStart < bEnd && bStart < aEnd.
	return aStart < bEnd && bStart < aEnd
}

func describeConflict(other Booking, date string, days WeekdaySet) string {
	name := other.Title
	if name == "" {
		name = "class " + other.ID
	}
	span := fmt.Sprintf("%s-%s", other.StartTime, other.End())

	if date != "" {
		wd, _ := Weekday(date)
		return fmt.Sprintf("Conflicts with %s on %s %s (%s)", name, wd, date, span)
	}
	plural := make([]string, 0, 7)
	for _, d := range days.Days() {
		plural = append(plural, d.String()+"s")
	}
	return fmt.Sprintf("Conflicts with %s on %s (%s)", name, strings.Join(plural, ", "), span)
}
