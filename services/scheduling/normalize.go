package scheduling

import (
	"fmt"
	"strings"
	"time"

	"tutorhub/models"
)

// NormalizeDay folds the three stored availability encodings into one
// DayAvailability. Entries that cannot be parsed are skipped and returned as
// errors; normalisation itself never fails.
func NormalizeDay(raw models.DayAvailabilityDoc) (DayAvailability, []error) {
	var (
		windows []Window
		skipped []error
	)

	addRange := func(startRaw, endRaw string) {
		start, err := ParseTime(startRaw)
		if err != nil {
			skipped = append(skipped, err)
			return
		}
		end, err := ParseTime(endRaw)
		if err != nil {
			skipped = append(skipped, err)
			return
		}
		if start >= end {
			skipped = append(skipped, fmt.Errorf("window %s-%s: start must be before end", start, end))
			return
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	addPoint := func(raw string) {
		start, err := ParseTime(raw)
		if err != nil {
			skipped = append(skipped, err)
			return
		}
		windows = append(windows, Window{Start: start, Point: true})
	}

	switch {
	case raw.Times != nil:
		for _, t := range raw.Times {
			addPoint(t)
		}
	case len(raw.TimeSlots) > 0:
		for _, ts := range raw.TimeSlots {
			switch {
			case ts.Time != "":
				addPoint(ts.Time)
			case ts.StartTime != "" && ts.EndTime != "":
				addRange(ts.StartTime, ts.EndTime)
			case ts.StartTime != "":
				addPoint(ts.StartTime)
			default:
				skipped = append(skipped, fmt.Errorf("time slot without a start time"))
			}
		}
	case raw.Start != "" && raw.End != "":
		addRange(raw.Start, raw.End)
	case raw.Start != "":
		addPoint(raw.Start)
	}

	available := len(windows) > 0
	if raw.Available != nil && !*raw.Available {
		available = false
	}
	if !available {
		return DayAvailability{}, skipped
	}
	return DayAvailability{Available: true, Windows: windows}, skipped
}

// NormalizePerson converts a stored profile into a Person.
func NormalizePerson(doc models.ProfileDocument) (Person, []error) {
	p := Person{
		ID:           doc.ID,
		Name:         doc.Name,
		Role:         RoleTutor,
		Availability: make(map[time.Weekday]DayAvailability, len(doc.Availability)),
	}
	if strings.EqualFold(doc.Role, string(RoleStudent)) {
		p.Role = RoleStudent
	}

	var skipped []error
	for key, raw := range doc.Availability {
		wd, ok := ParseWeekday(key)
		if !ok {
			skipped = append(skipped, fmt.Errorf("profile %s: unknown weekday %q", doc.ID, key))
			continue
		}
		day, errs := NormalizeDay(raw)
		for _, err := range errs {
			skipped = append(skipped, fmt.Errorf("profile %s, %s: %w", doc.ID, strings.ToLower(wd.String()), err))
		}
		if !day.Available {
			continue
		}
		// "mon" and "monday" may both be present on old profiles.
		if prev, ok := p.Availability[wd]; ok {
			day.Windows = append(prev.Windows, day.Windows...)
		}
		p.Availability[wd] = day
	}
	return p, skipped
}
