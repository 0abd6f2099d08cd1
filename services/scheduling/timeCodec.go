package scheduling

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight, e.g. 870 for 14:30.
type TimeOfDay int

const MinutesPerDay = 24 * 60

var (
	clock24Re    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	meridiemRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])$`)
	embeddedRe   = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2})(?:\.\d+)?)?(?:\s*([AaPp][Mm])\b)?`)
	dateOnlyRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datePrefixRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:[T ].*)?$`)
	isoLayouts   = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"}
)

// ParseTime converts a free-form time string into minutes since midnight.
// Accepted forms are "HH:MM" (24h), "H:MM AM/PM" and strings carrying a full
// date/time, in which case only the wall-clock component is kept.
func ParseTime(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, newParseError(raw, "empty input")
	}

	if m := clock24Re.FindStringSubmatch(s); m != nil {
		return fromClock(raw, m[1], m[2], m[3], "")
	}
	if m := meridiemRe.FindStringSubmatch(s); m != nil {
		return fromClock(raw, m[1], m[2], m[3], m[4])
	}
	if dateOnlyRe.MatchString(s) {
		return 0, newParseError(raw, "date has no time component")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Wall clock as written; no zone conversion.
			return TimeOfDay(t.Hour()*60 + t.Minute()), nil
		}
	}
	if m := embeddedRe.FindStringSubmatch(s); m != nil && looksLikeDateTime(s) {
		return fromClock(raw, m[1], m[2], m[3], m[4])
	}
	return 0, newParseError(raw, "unrecognised time format")
}

// looksLikeDateTime guards the embedded-time fallback so that strings such as
// "abc 9:00 xyz" are not silently accepted.
func looksLikeDateTime(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	// A date plus a time carries at least a day, a year and HH:MM.
	return digits >= 8
}

func fromClock(raw, hh, mm, ss, meridiem string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, newParseError(raw, "invalid hour")
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute > 59 {
		return 0, newParseError(raw, "minute out of range")
	}
	if ss != "" {
		if sec, err := strconv.Atoi(ss); err != nil || sec > 59 {
			return 0, newParseError(raw, "second out of range")
		}
	}

	switch strings.ToUpper(meridiem) {
	case "":
		if hour > 23 {
			return 0, newParseError(raw, "hour out of range")
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, newParseError(raw, "hour out of range for 12h clock")
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, newParseError(raw, "hour out of range for 12h clock")
		}
		if hour != 12 {
			hour += 12
		}
	}
	return TimeOfDay(hour*60 + minute), nil
}

// FormatTime renders t as "HH:MM". Values outside a single day wrap around midnight.
func FormatTime(t TimeOfDay) string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t TimeOfDay) String() string { return FormatTime(t) }

// Label renders t on a 12h clock, e.g. "2:30 PM".
func (t TimeOfDay) Label() string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	hour, minute := m/60, m%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// MarshalJSON encodes t as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTime(t))
}

// UnmarshalJSON accepts any string ParseTime understands, or a bare minute count.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("time of day must be a string or minute count: %w", err)
		}
		*t = TimeOfDay(n)
		return nil
	}
	v, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// ParseDate normalises a calendar date to its "2006-01-02" literal. ISO
// date-times are accepted and truncated to their date part.
func ParseDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	m := datePrefixRe.FindStringSubmatch(s)
	if m == nil {
		return "", &InputError{Field: "date", Message: fmt.Sprintf("invalid date %q", raw)}
	}
	if _, err := time.Parse("2006-01-02", m[1]); err != nil {
		return "", &InputError{Field: "date", Message: fmt.Sprintf("invalid date %q", raw)}
	}
	return m[1], nil
}

// Weekday returns the day of week of a "2006-01-02" date (Sunday = 0).
func Weekday(date string) (time.Weekday, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	t, _ := time.Parse("2006-01-02", d)
	return t.Weekday(), nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts full names, common abbreviations and "0".."6".
func ParseWeekday(raw string) (time.Weekday, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if d, ok := weekdayNames[s]; ok {
		return d, true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), true
	}
	return 0, false
}
