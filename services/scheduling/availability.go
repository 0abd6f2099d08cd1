package scheduling

import (
	"time"
)

type PersonRole string

const (
	RoleTutor   PersonRole = "tutor"
	RoleStudent PersonRole = "student"
)

// Window is a bookable range [Start, End) on a weekday. A Point window is the
// legacy "exact slot" form: only a session starting exactly at Start fits, and
// its width is the requested duration.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end,omitempty"`
	Point bool      `json:"point,omitempty"`
}

type DayAvailability struct {
	Available bool     `json:"available"`
	Windows   []Window `json:"windows,omitempty"`
}

// Person is a tutor or a student together with their weekly availability.
type Person struct {
	ID           string                           `json:"id"`
	Name         string                           `json:"name,omitempty"`
	Role         PersonRole                       `json:"role"`
	Availability map[time.Weekday]DayAvailability `json:"-"`
}

// ResolveDayAvailability returns the availability that applies to date. An
// unknown weekday, a disabled day or an unparseable date yields no windows.
func ResolveDayAvailability(p Person, date string) DayAvailability {
	wd, err := Weekday(date)
	if err != nil {
		return DayAvailability{}
	}
	day, ok := p.Availability[wd]
	if !ok || !day.Available {
		return DayAvailability{}
	}
	return day
}
