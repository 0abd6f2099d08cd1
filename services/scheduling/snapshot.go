package scheduling

// Snapshot is the caller's view of existing bookings, keyed by person and date.
// The engine only reads it; a missing key means "not loaded yet", which is not
// the same as "loaded and empty".
type Snapshot struct {
	entries map[snapshotKey][]Booking
}

type snapshotKey struct {
	personID string
	date     string
}

func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[snapshotKey][]Booking)}
}

// Put records the bookings loaded for personID on date. An empty or nil slice
// marks the pair as loaded with no bookings.
func (s *Snapshot) Put(personID, date string, bookings []Booking) {
	if s.entries == nil {
		s.entries = make(map[snapshotKey][]Booking)
	}
	if d, err := ParseDate(date); err == nil {
		date = d
	}
	cp := make([]Booking, len(bookings))
	copy(cp, bookings)
	s.entries[snapshotKey{personID: personID, date: date}] = cp
}

// Lookup returns the bookings for personID on date and whether they were loaded.
func (s *Snapshot) Lookup(personID, date string) ([]Booking, bool) {
	if s == nil {
		return nil, false
	}
	if d, err := ParseDate(date); err == nil {
		date = d
	}
	b, ok := s.entries[snapshotKey{personID: personID, date: date}]
	return b, ok
}
