package models

// ClassRecord is a scheduled class as stored by class management.
type ClassRecord struct {
	ID             string      `bson:"id" json:"id"`
	Title          string      `bson:"title,omitempty" json:"title,omitempty"`
	ScheduleType   string      `bson:"scheduleType" json:"scheduleType"`                       // "one-time" or "weekly-recurring"
	ClassDate      string      `bson:"classDate,omitempty" json:"classDate,omitempty"`         // one-time only, "2006-01-02"
	StartDate      string      `bson:"startDate,omitempty" json:"startDate,omitempty"`         // recurring only
	EndDate        string      `bson:"endDate,omitempty" json:"endDate,omitempty"`             // recurring only
	RecurringDays  []string    `bson:"recurringDays,omitempty" json:"recurringDays,omitempty"` // e.g. ["monday", "wednesday"]
	StartTime      string      `bson:"startTime" json:"startTime"`                             // any format the time codec accepts
	Duration       int         `bson:"duration" json:"duration"`                               // minutes
	CustomDuration int         `bson:"customDuration,omitempty" json:"customDuration,omitempty"`
	Status         string      `bson:"status,omitempty" json:"status,omitempty"` // "scheduled", "cancelled", ...
	Tutor          PersonRef   `bson:"tutor" json:"tutor"`
	Students       []PersonRef `bson:"students,omitempty" json:"students,omitempty"`
}

// PersonRef is an embedded reference to a tutor or student.
type PersonRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

const ClassStatusCancelled = "cancelled"
