package models

// SlotsRequest asks for the free slots of one tutor or student.
type SlotsRequest struct {
	PersonID string `json:"personId" binding:"required"`
	Date     string `json:"date" binding:"required,civildate"`
	Duration int    `json:"duration" binding:"omitempty,min=1,max=1440"` // minutes, default from config
}

// AggregateSlotsRequest asks for the merged slots of several tutors. An empty
// TutorIDs means every active tutor.
type AggregateSlotsRequest struct {
	Date     string   `json:"date" binding:"required,civildate"`
	Duration int      `json:"duration" binding:"omitempty,min=1,max=1440"`
	TutorIDs []string `json:"tutorIds" binding:"omitempty,dive,required"`
}

// ConflictCheckRequest is a proposed class. When editing an existing class,
// ExcludeBookingID carries its id so it is not compared with itself.
type ConflictCheckRequest struct {
	Title            string   `json:"title"`
	ScheduleType     string   `json:"scheduleType" binding:"required,scheduletype"`
	Date             string   `json:"date" binding:"omitempty,civildate"`
	RecurringDays    []string `json:"recurringDays" binding:"omitempty,dive,weekday"`
	StartDate        string   `json:"startDate" binding:"omitempty,civildate"`
	EndDate          string   `json:"endDate" binding:"omitempty,civildate"`
	StartTime        string   `json:"startTime" binding:"required,timeofday"`
	Duration         int      `json:"duration" binding:"required,min=1,max=1440"`
	TutorID          string   `json:"tutorId"`
	StudentIDs       []string `json:"studentIds" binding:"omitempty,dive,required"`
	ExcludeBookingID string   `json:"excludeBookingId"`
}
