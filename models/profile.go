package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ProfileDocument is a tutor or student profile as stored by profile management.
// Availability is keyed by weekday name ("monday", "tue", "3", ...).
type ProfileDocument struct {
	ID           string                        `bson:"id" json:"id"`
	Name         string                        `bson:"name" json:"name"`
	Role         string                        `bson:"role" json:"role"`     // "tutor" or "student"
	Status       string                        `bson:"status" json:"status"` // e.g. "active", "inactive"
	Availability map[string]DayAvailabilityDoc `bson:"availability,omitempty" json:"availability,omitempty"`
}

// DayAvailabilityDoc holds one weekday of availability in any of the three
// historical encodings:
//
//	{"available": true, "start": "09:00", "end": "12:00"}
//	{"available": true, "timeSlots": ["09:00", {"startTime": "13:00", "endTime": "15:00"}]}
//	["09:00", "10:30"]
type DayAvailabilityDoc struct {
	Available *bool           `bson:"available,omitempty" json:"available,omitempty"`
	Start     string          `bson:"start,omitempty" json:"start,omitempty"`
	End       string          `bson:"end,omitempty" json:"end,omitempty"`
	TimeSlots []TimeSlotEntry `bson:"timeSlots,omitempty" json:"timeSlots,omitempty"`
	Times     []string        `bson:"-" json:"-"` // bare array form
}

// TimeSlotEntry is either a bare time string (Time) or a start/end pair.
type TimeSlotEntry struct {
	Time      string `bson:"-" json:"-"`
	StartTime string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

type dayAvailabilityFields struct {
	Available *bool           `bson:"available,omitempty" json:"available,omitempty"`
	Start     string          `bson:"start,omitempty" json:"start,omitempty"`
	End       string          `bson:"end,omitempty" json:"end,omitempty"`
	TimeSlots []TimeSlotEntry `bson:"timeSlots,omitempty" json:"timeSlots,omitempty"`
}

func (d *DayAvailabilityDoc) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = DayAvailabilityDoc{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var times []string
		if err := json.Unmarshal(data, &times); err != nil {
			return fmt.Errorf("availability array: %w", err)
		}
		*d = DayAvailabilityDoc{Times: times}
		return nil
	}
	var f dayAvailabilityFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("availability object: %w", err)
	}
	*d = dayAvailabilityDocFrom(f)
	return nil
}

func (d DayAvailabilityDoc) MarshalJSON() ([]byte, error) {
	if d.Times != nil {
		return json.Marshal(d.Times)
	}
	return json.Marshal(dayAvailabilityFields{
		Available: d.Available,
		Start:     d.Start,
		End:       d.End,
		TimeSlots: d.TimeSlots,
	})
}

// UnmarshalBSONValue lets the mongo driver decode all three encodings.
func (d *DayAvailabilityDoc) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*d = DayAvailabilityDoc{}
		return nil
	case bsontype.Array:
		var times []string
		if err := raw.Unmarshal(&times); err != nil {
			return fmt.Errorf("availability array: %w", err)
		}
		*d = DayAvailabilityDoc{Times: times}
		return nil
	case bsontype.EmbeddedDocument:
		var f dayAvailabilityFields
		if err := raw.Unmarshal(&f); err != nil {
			return fmt.Errorf("availability document: %w", err)
		}
		*d = dayAvailabilityDocFrom(f)
		return nil
	}
	return fmt.Errorf("availability: unsupported bson type %s", t)
}

func dayAvailabilityDocFrom(f dayAvailabilityFields) DayAvailabilityDoc {
	return DayAvailabilityDoc{
		Available: f.Available,
		Start:     f.Start,
		End:       f.End,
		TimeSlots: f.TimeSlots,
	}
}

type timeSlotFields struct {
	StartTime string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

func (e *TimeSlotEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = TimeSlotEntry{Time: s}
		return nil
	}
	var f timeSlotFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("time slot: %w", err)
	}
	*e = TimeSlotEntry{StartTime: f.StartTime, EndTime: f.EndTime}
	return nil
}

func (e TimeSlotEntry) MarshalJSON() ([]byte, error) {
	if e.Time != "" {
		return json.Marshal(e.Time)
	}
	return json.Marshal(timeSlotFields{StartTime: e.StartTime, EndTime: e.EndTime})
}

func (e *TimeSlotEntry) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*e = TimeSlotEntry{Time: raw.StringValue()}
		return nil
	case bsontype.EmbeddedDocument:
		var f timeSlotFields
		if err := raw.Unmarshal(&f); err != nil {
			return fmt.Errorf("time slot: %w", err)
		}
		*e = TimeSlotEntry{StartTime: f.StartTime, EndTime: f.EndTime}
		return nil
	}
	return fmt.Errorf("time slot: unsupported bson type %s", t)
}
