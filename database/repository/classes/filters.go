package classesRepo

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tutorhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// personFilter matches active classes taught by or attended by personID.
func personFilter(personID, role string) (bson.M, error) {
	filter := bson.M{"status": bson.M{"$ne": models.ClassStatusCancelled}}
	switch role {
	case RoleTutor:
		filter["tutor.id"] = personID
	case RoleStudent:
		filter["students.id"] = personID
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return filter, nil
}

// onDateFilter narrows personFilter to classes that can occur on date.
// classDate may be stored with a time component, so it is matched by prefix.
// Weekday names are matched case-insensitively in long, short and numeric form.
func onDateFilter(personID, role, date string) (bson.M, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	filter, err := personFilter(personID, role)
	if err != nil {
		return nil, err
	}

	wd := day.Weekday()
	long := strings.ToLower(wd.String())
	names := fmt.Sprintf("^(%s|%s|%d)$", long, long[:3], int(wd))

	filter["$or"] = bson.A{
		bson.M{"classDate": bson.M{"$regex": "^" + regexp.QuoteMeta(date)}},
		bson.M{"recurringDays": bson.M{"$regex": names, "$options": "i"}},
	}
	return filter, nil
}
