package classesRepo

import (
	"context"

	"tutorhub/database"
	"tutorhub/models"
	"tutorhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Person roles understood by the person filters.
const (
	RoleTutor   = "tutor"
	RoleStudent = "student"
)

// ClassRepository reads scheduled classes. Cancelled classes are never returned
// by the list queries.
type ClassRepository interface {
	// ListForPersonOnDate returns the classes of a tutor or student that may
	// occur on date: one-time classes on that date and weekly series that
	// include its weekday.
	ListForPersonOnDate(ctx context.Context, personID, role, date string) ([]models.ClassRecord, error)
	// ListForPerson returns every active class of a tutor or student.
	ListForPerson(ctx context.Context, personID, role string) ([]models.ClassRecord, error)
}

type mongoClassRepo struct {
	coll *mongo.Collection
}

// NewMongoClassRepo constructs a MongoDB ClassRepository.
func NewMongoClassRepo() ClassRepository {
	repo := &mongoClassRepo{coll: database.Database().Collection("classes")}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create class indexes", zap.Error(err))
	}
	return repo
}
