package profileRepo

import (
	"context"
	"errors"

	"tutorhub/database"
	"tutorhub/models"
	"tutorhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads tutor and student profiles. Profiles are owned by
// profile management; this service never writes them.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.ProfileDocument, error)
	// GetByIDs returns the profiles found, in the order of ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.ProfileDocument, error)
	// ListTutors returns every active tutor ordered by name.
	ListTutors(ctx context.Context) ([]models.ProfileDocument, error)
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs a MongoDB ProfileRepository.
func NewMongoProfileRepo() ProfileRepository {
	repo := &mongoProfileRepo{coll: database.Database().Collection("profiles")}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create profile indexes", zap.Error(err))
	}
	return repo
}
