package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository on a connected database.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert replaces the stored profile of profile.UserID. The whole document is replaced so
// cleared fields do not survive; ID and CreatedAt are carried over from the existing document.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return repository.ErrInvalidInput
	}
	now := time.Now().UTC()

	existing, err := r.GetByUserID(ctx, profile.UserID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		profile.ID = primitive.NewObjectID()
		profile.CreatedAt = now
	default:
		return err
	}
	profile.UpdatedAt = now

	filter := bson.M{"userId": profile.UserID}
	_, err = r.collection.ReplaceOne(ctx, filter, profile, options.Replace().SetUpsert(true))
	return err
}

// GetByUserID retrieves the profile of a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
// Call this once during application startup.
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true), // one profile per user
		},
	}
	_, err := db.Collection(profileCollectionName).Indexes().CreateMany(ctx, indexes)
	return err
}
