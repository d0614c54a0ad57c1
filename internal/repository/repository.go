package repository

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores one planning profile per user.
type ProfileRepository interface {
	// Upsert replaces the user's profile, creating it on first save.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// PlanRepository stores generated weekly plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.GeneratedPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GeneratedPlan, error)
	// ListByUserID returns the user's plans newest first; limit <= 0 means no limit.
	ListByUserID(ctx context.Context, userID string, limit int64) ([]domain.GeneratedPlan, error)
	SetLocked(ctx context.Context, id primitive.ObjectID, userID string, locked bool) error
	SetExportKey(ctx context.Context, id primitive.ObjectID, key string) error
}
