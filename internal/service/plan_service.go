package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanAccessDenied   = errors.New("access denied to this plan")
	ErrPlanLocked         = errors.New("latest plan is locked")
	ErrExportNotAvailable = errors.New("plan export is not configured")
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// PlanRunner produces a weekly plan for a profile. *planner.Pipeline implements it.
type PlanRunner interface {
	Run(ctx context.Context, profile domain.Profile) (*planner.Result, error)
}

type PlanService interface {
	// GeneratePlan runs the pipeline on the stored profile and persists the result.
	// It refuses with ErrPlanLocked when the newest plan is locked, unless force is set.
	GeneratePlan(ctx context.Context, userID string, force bool) (*domain.GeneratedPlan, error)
	// PreviewPlan runs the pipeline on an ad-hoc profile without storing anything.
	PreviewPlan(ctx context.Context, profile domain.Profile) (*planner.Result, error)
	GetPlan(ctx context.Context, userID string, planID primitive.ObjectID) (*domain.GeneratedPlan, error)
	ListPlans(ctx context.Context, userID string, limit int64) ([]domain.GeneratedPlan, error)
	SetLocked(ctx context.Context, userID string, planID primitive.ObjectID, locked bool) (*domain.GeneratedPlan, error)
	// ExportPlan uploads the plan JSON on first use and returns a temporary download URL.
	ExportPlan(ctx context.Context, userID string, planID primitive.ObjectID) (string, error)
}

type planService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	runner      PlanRunner
	fileStorage storage.FileStorage // nil when exports are disabled
	presignTTL  time.Duration
	log         *logger.Logger
}

// NewPlanService creates a new instance of planService. fileStorage may be nil.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	runner PlanRunner,
	fileStorage storage.FileStorage,
	presignTTL time.Duration,
	log *logger.Logger,
) PlanService {
	if log == nil {
		log = logger.Nop()
	}
	return &planService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		runner:      runner,
		fileStorage: fileStorage,
		presignTTL:  presignTTL,
		log:         log.With("component", "PlanService"),
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID string, force bool) (*domain.GeneratedPlan, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if !force {
		latest, err := s.planRepo.ListByUserID(ctx, userID, 1)
		if err != nil {
			return nil, err
		}
		if len(latest) > 0 && latest[0].Plan.Locked {
			return nil, ErrPlanLocked
		}
	}

	result, err := s.runner.Run(ctx, *profile)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	generated := &domain.GeneratedPlan{
		UserID:     userID,
		Plan:       result.Plan,
		Targets:    result.Targets,
		Provenance: result.Provenance,
	}
	if _, err := s.planRepo.Create(ctx, generated); err != nil {
		return nil, err
	}
	s.log.Info("plan stored", "user_id", userID, "plan_id", generated.ID.Hex(), "source", generated.Provenance.Source)
	return generated, nil
}

func (s *planService) PreviewPlan(ctx context.Context, profile domain.Profile) (*planner.Result, error) {
	clean, err := SanitizeProfile(profile)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, clean)
}

func (s *planService) GetPlan(ctx context.Context, userID string, planID primitive.ObjectID) (*domain.GeneratedPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, userID string, limit int64) ([]domain.GeneratedPlan, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.planRepo.ListByUserID(ctx, userID, limit)
}

func (s *planService) SetLocked(ctx context.Context, userID string, planID primitive.ObjectID, locked bool) (*domain.GeneratedPlan, error) {
	// Ownership first, so a foreign plan reports access denied rather than not found.
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	if err := s.planRepo.SetLocked(ctx, planID, userID, locked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.GetPlan(ctx, userID, planID)
}

func (s *planService) ExportPlan(ctx context.Context, userID string, planID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrExportNotAvailable
	}
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return "", err
	}

	key := plan.ExportKey
	if key == "" {
		key = storage.ExportKey(userID, planID.Hex())
		body, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return "", err
		}
		if err := s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
			return "", fmt.Errorf("upload export: %w", err)
		}
		if err := s.planRepo.SetExportKey(ctx, planID, key); err != nil {
			// The object is unreachable without its key; drop it.
			if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
				s.log.Warn("failed to remove orphaned export", "key", key, "error", delErr)
			}
			return "", err
		}
		s.log.Info("plan exported", "user_id", userID, "plan_id", planID.Hex(), "key", key)
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.presignTTL)
}
