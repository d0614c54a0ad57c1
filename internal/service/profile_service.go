package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

const (
	maxTrainingDays = 7
	maxMealCount    = 6
)

// ProfileService manages the planning profile of a user.
type ProfileService interface {
	SaveProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// SaveProfile validates the profile, clamps its counts and stores it for userID.
func (s *profileService) SaveProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.Profile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	clean, err := SanitizeProfile(profile)
	if err != nil {
		return nil, err
	}
	clean.UserID = userID

	if err := s.profileRepo.Upsert(ctx, &clean); err != nil {
		return nil, err
	}
	return &clean, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// SanitizeProfile checks enumerations and numeric ranges of a user-supplied profile.
// Training days are clamped to 1..7 and meals to 1..6; zero means "use the default".
// Unset anthropometrics stay zero so the planner substitutes population means.
func SanitizeProfile(p domain.Profile) (domain.Profile, error) {
	out := p
	out.Goal = domain.Goal(normalizeEnum(string(p.Goal)))
	switch out.Goal {
	case domain.GoalFatLoss, domain.GoalMuscleGain, domain.GoalEndurance, domain.GoalGeneral:
	default:
		return p, fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	}

	out.Experience = domain.ExperienceLevel(normalizeEnum(string(p.Experience)))
	switch out.Experience {
	case domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced:
	default:
		return p, fmt.Errorf("%w: unknown experience level %q", ErrInvalidProfile, p.Experience)
	}

	out.Sex = domain.Sex(normalizeEnum(string(p.Sex)))
	switch out.Sex {
	case "", domain.SexMale, domain.SexFemale:
	default:
		return p, fmt.Errorf("%w: unknown sex %q", ErrInvalidProfile, p.Sex)
	}

	out.Activity = domain.ActivityLevel(normalizeEnum(string(p.Activity)))
	switch out.Activity {
	case "", domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate, domain.ActivityActive, domain.ActivityVeryActive:
	default:
		return p, fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, p.Activity)
	}

	if p.WeightKg < 0 || p.HeightCm < 0 || p.Age < 0 || p.TargetWeightKg < 0 || p.SessionMinutes < 0 {
		return p, fmt.Errorf("%w: negative measurements are not allowed", ErrInvalidProfile)
	}

	out.TrainingDays = clampCount(p.TrainingDays, planner.DefaultTrainingDays, maxTrainingDays)
	out.MealCount = clampCount(p.MealCount, planner.DefaultMealCount, maxMealCount)

	out.Equipment = cleanList(p.Equipment)
	out.DietaryPreferences = cleanList(p.DietaryPreferences)
	out.AvoidExercises = cleanList(p.AvoidExercises)
	out.PreferredExercises = cleanList(p.PreferredExercises)
	out.Supplements = cleanList(p.Supplements)
	return out, nil
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func clampCount(n, def, max int) int {
	switch {
	case n <= 0:
		return def
	case n > max:
		return max
	}
	return n
}

// cleanList trims entries and drops blanks and case-insensitive duplicates.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
