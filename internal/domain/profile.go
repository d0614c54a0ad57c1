package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the primary training goal of a profile.
type Goal string

const (
	GoalFatLoss    Goal = "fat_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalEndurance  Goal = "endurance"
	GoalGeneral    Goal = "general"
)

// ExperienceLevel selects the split table row.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the non-training daily activity used for the energy multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Profile is the immutable input of a generation request.
// Zero-valued anthropometrics mean "unknown" and are replaced by population means downstream.
type Profile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty" yaml:"-"`
	UserID string             `bson:"userId" json:"userId,omitempty" yaml:"userId,omitempty"`

	Goal       Goal            `bson:"goal" json:"goal" yaml:"goal"`
	Experience ExperienceLevel `bson:"experience" json:"experience" yaml:"experience"`
	WeightKg   float64         `bson:"weightKg,omitempty" json:"weightKg,omitempty" yaml:"weightKg,omitempty"`
	HeightCm   float64         `bson:"heightCm,omitempty" json:"heightCm,omitempty" yaml:"heightCm,omitempty"`
	Age        int             `bson:"age,omitempty" json:"age,omitempty" yaml:"age,omitempty"`
	Sex        Sex             `bson:"sex,omitempty" json:"sex,omitempty" yaml:"sex,omitempty"`
	Activity   ActivityLevel   `bson:"activity,omitempty" json:"activity,omitempty" yaml:"activity,omitempty"`

	Equipment          []string `bson:"equipment,omitempty" json:"equipment,omitempty" yaml:"equipment,omitempty"`                            // e.g. "dumbbells", "barbell", "gym"
	DietaryPreferences []string `bson:"dietaryPreferences,omitempty" json:"dietaryPreferences,omitempty" yaml:"dietaryPreferences,omitempty"` // e.g. "vegetarian", "eggitarian"
	AvoidExercises     []string `bson:"avoidExercises,omitempty" json:"avoidExercises,omitempty" yaml:"avoidExercises,omitempty"`
	PreferredExercises []string `bson:"preferredExercises,omitempty" json:"preferredExercises,omitempty" yaml:"preferredExercises,omitempty"`
	Supplements        []string `bson:"supplements,omitempty" json:"supplements,omitempty" yaml:"supplements,omitempty"`

	TrainingDays   int     `bson:"trainingDays" json:"trainingDays" yaml:"trainingDays"`
	SessionMinutes int     `bson:"sessionMinutes,omitempty" json:"sessionMinutes,omitempty" yaml:"sessionMinutes,omitempty"`
	MealCount      int     `bson:"mealCount,omitempty" json:"mealCount,omitempty" yaml:"mealCount,omitempty"`
	TargetWeightKg float64 `bson:"targetWeightKg,omitempty" json:"targetWeightKg,omitempty" yaml:"targetWeightKg,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitempty" yaml:"-"`
}

// DerivedTargets are computed once per profile and shared by every day of the plan.
type DerivedTargets struct {
	EnergyKcal           int     `json:"energyKcal"`
	ProteinG             int     `json:"proteinG"`
	HydrationL           float64 `json:"hydrationL"`
	EstimatedWeeksToGoal int     `json:"estimatedWeeksToGoal"`
}

// DaySlot is one ordinal position of the microcycle.
type DaySlot struct {
	Key           string `json:"key"`
	IsTrainingDay bool   `json:"isTrainingDay"`
	Focus         string `json:"focus"`
}
