package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"math"
	"strings"
)

// Population means used when anthropometrics are missing.
const (
	DefaultWeightKg       = 70.0
	DefaultHeightCm       = 170.0
	DefaultAge            = 30
	DefaultTrainingDays   = 3
	DefaultSessionMinutes = 60
	DefaultMealCount      = 3

	proteinPerKg   = 1.8
	waterPerKg     = 0.033
	minHydrationL  = 1.8
	maxHydrationL  = 4.0
	minSessionMins = 15
	maxSessionMins = 180
)

// activityMultipliers maps activity levels to their TDEE multiplier. Unknown levels use moderate.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

var goalMultipliers = map[domain.Goal]float64{
	domain.GoalFatLoss:    0.80,
	domain.GoalMuscleGain: 1.10,
}

// NormalizeProfile returns a copy of p with defaults applied and counts clamped.
// It never fails: every missing field has a safe default.
func NormalizeProfile(p domain.Profile) domain.Profile {
	out := p
	if out.WeightKg <= 0 {
		out.WeightKg = DefaultWeightKg
	}
	if out.HeightCm <= 0 {
		out.HeightCm = DefaultHeightCm
	}
	if out.Age <= 0 {
		out.Age = DefaultAge
	}
	out.Goal = domain.Goal(strings.ToLower(strings.TrimSpace(string(out.Goal))))
	switch out.Goal {
	case domain.GoalFatLoss, domain.GoalMuscleGain, domain.GoalEndurance, domain.GoalGeneral:
	default:
		out.Goal = domain.GoalGeneral
	}
	out.Experience = domain.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(out.Experience))))
	switch out.Experience {
	case domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced:
	default:
		out.Experience = domain.ExperienceIntermediate
	}
	if _, ok := activityMultipliers[out.Activity]; !ok {
		out.Activity = domain.ActivityModerate
	}

	switch {
	case out.TrainingDays <= 0:
		out.TrainingDays = DefaultTrainingDays
	case out.TrainingDays > 7:
		out.TrainingDays = 7
	}
	switch {
	case out.SessionMinutes <= 0:
		out.SessionMinutes = DefaultSessionMinutes
	case out.SessionMinutes < minSessionMins:
		out.SessionMinutes = minSessionMins
	case out.SessionMinutes > maxSessionMins:
		out.SessionMinutes = maxSessionMins
	}
	switch {
	case out.MealCount <= 0:
		out.MealCount = DefaultMealCount
	case out.MealCount > 6:
		out.MealCount = 6
	}
	return out
}

// ComputeTargets derives the daily energy, protein and hydration targets.
// Identical profiles always produce identical targets.
func ComputeTargets(p domain.Profile) domain.DerivedTargets {
	p = NormalizeProfile(p)

	// Mifflin-St Jeor; unspecified sex takes the midpoint of the two constants.
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Sex {
	case domain.SexMale:
		bmr += 5
	case domain.SexFemale:
		bmr -= 161
	default:
		bmr -= 78
	}
	tdee := bmr * activityMultipliers[p.Activity]
	if m, ok := goalMultipliers[p.Goal]; ok {
		tdee *= m
	}

	return domain.DerivedTargets{
		EnergyKcal:           int(math.Round(tdee/10) * 10),
		ProteinG:             int(math.Round(proteinPerKg * p.WeightKg)),
		HydrationL:           hydrationTarget(p),
		EstimatedWeeksToGoal: EstimateWeeksToGoal(p),
	}
}

func hydrationTarget(p domain.Profile) float64 {
	hours := float64(p.SessionMinutes) / 60
	extra := intensityRate(p) * hours * float64(p.TrainingDays) / 7
	l := waterPerKg*p.WeightKg + extra
	l = math.Max(minHydrationL, math.Min(maxHydrationL, l))
	return math.Round(l*10) / 10
}

// intensityRate is the extra litres per training hour, inferred from goal and experience.
func intensityRate(p domain.Profile) float64 {
	rate := 0.5
	switch p.Goal {
	case domain.GoalFatLoss:
		rate = 0.6
	case domain.GoalEndurance:
		rate = 0.8
	}
	switch p.Experience {
	case domain.ExperienceBeginner:
		rate -= 0.1
	case domain.ExperienceAdvanced:
		rate += 0.1
	}
	return rate
}

// weekly change rates in kg used for the goal estimate
var weeklyRateKg = map[domain.Goal]float64{
	domain.GoalFatLoss:    0.5,
	domain.GoalMuscleGain: 0.25,
}

// EstimateWeeksToGoal returns the whole weeks needed to reach the target weight, or 0 when no
// target is set or it is already reached.
func EstimateWeeksToGoal(p domain.Profile) int {
	if p.TargetWeightKg <= 0 {
		return 0
	}
	weight := p.WeightKg
	if weight <= 0 {
		weight = DefaultWeightKg
	}
	diff := math.Abs(weight - p.TargetWeightKg)
	if diff < 0.1 {
		return 0
	}
	rate, ok := weeklyRateKg[p.Goal]
	if !ok {
		rate = 0.35
	}
	return int(math.Ceil(diff / rate))
}
