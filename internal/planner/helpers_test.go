package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"encoding/json"
	"strings"
	"testing"
)

func sampleProfile() domain.Profile {
	return domain.Profile{
		UserID:         "user-1",
		Goal:           domain.GoalMuscleGain,
		Experience:     domain.ExperienceIntermediate,
		WeightKg:       78,
		HeightCm:       178,
		Age:            29,
		Sex:            domain.SexMale,
		Activity:       domain.ActivityModerate,
		Equipment:      []string{"gym"},
		TrainingDays:   4,
		SessionMinutes: 60,
		MealCount:      4,
	}
}

// fallbackPlan builds a known-good plan for the profile.
func fallbackPlan(t *testing.T, p domain.Profile) domain.WeeklyPlan {
	t.Helper()
	plan, err := NewFallbackGenerator(knowledge.Default()).Generate(p, ComputeTargets(p))
	if err != nil {
		t.Fatalf("fallback Generate: %v", err)
	}
	return plan
}

func planJSON(t *testing.T, plan domain.WeeklyPlan) string {
	t.Helper()
	raw, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	return string(raw)
}

func mainExercises(day domain.DayPlan) []string {
	var out []string
	for _, b := range day.Workout.Blocks {
		if !isMainBlock(b.Name) {
			continue
		}
		for _, it := range b.Items {
			out = append(out, it.Exercise)
		}
	}
	return out
}

func dayExercises(day domain.DayPlan) []string {
	var out []string
	for _, b := range day.Workout.Blocks {
		for _, it := range b.Items {
			out = append(out, it.Exercise)
		}
	}
	return out
}

func allExercises(plan domain.WeeklyPlan) []string {
	var out []string
	for _, key := range domain.DayKeys {
		out = append(out, dayExercises(plan.Days[key])...)
	}
	return out
}

func allFoods(plan domain.WeeklyPlan) []string {
	var out []string
	for _, key := range domain.DayKeys {
		for _, m := range plan.Days[key].Nutrition.Meals {
			for _, it := range m.Items {
				out = append(out, it.Food)
			}
		}
	}
	return out
}

func containsFold(list []string, term string) (string, bool) {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), strings.ToLower(term)) {
			return s, true
		}
	}
	return "", false
}

func assertComplete(t *testing.T, plan domain.WeeklyPlan) {
	t.Helper()
	if len(plan.Days) != len(domain.DayKeys) {
		t.Fatalf("plan has %d days, want 7", len(plan.Days))
	}
	if report := Validate(FromWeeklyPlan(plan)); !report.OK() {
		t.Fatalf("plan is not valid: %s", report)
	}
}
