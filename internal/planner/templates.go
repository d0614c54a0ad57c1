package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"fmt"
	"hash/fnv"
	"strings"
)

// prescription is the default loading for main-block items.
type prescription struct {
	Sets int
	Reps string
	RIR  string
	Rest string
}

func prescriptionFor(p domain.Profile) prescription {
	var rx prescription
	switch p.Goal {
	case domain.GoalFatLoss:
		rx = prescription{Sets: 3, Reps: "12-15", RIR: "2", Rest: "60s"}
	case domain.GoalMuscleGain:
		rx = prescription{Sets: 4, Reps: "8-12", RIR: "1-2", Rest: "90s"}
		if p.Experience == domain.ExperienceBeginner {
			rx.Sets, rx.RIR = 3, "2-3"
		}
	case domain.GoalEndurance:
		rx = prescription{Sets: 3, Reps: "15-20", RIR: "3", Rest: "45s"}
	default:
		rx = prescription{Sets: 3, Reps: "8-12", RIR: "2", Rest: "75s"}
	}
	if p.SessionMinutes > 0 && p.SessionMinutes < 30 && rx.Sets > 2 {
		rx.Sets--
	}
	return rx
}

func (rx prescription) item(name string) domain.ExerciseItem {
	return domain.ExerciseItem{Exercise: name, Sets: rx.Sets, Reps: rx.Reps, RIR: rx.RIR, Rest: rx.Rest}
}

func warmupItem(name string) domain.ExerciseItem {
	return domain.ExerciseItem{Exercise: name, Sets: 1, Reps: "8-10", RIR: "4"}
}

func recoveryItem(name string) domain.ExerciseItem {
	return domain.ExerciseItem{Exercise: name, Sets: 1, Reps: "10 min", RIR: "5"}
}

// mealNames returns the declared meal names for a day with count meals.
func mealNames(count int) []string {
	switch {
	case count <= 1:
		return []string{"Main Meal"}
	case count == 2:
		return []string{"Breakfast", "Dinner"}
	case count == 3:
		return []string{"Breakfast", "Lunch", "Dinner"}
	case count == 4:
		return []string{"Breakfast", "Lunch", "Snack 1", "Dinner"}
	case count == 5:
		return []string{"Breakfast", "Snack 1", "Lunch", "Snack 2", "Dinner"}
	default:
		return []string{"Breakfast", "Snack 1", "Lunch", "Snack 2", "Dinner", "Snack 3"}
	}
}

// templateMeal picks the template for a declared meal name and renames it.
func templateMeal(name string, tpl knowledge.MealTemplates) domain.Meal {
	var src domain.Meal
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "breakfast"):
		src = tpl.Breakfast
	case strings.Contains(lower, "dinner"):
		src = tpl.Dinner
	case strings.Contains(lower, "snack") && len(tpl.Snacks) > 0:
		var n int
		if _, err := fmt.Sscanf(lower, "snack %d", &n); err != nil || n < 1 {
			n = 1
		}
		src = tpl.Snacks[(n-1)%len(tpl.Snacks)]
	default:
		src = tpl.Lunch
	}
	if len(src.Items) == 0 {
		src = firstNonEmptyMeal(tpl)
	}
	return domain.Meal{Name: name, Items: append([]domain.MealItem(nil), src.Items...)}
}

func firstNonEmptyMeal(tpl knowledge.MealTemplates) domain.Meal {
	for _, m := range []domain.Meal{tpl.Lunch, tpl.Dinner, tpl.Breakfast} {
		if len(m.Items) > 0 {
			return m
		}
	}
	return domain.Meal{}
}

func buildMeals(count int, tpl knowledge.MealTemplates) []domain.Meal {
	names := mealNames(count)
	meals := make([]domain.Meal, 0, len(names))
	for _, n := range names {
		meals = append(meals, templateMeal(n, tpl))
	}
	return meals
}

// stableIndex picks an index from a stable hash of key; the same key always gives the same pick.
func stableIndex(key string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

func recoveryFromTemplate(kb knowledge.Base, focus, dayKey string) (domain.Recovery, bool) {
	templates := kb.RecoveryFor(focus)
	if len(templates) == 0 {
		return domain.Recovery{}, false
	}
	t := templates[stableIndex(dayKey, len(templates))]
	return domain.Recovery{
		Mobility:  append([]string(nil), t.Mobility...),
		Sleep:     append([]string(nil), t.Sleep...),
		CareNotes: append([]string(nil), t.CareNotes...),
	}, true
}

func defaultReason(slot domain.DaySlot, targets domain.DerivedTargets) string {
	if !slot.IsTrainingDay {
		return fmt.Sprintf("Recovery day to absorb training load; eat to %d kcal and %d g protein.", targets.EnergyKcal, targets.ProteinG)
	}
	return fmt.Sprintf("%s session from the weekly split; eat to %d kcal and %d g protein.", slot.Focus, targets.EnergyKcal, targets.ProteinG)
}

func slotFor(schedule []domain.DaySlot, key string) domain.DaySlot {
	for _, s := range schedule {
		if s.Key == key {
			return s
		}
	}
	return domain.DaySlot{Key: key, Focus: knowledge.FocusRecovery}
}

// isMainBlock excludes warm-up, cool-down and recovery blocks by name.
func isMainBlock(name string) bool {
	n := strings.ToLower(name)
	for _, skip := range []string{"warm", "cool", "recovery", "mobility", "stretch"} {
		if strings.Contains(n, skip) {
			return false
		}
	}
	return true
}
