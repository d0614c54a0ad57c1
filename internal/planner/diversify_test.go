package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"strings"
	"testing"
)

// pushWeek puts the same two main lifts on every day.
func pushWeek(t *testing.T) domain.WeeklyPlan {
	t.Helper()
	plan := fallbackPlan(t, sampleProfile())
	rx := prescriptionFor(sampleProfile())
	for _, key := range domain.DayKeys {
		d := plan.Days[key]
		d.Workout = domain.Workout{
			Focus: []string{knowledge.FocusPush},
			Blocks: []domain.Block{
				{Name: "Warm-up", Items: []domain.ExerciseItem{warmupItem("Arm Circles")}},
				{Name: "Main", Items: []domain.ExerciseItem{rx.item("Barbell Bench Press"), rx.item("Overhead Press")}},
				{Name: "Cool-down", Items: []domain.ExerciseItem{warmupItem("Child's Pose")}},
			},
		}
		plan.Days[key] = d
	}
	return plan
}

func dayCounts(plan domain.WeeklyPlan) map[string]int {
	counts := map[string]int{}
	for _, key := range domain.DayKeys {
		seen := map[string]bool{}
		for _, name := range mainExercises(plan.Days[key]) {
			seen[strings.ToLower(name)] = true
		}
		for name := range seen {
			counts[name]++
		}
	}
	return counts
}

func TestDiversifyCapsRepetition(t *testing.T) {
	plan := pushWeek(t)
	pool := newTestEnforcer(MacroExact).Pool(sampleProfile())

	for _, limit := range []int{2, 3} {
		out := Diversify(plan, limit, pool)
		for name, n := range dayCounts(out) {
			if n > limit {
				t.Errorf("limit %d: %q appears on %d days", limit, name, n)
			}
		}
		// warm-up and cool-down are exempt
		for _, key := range domain.DayKeys {
			if got := out.Days[key].Workout.Blocks[0].Items[0].Exercise; got != "Arm Circles" {
				t.Errorf("limit %d: %s warm-up changed to %q", limit, key, got)
			}
		}
	}

	// input untouched
	if dayCounts(plan)["barbell bench press"] != 7 {
		t.Error("Diversify mutated its input")
	}
}

func TestDiversifyKeepsWhenNoCandidate(t *testing.T) {
	plan := pushWeek(t)
	out := Diversify(plan, 2, staticPool(nil))
	if dayCounts(out)["barbell bench press"] != 7 {
		t.Error("exercise replaced although no candidate exists")
	}
}

func TestDiversifyFiveBenchDays(t *testing.T) {
	plan := pushWeek(t)
	for _, key := range []string{"day6", "day7"} {
		d := plan.Days[key]
		d.Workout.Blocks[1].Items[0].Exercise = "Dumbbell Lateral Raise"
		plan.Days[key] = d
	}
	out := Diversify(plan, DefaultRepetitionCap, staticPool([]string{"Barbell Bench Press", "Incline Dumbbell Press", "Cable Fly", "Machine Chest Press"}))
	counts := dayCounts(out)
	if counts["barbell bench press"] != 2 {
		t.Errorf("bench appears on %d days, want 2", counts["barbell bench press"])
	}
	if counts["incline dumbbell press"] > 2 || counts["cable fly"] > 2 {
		t.Errorf("replacements over cap: %v", counts)
	}
}

func TestDiversifyNeverDuplicatesWithinDay(t *testing.T) {
	plan := pushWeek(t)
	for _, key := range []string{"day1", "day2"} {
		d := plan.Days[key]
		d.Workout.Blocks[1].Items = d.Workout.Blocks[1].Items[:1]
		plan.Days[key] = d
	}
	// bench on all seven days, overhead press on days 3-7
	out := Diversify(plan, DefaultRepetitionCap, staticPool([]string{"Overhead Press", "Incline Dumbbell Press", "Cable Fly", "Machine Chest Press", "Dumbbell Lateral Raise", "Push-Up"}))
	for _, key := range domain.DayKeys {
		seen := map[string]bool{}
		for _, name := range mainExercises(out.Days[key]) {
			lower := strings.ToLower(name)
			if seen[lower] {
				t.Errorf("%s repeats %q: %v", key, name, mainExercises(out.Days[key]))
			}
			seen[lower] = true
		}
	}
	for name, n := range dayCounts(out) {
		if n > DefaultRepetitionCap {
			t.Errorf("%q appears on %d days", name, n)
		}
	}
}

func TestDiversifyDeterministic(t *testing.T) {
	plan := pushWeek(t)
	pool := newTestEnforcer(MacroExact).Pool(sampleProfile())
	a, b := Diversify(plan, 2, pool), Diversify(plan, 2, pool)
	for _, key := range domain.DayKeys {
		if strings.Join(mainExercises(a.Days[key]), "|") != strings.Join(mainExercises(b.Days[key]), "|") {
			t.Fatalf("%s differs between runs", key)
		}
	}
}

type staticPool []string

func (p staticPool) CandidatesFor(string) []string { return p }
