package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"reflect"
	"strings"
	"testing"
)

func repairInput(p domain.Profile) RepairInput {
	p = NormalizeProfile(p)
	return RepairInput{
		Profile:  p,
		Targets:  ComputeTargets(p),
		Schedule: BuildSchedule(p),
		KB:       knowledge.Default(),
	}
}

func TestRepairFillsEveryDefect(t *testing.T) {
	profile := sampleProfile()
	raw := planJSON(t, fallbackPlan(t, profile))
	cut := strings.Index(raw, `"day5"`) + 40
	doc, err := Extract(raw[:cut])
	if err != nil {
		t.Fatalf("Extract truncated: %v", err)
	}
	partial := DecodePlan(doc)
	report := Validate(partial)
	if report.OK() {
		t.Fatal("truncated plan should not validate")
	}
	if Assess(partial, report) != OutcomeNeedsRepair {
		t.Fatalf("truncated plan should be repairable: %s", report)
	}

	repaired := Repair(partial, report, repairInput(profile))
	if after := Validate(repaired); !after.OK() {
		t.Fatalf("repaired plan still invalid: %s", after)
	}
	// days before the cut survive untouched
	for _, key := range []string{"day1", "day2", "day3", "day4"} {
		if !reflect.DeepEqual(repaired.Days[key], partial.Days[key]) {
			t.Errorf("%s changed during repair", key)
		}
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	in := repairInput(sampleProfile())
	partial := FromWeeklyPlan(fallbackPlan(t, in.Profile))
	delete(partial.Days, "day2")
	partial.Days["day1"].Workout.Blocks[1].Items[0].Reps = ""
	partial.Days["day3"].Nutrition.Meals = nil
	partial.Days["day6"].Nutrition.TotalKcal = nil
	partial.Unexpected = []string{"bonus"}

	once := Repair(partial, Validate(partial), in)
	twice := Repair(once, Validate(once), in)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("second repair changed the plan")
	}
	if !Validate(once).OK() {
		t.Fatalf("repaired plan invalid: %s", Validate(once))
	}
	if len(once.Unexpected) != 0 {
		t.Errorf("unexpected keys kept: %v", once.Unexpected)
	}
}

func TestRepairMissingDayUsesAverageTotals(t *testing.T) {
	in := repairInput(sampleProfile())
	partial := FromWeeklyPlan(fallbackPlan(t, in.Profile))
	for _, key := range domain.DayKeys {
		v := 2000.0
		partial.Days[key].Nutrition.TotalKcal = &v
	}
	delete(partial.Days, "day7")

	repaired := Repair(partial, Validate(partial), in)
	got := repaired.Days["day7"]
	if got == nil || got.Nutrition == nil || *got.Nutrition.TotalKcal != 2000 {
		t.Fatalf("day7 nutrition = %+v", got)
	}
	if len(got.Nutrition.Meals) != in.Profile.MealCount {
		t.Errorf("day7 meals = %d, want %d", len(got.Nutrition.Meals), in.Profile.MealCount)
	}
}

func TestRepairWithoutDaysSynthesizesWeek(t *testing.T) {
	in := repairInput(sampleProfile())
	partial := DecodePlan(map[string]any{})
	repaired := Repair(partial, Validate(partial), in)
	if !Validate(repaired).OK() {
		t.Fatalf("synthesized week invalid: %s", Validate(repaired))
	}
	if len(repaired.Days) != 7 {
		t.Errorf("got %d days", len(repaired.Days))
	}
}
