package planner

import (
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"testing"
	"time"
)

func TestComputeTargets(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
		want    domain.DerivedTargets
	}{
		{
			name: "male general moderate",
			profile: domain.Profile{
				Goal: domain.GoalGeneral, Experience: domain.ExperienceIntermediate,
				WeightKg: 80, HeightCm: 180, Age: 30, Sex: domain.SexMale, Activity: domain.ActivityModerate,
			},
			want: domain.DerivedTargets{EnergyKcal: 2760, ProteinG: 144, HydrationL: 2.9},
		},
		{
			name: "female fat loss sedentary",
			profile: domain.Profile{
				Goal: domain.GoalFatLoss, Experience: domain.ExperienceIntermediate,
				WeightKg: 60, HeightCm: 165, Age: 25, Sex: domain.SexFemale, Activity: domain.ActivitySedentary,
			},
			want: domain.DerivedTargets{EnergyKcal: 1290, ProteinG: 108, HydrationL: 2.2},
		},
		{
			name:    "everything missing uses population means",
			profile: domain.Profile{},
			want:    domain.DerivedTargets{EnergyKcal: 2380, ProteinG: 126, HydrationL: 2.5},
		},
		{
			name:    "hydration clamps at the upper bound",
			profile: domain.Profile{WeightKg: 150, HeightCm: 190, Age: 40, Sex: domain.SexMale},
			want:    domain.DerivedTargets{EnergyKcal: 3860, ProteinG: 270, HydrationL: 4.0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTargets(tt.profile)
			if got != tt.want {
				t.Errorf("ComputeTargets() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeTargetsDeterministic(t *testing.T) {
	p := domain.Profile{Goal: domain.GoalMuscleGain, WeightKg: 72.5, HeightCm: 176, Age: 27, TrainingDays: 5}
	first := ComputeTargets(p)
	for i := 0; i < 10; i++ {
		if got := ComputeTargets(p); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestNormalizeProfile(t *testing.T) {
	p := NormalizeProfile(domain.Profile{
		Goal:           " Fat_Loss ",
		Experience:     "wizard",
		Activity:       "couch",
		TrainingDays:   12,
		SessionMinutes: 5,
		MealCount:      9,
	})
	if p.Goal != domain.GoalFatLoss {
		t.Errorf("Goal = %q", p.Goal)
	}
	if p.Experience != domain.ExperienceIntermediate {
		t.Errorf("Experience = %q", p.Experience)
	}
	if p.Activity != domain.ActivityModerate {
		t.Errorf("Activity = %q", p.Activity)
	}
	if p.TrainingDays != 7 || p.SessionMinutes != 15 || p.MealCount != 6 {
		t.Errorf("clamped counts = %d/%d/%d", p.TrainingDays, p.SessionMinutes, p.MealCount)
	}
	if p.WeightKg != DefaultWeightKg || p.HeightCm != DefaultHeightCm || p.Age != DefaultAge {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestEstimateWeeksToGoal(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Profile
		want int
	}{
		{"no target", domain.Profile{WeightKg: 90}, 0},
		{"fat loss", domain.Profile{Goal: domain.GoalFatLoss, WeightKg: 90, TargetWeightKg: 80}, 20},
		{"muscle gain rounds up", domain.Profile{Goal: domain.GoalMuscleGain, WeightKg: 70, TargetWeightKg: 72.1}, 9},
		{"already there", domain.Profile{Goal: domain.GoalFatLoss, WeightKg: 80, TargetWeightKg: 80}, 0},
		{"general rate", domain.Profile{WeightKg: 75, TargetWeightKg: 78.4}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateWeeksToGoal(tt.p); got != tt.want {
				t.Errorf("EstimateWeeksToGoal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrainingPatternCounts(t *testing.T) {
	for n := 1; n <= 7; n++ {
		pattern := TrainingPattern(n)
		count := 0
		for _, on := range pattern {
			if on {
				count++
			}
		}
		if count != n {
			t.Errorf("TrainingPattern(%d) has %d training days", n, count)
		}
	}
	if got := TrainingPattern(3); got != [7]bool{true, false, true, false, false, true, false} {
		t.Errorf("TrainingPattern(3) = %v", got)
	}
}

func TestSelectSplit(t *testing.T) {
	tests := []struct {
		level domain.ExperienceLevel
		days  int
		want  []string
	}{
		{domain.ExperienceBeginner, 3, []string{knowledge.FocusFullBody, knowledge.FocusFullBody, knowledge.FocusFullBody}},
		{domain.ExperienceIntermediate, 3, []string{knowledge.FocusPush, knowledge.FocusPull, knowledge.FocusLegs}},
		{domain.ExperienceAdvanced, 0, []string{knowledge.FocusFullBody}},
		{"unknown", 2, []string{knowledge.FocusUpper, knowledge.FocusLower}},
	}
	for _, tt := range tests {
		got := SelectSplit(tt.level, tt.days)
		if len(got) != len(tt.want) {
			t.Fatalf("SelectSplit(%s, %d) = %v", tt.level, tt.days, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SelectSplit(%s, %d)[%d] = %q, want %q", tt.level, tt.days, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildSchedule(t *testing.T) {
	slots := BuildSchedule(domain.Profile{Experience: domain.ExperienceIntermediate, TrainingDays: 4})
	if len(slots) != 7 {
		t.Fatalf("got %d slots", len(slots))
	}
	training := 0
	for i, s := range slots {
		if s.Key != domain.DayKeys[i] {
			t.Errorf("slot %d key = %q", i, s.Key)
		}
		if s.IsTrainingDay {
			training++
		} else if s.Focus != knowledge.FocusRecovery {
			t.Errorf("rest slot %s focus = %q", s.Key, s.Focus)
		}
	}
	if training != 4 {
		t.Errorf("training days = %d, want 4", training)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Config{
		Generation: config.GenerationConfig{Timeout: 30 * time.Second, Model: "m"},
		Planner:    config.PlannerConfig{RepetitionCap: 3, MacroPolicy: "tolerance", MacroTolerance: 0.1},
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.MacroPolicy != MacroTolerance || opts.RepetitionCap != 3 || opts.AdapterTimeout != 30*time.Second {
		t.Errorf("opts = %+v", opts)
	}
	cfg.Planner.MacroPolicy = "loose"
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestLoadKnowledgeDefault(t *testing.T) {
	kb, err := LoadKnowledge("")
	if err != nil {
		t.Fatal(err)
	}
	if len(kb.ExercisesFor("push", knowledge.TierGym)) == 0 {
		t.Error("default knowledge base has no push exercises")
	}
	if _, err := LoadKnowledge("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing overlay")
	}
}
