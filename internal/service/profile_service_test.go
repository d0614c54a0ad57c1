package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSanitizeProfile(t *testing.T) {
	base := domain.Profile{Goal: "muscle_gain", Experience: "beginner", TrainingDays: 4, MealCount: 3}

	tests := []struct {
		name    string
		mutate  func(p *domain.Profile)
		wantErr bool
		check   func(t *testing.T, p domain.Profile)
	}{
		{name: "valid", mutate: func(p *domain.Profile) {}},
		{name: "unknown goal", mutate: func(p *domain.Profile) { p.Goal = "bulk" }, wantErr: true},
		{name: "missing experience", mutate: func(p *domain.Profile) { p.Experience = "" }, wantErr: true},
		{name: "unknown sex", mutate: func(p *domain.Profile) { p.Sex = "x" }, wantErr: true},
		{name: "unknown activity", mutate: func(p *domain.Profile) { p.Activity = "extreme" }, wantErr: true},
		{name: "negative weight", mutate: func(p *domain.Profile) { p.WeightKg = -1 }, wantErr: true},
		{
			name:   "enum spelling is normalized",
			mutate: func(p *domain.Profile) { p.Goal = " Fat-Loss "; p.Activity = "Very Active" },
			check: func(t *testing.T, p domain.Profile) {
				if p.Goal != domain.GoalFatLoss || p.Activity != domain.ActivityVeryActive {
					t.Errorf("Goal = %q, Activity = %q", p.Goal, p.Activity)
				}
			},
		},
		{
			name:   "counts are clamped",
			mutate: func(p *domain.Profile) { p.TrainingDays = 12; p.MealCount = 9 },
			check: func(t *testing.T, p domain.Profile) {
				if p.TrainingDays != 7 || p.MealCount != 6 {
					t.Errorf("TrainingDays = %d, MealCount = %d", p.TrainingDays, p.MealCount)
				}
			},
		},
		{
			name:   "zero counts take defaults",
			mutate: func(p *domain.Profile) { p.TrainingDays = 0; p.MealCount = -2 },
			check: func(t *testing.T, p domain.Profile) {
				if p.TrainingDays != 3 || p.MealCount != 3 {
					t.Errorf("TrainingDays = %d, MealCount = %d", p.TrainingDays, p.MealCount)
				}
			},
		},
		{
			name:   "lists are cleaned",
			mutate: func(p *domain.Profile) { p.Equipment = []string{" Dumbbells", "dumbbells", "", "bench "} },
			check: func(t *testing.T, p domain.Profile) {
				if want := []string{"Dumbbells", "bench"}; !reflect.DeepEqual(p.Equipment, want) {
					t.Errorf("Equipment = %v, want %v", p.Equipment, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			got, err := SanitizeProfile(p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProfile) {
					t.Fatalf("err = %v, want ErrInvalidProfile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestProfileServiceSaveAndGet(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo())
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("GetProfile before save: err = %v", err)
	}

	saved, err := svc.SaveProfile(ctx, "u1", domain.Profile{Goal: "general", Experience: "advanced", TrainingDays: 5})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if saved.UserID != "u1" || saved.ID.IsZero() {
		t.Errorf("saved = %+v", saved)
	}

	got, err := svc.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.TrainingDays != 5 || got.Experience != domain.ExperienceAdvanced {
		t.Errorf("got = %+v", got)
	}

	if _, err := svc.SaveProfile(ctx, "", domain.Profile{Goal: "general", Experience: "advanced"}); err == nil {
		t.Error("expected error for empty user ID")
	}
}
