package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"fmt"
)

// FallbackGenerator builds a complete plan from the profile and the knowledge base alone.
// Identical profiles always yield identical plans.
type FallbackGenerator struct {
	kb knowledge.Base
}

func NewFallbackGenerator(kb knowledge.Base) *FallbackGenerator {
	return &FallbackGenerator{kb: kb}
}

// Generate fails only when the knowledge base has nothing for the profile.
func (g *FallbackGenerator) Generate(profile domain.Profile, targets domain.DerivedTargets) (domain.WeeklyPlan, error) {
	p := NormalizeProfile(profile)
	tier := knowledge.TierFor(p.Equipment)
	diet := knowledge.DietTierFor(p.DietaryPreferences)
	tpl := g.kb.MealTemplateFor(diet)
	if tpl.Empty() {
		return domain.WeeklyPlan{}, fmt.Errorf("%w: no meal templates for %s", ErrKnowledgeBaseEmpty, diet)
	}
	rx := prescriptionFor(p)
	mainSize := 4
	if p.SessionMinutes < 45 {
		mainSize = 3
	}

	plan := domain.WeeklyPlan{
		Days:                 make(map[string]domain.DayPlan, len(domain.DayKeys)),
		EstimatedWeeksToGoal: targets.EstimatedWeeksToGoal,
	}
	seen := map[string]int{}
	for _, slot := range BuildSchedule(p) {
		occurrence := seen[slot.Focus]
		seen[slot.Focus]++

		var workout domain.Workout
		if slot.IsTrainingDay {
			list := g.kb.ExercisesFor(slot.Focus, tier)
			if len(list) == 0 {
				return domain.WeeklyPlan{}, fmt.Errorf("%w: no exercises for %s/%s", ErrKnowledgeBaseEmpty, slot.Focus, tier)
			}
			workout = g.trainingWorkout(slot.Focus, rotate(list, occurrence*mainSize, mainSize), rx)
		} else {
			list := g.kb.ExercisesFor(knowledge.FocusRecovery, tier)
			if len(list) == 0 {
				return domain.WeeklyPlan{}, fmt.Errorf("%w: no recovery activities for %s", ErrKnowledgeBaseEmpty, tier)
			}
			items := make([]domain.ExerciseItem, 0, 2)
			for _, name := range rotate(list, occurrence*2, 2) {
				items = append(items, recoveryItem(name))
			}
			workout = domain.Workout{
				Focus:  []string{knowledge.FocusRecovery},
				Blocks: []domain.Block{{Name: "Active Recovery", Items: items}},
				Notes:  "Keep everything easy and conversational.",
			}
		}

		recovery, ok := recoveryFromTemplate(g.kb, slot.Focus, slot.Key)
		if !ok {
			return domain.WeeklyPlan{}, fmt.Errorf("%w: no recovery templates for %s", ErrKnowledgeBaseEmpty, slot.Focus)
		}
		recovery.Supplements = append([]string(nil), p.Supplements...)

		plan.Days[slot.Key] = domain.DayPlan{
			Workout: workout,
			Nutrition: domain.Nutrition{
				TotalKcal:  targets.EnergyKcal,
				ProteinG:   targets.ProteinG,
				Meals:      buildMeals(p.MealCount, tpl),
				HydrationL: targets.HydrationL,
			},
			Recovery: recovery,
			Reason:   defaultReason(slot, targets),
		}
	}
	return plan, nil
}

func (g *FallbackGenerator) trainingWorkout(focus string, main []string, rx prescription) domain.Workout {
	var blocks []domain.Block
	if warm := g.kb.WarmupFor(focus); len(warm) > 0 {
		b := domain.Block{Name: "Warm-up"}
		for _, name := range warm {
			b.Items = append(b.Items, warmupItem(name))
		}
		blocks = append(blocks, b)
	}
	mainBlock := domain.Block{Name: "Main"}
	for _, name := range main {
		mainBlock.Items = append(mainBlock.Items, rx.item(name))
	}
	blocks = append(blocks, mainBlock)
	if cool := g.kb.CooldownFor(focus); len(cool) > 0 {
		b := domain.Block{Name: "Cool-down"}
		for _, name := range cool {
			it := warmupItem(name)
			it.Reps = "30-45s"
			b.Items = append(b.Items, it)
		}
		blocks = append(blocks, b)
	}
	return domain.Workout{
		Focus:  []string{focus},
		Blocks: blocks,
		Notes:  fmt.Sprintf("Work at RIR %s and rest %s between sets.", rx.RIR, rx.Rest),
	}
}

// rotate returns n distinct entries of list starting at offset, wrapping around.
func rotate(list []string, offset, n int) []string {
	if n > len(list) {
		n = len(list)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list[(offset+i)%len(list)])
	}
	return out
}
