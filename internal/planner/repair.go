package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"fmt"
	"math"
	"strings"
)

var (
	genericMealItem = domain.MealItem{Food: "Mixed vegetables", Qty: "1 serving"}
	genericMobility = []string{"10 min easy walk", "Full-body stretch 5 min"}
	genericSleep    = []string{"Aim for 7-9 hours of sleep"}
)

// RepairInput is what the repairer needs to synthesize missing pieces.
type RepairInput struct {
	Profile  domain.Profile
	Targets  domain.DerivedTargets
	Schedule []domain.DaySlot
	KB       knowledge.Base
}

// Repair fills every defect named in report with a deterministic minimal equivalent. Missing days
// use the average energy and protein of the days present; unexpected day keys are dropped.
// A passing report returns plan as is.
func Repair(plan PartialPlan, report Report, in RepairInput) PartialPlan {
	if report.OK() {
		return plan
	}
	in.Profile = NormalizeProfile(in.Profile)
	out := plan.Clone()
	out.HasDays = true
	out.Unexpected = nil // unknown day keys are the only thing repair removes

	r := repairer{
		in:   in,
		tier: knowledge.TierFor(in.Profile.Equipment),
		tpl:  in.KB.MealTemplateFor(knowledge.DietTierFor(in.Profile.DietaryPreferences)),
		rx:   prescriptionFor(in.Profile),
	}
	// Synthesized totals follow what the model already wrote, not the targets.
	r.kcal, r.protein = averageTotals(out, in.Targets)

	// Only days named in the report are touched; clean days pass through as cloned.
	for _, key := range report.Days() {
		if !isDayKey(key) {
			continue
		}
		slot := slotFor(in.Schedule, key)
		day := out.Days[key]
		if day == nil {
			// whole day lost, usually to truncation
			out.Days[key] = r.synthesizeDay(slot)
			continue
		}
		r.fillDay(day, slot)
	}
	return out
}

type repairer struct {
	in            RepairInput
	tier          knowledge.EquipmentTier
	tpl           knowledge.MealTemplates
	rx            prescription
	kcal, protein float64
}

func isDayKey(k string) bool {
	for _, d := range domain.DayKeys {
		if d == k {
			return true
		}
	}
	return false
}

// averageTotals averages the positive energy/protein totals present, falling back to targets.
func averageTotals(p PartialPlan, t domain.DerivedTargets) (float64, float64) {
	var kcalSum, proteinSum float64
	var kcalN, proteinN int
	for _, key := range domain.DayKeys {
		d := p.Days[key]
		if d == nil || d.Nutrition == nil {
			continue
		}
		if v := d.Nutrition.TotalKcal; v != nil && *v > 0 {
			kcalSum += *v
			kcalN++
		}
		if v := d.Nutrition.ProteinG; v != nil && *v > 0 {
			proteinSum += *v
			proteinN++
		}
	}
	kcal, protein := float64(t.EnergyKcal), float64(t.ProteinG)
	if kcalN > 0 {
		kcal = math.Round(kcalSum / float64(kcalN))
	}
	if proteinN > 0 {
		protein = math.Round(proteinSum / float64(proteinN))
	}
	return kcal, protein
}

func (r *repairer) synthesizeDay(slot domain.DaySlot) *PartialDay {
	return &PartialDay{
		Workout:   r.minimalWorkout(slot),
		Nutrition: r.minimalNutrition(),
		Recovery:  r.minimalRecovery(slot),
		Reason:    defaultReason(slot, r.in.Targets),
	}
}

func (r *repairer) exercises(focus string) []string {
	list := r.in.KB.ExercisesFor(focus, r.tier)
	if len(list) == 0 {
		list = safeDefaults
	}
	return list
}

func (r *repairer) minimalWorkout(slot domain.DaySlot) *PartialWorkout {
	if !slot.IsTrainingDay {
		moves := r.exercises(knowledge.FocusRecovery)
		items := []domain.ExerciseItem{recoveryItem(moves[0])}
		if len(moves) > 1 {
			items = append(items, recoveryItem(moves[1]))
		}
		return &PartialWorkout{
			Focus:  []string{knowledge.FocusRecovery},
			Blocks: []PartialBlock{{Name: "Active Recovery", Items: items}},
		}
	}
	list := r.exercises(slot.Focus)
	n := 3
	if len(list) < n {
		n = len(list)
	}
	items := make([]domain.ExerciseItem, 0, n)
	for _, name := range list[:n] {
		items = append(items, r.rx.item(name))
	}
	return &PartialWorkout{
		Focus:  []string{slot.Focus},
		Blocks: []PartialBlock{{Name: "Main", Items: items}},
	}
}

func (r *repairer) minimalNutrition() *PartialNutrition {
	kcal, protein, water := r.kcal, r.protein, r.in.Targets.HydrationL
	meals := buildMeals(r.in.Profile.MealCount, r.tpl)
	for i := range meals {
		if len(meals[i].Items) == 0 {
			meals[i].Items = []domain.MealItem{genericMealItem}
		}
	}
	return &PartialNutrition{TotalKcal: &kcal, ProteinG: &protein, HydrationL: &water, Meals: meals}
}

func (r *repairer) minimalRecovery(slot domain.DaySlot) *PartialRecovery {
	rec, ok := recoveryFromTemplate(r.in.KB, slot.Focus, slot.Key)
	if !ok {
		return &PartialRecovery{
			Mobility: append([]string(nil), genericMobility...),
			Sleep:    append([]string(nil), genericSleep...),
		}
	}
	return &PartialRecovery{Mobility: rec.Mobility, Sleep: rec.Sleep, CareNotes: rec.CareNotes}
}

func (r *repairer) fillDay(d *PartialDay, slot domain.DaySlot) {
	if d.Workout == nil {
		d.Workout = r.minimalWorkout(slot)
	} else {
		r.fillWorkout(d.Workout, slot)
	}

	if d.Nutrition == nil {
		d.Nutrition = r.minimalNutrition()
	} else {
		r.fillNutrition(d.Nutrition)
	}

	if d.Recovery == nil {
		d.Recovery = r.minimalRecovery(slot)
	} else {
		def := r.minimalRecovery(slot)
		if len(d.Recovery.Mobility) == 0 {
			d.Recovery.Mobility = def.Mobility
		}
		if len(d.Recovery.Sleep) == 0 {
			d.Recovery.Sleep = def.Sleep
		}
	}

	if strings.TrimSpace(d.Reason) == "" {
		d.Reason = defaultReason(slot, r.in.Targets)
	}
}

func (r *repairer) fillWorkout(w *PartialWorkout, slot domain.DaySlot) {
	if len(w.Focus) == 0 {
		w.Focus = []string{slot.Focus}
	}
	if len(w.Blocks) == 0 {
		w.Blocks = r.minimalWorkout(domain.DaySlot{Key: slot.Key, IsTrainingDay: slot.IsTrainingDay, Focus: w.Focus[0]}).Blocks
		return
	}
	// Default items rotate through the focus table by position.
	candidates := r.exercises(w.Focus[0])
	for i := range w.Blocks {
		b := &w.Blocks[i]
		if b.Name == "" {
			if i == 0 {
				b.Name = "Main"
			} else {
				b.Name = fmt.Sprintf("Block %d", i+1)
			}
		}
		main := isMainBlock(b.Name)
		if len(b.Items) == 0 {
			b.Items = []domain.ExerciseItem{r.defaultItem(candidates[0], main)}
			continue
		}
		for j := range b.Items {
			it := &b.Items[j]
			def := r.defaultItem(candidates[j%len(candidates)], main)
			// fill blanks only, never overwrite what the model wrote
			if strings.TrimSpace(it.Exercise) == "" {
				it.Exercise = def.Exercise
			}
			if it.Sets <= 0 {
				it.Sets = def.Sets
			}
			if strings.TrimSpace(it.Reps) == "" {
				it.Reps = def.Reps
			}
		}
	}
}

func (r *repairer) defaultItem(name string, main bool) domain.ExerciseItem {
	if main {
		return r.rx.item(name)
	}
	return warmupItem(name)
}

func (r *repairer) fillNutrition(n *PartialNutrition) {
	if n.TotalKcal == nil || *n.TotalKcal <= 0 {
		v := r.kcal
		n.TotalKcal = &v
	}
	if n.ProteinG == nil || *n.ProteinG <= 0 {
		v := r.protein
		n.ProteinG = &v
	}
	if n.HydrationL == nil || *n.HydrationL <= 0 {
		v := r.in.Targets.HydrationL
		n.HydrationL = &v
	}
	if len(n.Meals) == 0 {
		m := templateMeal("Meal 1", r.tpl)
		if len(m.Items) == 0 {
			m.Items = []domain.MealItem{genericMealItem}
		}
		n.Meals = []domain.Meal{m}
		return
	}
	names := mealNames(len(n.Meals))
	for i := range n.Meals {
		m := &n.Meals[i]
		if strings.TrimSpace(m.Name) == "" {
			if len(names) == len(n.Meals) {
				m.Name = names[i]
			} else {
				m.Name = fmt.Sprintf("Meal %d", i+1)
			}
		}
		if len(m.Items) == 0 {
			m.Items = templateMeal(m.Name, r.tpl).Items
			if len(m.Items) == 0 {
				m.Items = []domain.MealItem{genericMealItem}
			}
			continue
		}
		for j := range m.Items {
			it := &m.Items[j]
			if strings.TrimSpace(it.Food) == "" {
				it.Food = genericMealItem.Food
			}
			if strings.TrimSpace(it.Qty) == "" {
				it.Qty = genericMealItem.Qty
			}
		}
	}
}
