package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"math"
)

const (
	fb   = knowledge.FocusFullBody
	up   = knowledge.FocusUpper
	lo   = knowledge.FocusLower
	push = knowledge.FocusPush
	pull = knowledge.FocusPull
	legs = knowledge.FocusLegs
	cond = knowledge.FocusConditioning
)

// splitTable[level][n-1] is the ordered focus list for n training days.
var splitTable = map[domain.ExperienceLevel][7][]string{
	domain.ExperienceBeginner: {
		{fb},
		{fb, fb},
		{fb, fb, fb},
		{up, lo, up, lo},
		{up, lo, fb, up, lo},
		{up, lo, cond, up, lo, fb},
		{up, lo, cond, fb, up, lo, cond},
	},
	domain.ExperienceIntermediate: {
		{fb},
		{up, lo},
		{push, pull, legs},
		{up, lo, up, lo},
		{push, pull, legs, up, lo},
		{push, pull, legs, push, pull, legs},
		{push, pull, legs, cond, up, lo, fb},
	},
	domain.ExperienceAdvanced: {
		{fb},
		{up, lo},
		{push, pull, legs},
		{push, pull, legs, up},
		{push, pull, legs, up, lo},
		{push, pull, legs, push, pull, legs},
		{push, pull, legs, push, pull, legs, cond},
	},
}

// SelectSplit returns the ordered focus labels for the given experience and training-day count.
// days is clamped to [1,7]; unknown levels use the intermediate row.
func SelectSplit(level domain.ExperienceLevel, days int) []string {
	row, ok := splitTable[level]
	if !ok {
		row = splitTable[domain.ExperienceIntermediate]
	}
	days = clampDays(days)
	return append([]string(nil), row[days-1]...)
}

// TrainingPattern spreads n training days evenly over seven slots.
func TrainingPattern(n int) [7]bool {
	n = clampDays(n)
	var pattern [7]bool
	step := 7.0 / float64(n)
	for i := 0; i < n; i++ {
		slot := int(math.Round(float64(i)*step)) % 7
		for pattern[slot] {
			slot = (slot + 1) % 7
		}
		pattern[slot] = true
	}
	return pattern
}

// BuildSchedule assigns the split's focuses to training slots; remaining slots are recovery days.
func BuildSchedule(p domain.Profile) []domain.DaySlot {
	p = NormalizeProfile(p)
	focuses := SelectSplit(p.Experience, p.TrainingDays)
	pattern := TrainingPattern(p.TrainingDays)

	slots := make([]domain.DaySlot, 0, 7)
	next := 0
	for i, key := range domain.DayKeys {
		slot := domain.DaySlot{Key: key, Focus: knowledge.FocusRecovery}
		if pattern[i] && next < len(focuses) {
			slot.IsTrainingDay = true
			slot.Focus = focuses[next]
			next++
		}
		slots = append(slots, slot)
	}
	return slots
}

func clampDays(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 7:
		return 7
	}
	return n
}
