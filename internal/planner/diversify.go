package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"strings"
)

// DefaultRepetitionCap is how many days of the week a main-block exercise may appear on.
const DefaultRepetitionCap = 2

// CandidatePool supplies allowed alternatives for a focus.
type CandidatePool interface {
	CandidatesFor(focus string) []string
}

// usage counts, per lower-cased exercise name, the days it has appeared on so far.
type usage map[string]int

func (u usage) with(names map[string]bool) usage {
	next := make(usage, len(u)+len(names))
	for k, v := range u {
		next[k] = v
	}
	for k := range names {
		next[k]++
	}
	return next
}

// Diversify caps how many days each main-block exercise appears on. Days are folded in order
// with the usage counts as accumulator; an exercise over the cap is swapped for the first pool
// candidate still under it, or kept when none is.
func Diversify(plan domain.WeeklyPlan, limit int, pool CandidatePool) domain.WeeklyPlan {
	if limit <= 0 {
		limit = DefaultRepetitionCap
	}
	out := plan.Clone()
	acc := usage{}
	for _, key := range domain.DayKeys {
		day, ok := out.Days[key]
		if !ok {
			continue
		}
		day, acc = diversifyDay(day, acc, limit, pool)
		out.Days[key] = day
	}
	return out
}

func diversifyDay(day domain.DayPlan, acc usage, limit int, pool CandidatePool) (domain.DayPlan, usage) {
	focus := knowledge.FocusFullBody
	if len(day.Workout.Focus) > 0 {
		focus = day.Workout.Focus[0]
	}
	// taken holds every main-block name of the day up front, so a swap can
	// never land on an exercise that comes later in the same day.
	taken := map[string]bool{}
	for _, b := range day.Workout.Blocks {
		if !isMainBlock(b.Name) {
			continue
		}
		for _, it := range b.Items {
			taken[strings.ToLower(it.Exercise)] = true
		}
	}

	today := map[string]bool{}
	for bi := range day.Workout.Blocks {
		if !isMainBlock(day.Workout.Blocks[bi].Name) {
			continue
		}
		items := day.Workout.Blocks[bi].Items
		for ii := range items {
			name := strings.ToLower(items[ii].Exercise)
			if today[name] {
				continue // repeated within the day, counted once
			}
			if acc[name] >= limit {
				if alt, ok := alternative(pool.CandidatesFor(focus), acc, taken, limit, name); ok {
					items[ii].Exercise = alt
					name = strings.ToLower(alt)
					taken[name] = true
				}
			}
			today[name] = true
		}
	}
	return day, acc.with(today)
}

func alternative(candidates []string, acc usage, taken map[string]bool, limit int, current string) (string, bool) {
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == current || taken[lc] || acc[lc] >= limit {
			continue
		}
		return c, true
	}
	return "", false
}
