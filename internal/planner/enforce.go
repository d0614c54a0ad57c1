package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"fmt"
	"math"
	"strings"
)

// MacroPolicy decides how daily energy/protein totals are reconciled with the targets.
type MacroPolicy string

const (
	MacroExact     MacroPolicy = "exact"
	MacroTolerance MacroPolicy = "tolerance"

	DefaultMacroTolerance = 0.05
)

// safeDefaults are tried when neither preferences, curated replacements nor the focus table
// yield an allowed exercise.
var safeDefaults = []string{"Glute Bridge", "Dead Bug", "Plank", "Bird Dog", "Brisk Walk", "Cat-Cow", "Breathing Drill"}

// minutes per set used to estimate session length
const (
	mainSetMinutes  = 2.0
	extraSetMinutes = 1.0
)

// ParseMacroPolicy accepts "exact" or "tolerance"; anything else is an error.
func ParseMacroPolicy(s string) (MacroPolicy, error) {
	switch MacroPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MacroExact:
		return MacroExact, nil
	case MacroTolerance:
		return MacroTolerance, nil
	}
	return "", fmt.Errorf("unknown macro policy %q", s)
}

// Enforcer rewrites plans so every exercise and food respects the profile. It substitutes and
// never deletes, so the shape of each day survives.
type Enforcer struct {
	kb        knowledge.Base
	matcher   Matcher
	policy    MacroPolicy
	tolerance float64
}

func NewEnforcer(kb knowledge.Base, matcher Matcher, policy MacroPolicy, tolerance float64) *Enforcer {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	if policy == "" {
		policy = MacroExact
	}
	if tolerance <= 0 {
		tolerance = DefaultMacroTolerance
	}
	return &Enforcer{kb: kb, matcher: matcher, policy: policy, tolerance: tolerance}
}

// constraints is the per-profile view of what is allowed.
type constraints struct {
	kb        knowledge.Base
	matcher   Matcher
	tier      knowledge.EquipmentTier
	diet      knowledge.DietTier
	avoid     []string
	equipment []string
	preferred []string
}

func (e *Enforcer) constraintsFor(p domain.Profile) constraints {
	tier := knowledge.TierFor(p.Equipment)
	return constraints{
		kb:        e.kb,
		matcher:   e.matcher,
		tier:      tier,
		diet:      knowledge.DietTierFor(p.DietaryPreferences),
		avoid:     p.AvoidExercises,
		equipment: knowledge.UnavailableFor(e.kb, p.Equipment),
		preferred: p.PreferredExercises,
	}
}

// Pool returns the allowed-exercise candidates for a profile, for use by Diversify.
func (e *Enforcer) Pool(p domain.Profile) CandidatePool {
	return e.constraintsFor(NormalizeProfile(p))
}

// Allowed reports whether an exercise name avoids every banned term and unavailable equipment token.
func (c constraints) Allowed(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if _, hit := matchAny(c.matcher, name, c.avoid); hit {
		return false
	}
	_, hit := matchAny(c.matcher, name, c.equipment)
	return !hit
}

// CandidatesFor lists the allowed exercises of a focus in table order. The bodyweight column
// follows the tier's own, since a partial home or gym setup can ban most of its column.
func (c constraints) CandidatesFor(focus string) []string {
	names := c.kb.ExercisesFor(focus, c.tier)
	if c.tier != knowledge.TierBodyweight {
		names = append(names, c.kb.ExercisesFor(focus, knowledge.TierBodyweight)...)
	}
	var out []string
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] || !c.Allowed(name) {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// substitute picks a replacement for name: a preferred exercise, else a curated replacement,
// else the focus table, else a generic safe default. Names already used that day are skipped
// where possible.
func (c constraints) substitute(name, focus string, usedToday map[string]bool) string {
	pools := [][]string{c.preferred, c.kb.ReplacementsFor(name), c.CandidatesFor(focus), safeDefaults}
	for _, pool := range pools {
		for _, cand := range pool {
			if c.Allowed(cand) && !usedToday[strings.ToLower(cand)] {
				return cand
			}
		}
	}
	for _, pool := range pools {
		for _, cand := range pool {
			if c.Allowed(cand) {
				return cand
			}
		}
	}
	return safeDefaults[len(safeDefaults)-1]
}

// Enforce applies every constraint pass to a complete plan and returns a new plan.
func (e *Enforcer) Enforce(plan domain.WeeklyPlan, p domain.Profile, targets domain.DerivedTargets) domain.WeeklyPlan {
	p = NormalizeProfile(p)
	c := e.constraintsFor(p)
	tpl := e.kb.MealTemplateFor(c.diet)
	palette := e.kb.PaletteFor(c.diet)

	out := plan.Clone()
	mealSlot, paletteNext := 0, 0
	for _, key := range domain.DayKeys {
		day, ok := out.Days[key]
		if !ok {
			continue
		}
		e.enforceExercises(&day.Workout, c)
		capSessionLength(&day.Workout, p.SessionMinutes)

		day.Nutrition.Meals = forceMealCount(day.Nutrition.Meals, p.MealCount, tpl)
		for i := range day.Nutrition.Meals {
			mealSlot++
			if len(palette) > 0 && mealSlot%3 == 0 {
				entry := palette[paletteNext%len(palette)]
				paletteNext++
				day.Nutrition.Meals[i].Items = append([]domain.MealItem(nil), entry.Items...)
			}
		}
		e.enforceFoods(&day.Nutrition, c)
		day.Recovery.Supplements = filterSupplements(day.Recovery.Supplements, c)

		day.Nutrition.TotalKcal = e.reconcile(day.Nutrition.TotalKcal, targets.EnergyKcal)
		day.Nutrition.ProteinG = e.reconcile(day.Nutrition.ProteinG, targets.ProteinG)
		day.Nutrition.HydrationL = targets.HydrationL
		out.Days[key] = day
	}
	return out
}

func (e *Enforcer) enforceExercises(w *domain.Workout, c constraints) {
	focus := knowledge.FocusFullBody
	if len(w.Focus) > 0 {
		focus = w.Focus[0]
	}
	used := map[string]bool{}
	for _, b := range w.Blocks {
		for _, it := range b.Items {
			used[strings.ToLower(it.Exercise)] = true
		}
	}
	for bi := range w.Blocks {
		items := w.Blocks[bi].Items
		for ii := range items {
			it := &items[ii]
			if !c.Allowed(it.Exercise) {
				it.Exercise = c.substitute(it.Exercise, focus, used)
				used[strings.ToLower(it.Exercise)] = true
			}
			if len(it.Substitutions) > 0 {
				kept := it.Substitutions[:0]
				for _, s := range it.Substitutions {
					if c.Allowed(s) {
						kept = append(kept, s)
					}
				}
				it.Substitutions = kept
			}
		}
	}
}

// estimateMinutes is a rough session length from set counts.
func estimateMinutes(w domain.Workout) float64 {
	total := 0.0
	for _, b := range w.Blocks {
		per := extraSetMinutes
		if isMainBlock(b.Name) {
			per = mainSetMinutes
		}
		for _, it := range b.Items {
			total += float64(it.Sets) * per
		}
	}
	return total
}

// capSessionLength removes sets, one at a time from the item with the most sets, until the
// estimate fits the cap. Items are never removed and keep at least one set.
func capSessionLength(w *domain.Workout, capMinutes int) {
	if capMinutes <= 0 {
		return
	}
	for estimateMinutes(*w) > float64(capMinutes) {
		bi, ii, most := -1, -1, 1
		for b := range w.Blocks {
			for i, it := range w.Blocks[b].Items {
				if it.Sets > most {
					bi, ii, most = b, i, it.Sets
				}
			}
		}
		if bi < 0 {
			return
		}
		w.Blocks[bi].Items[ii].Sets--
	}
}

// forceMealCount pads with template meals or merges surplus meals into the last kept one.
func forceMealCount(meals []domain.Meal, count int, tpl knowledge.MealTemplates) []domain.Meal {
	if count <= 0 {
		return meals
	}
	if len(meals) > count {
		last := &meals[count-1]
		for _, extra := range meals[count:] {
			last.Items = append(last.Items, extra.Items...)
		}
		return meals[:count]
	}
	names := mealNames(count)
	for i := len(meals); i < count; i++ {
		m := templateMeal(names[i], tpl)
		if len(m.Items) == 0 {
			m.Items = []domain.MealItem{genericMealItem}
		}
		meals = append(meals, m)
	}
	return meals
}

func (e *Enforcer) enforceFoods(n *domain.Nutrition, c constraints) {
	placeholders := e.kb.PlaceholderFoods(c.diet)
	rules := e.kb.FoodRulesFor(c.diet)
	for mi := range n.Meals {
		items := n.Meals[mi].Items
		for ii := range items {
			it := &items[ii]
			if food, ok := resolvePlaceholder(it.Food, placeholders); ok {
				it.Food = food
			}
			it.Food = swapForbidden(it.Food, rules, c.matcher)
		}
	}
}

// resolvePlaceholder maps generic names like "lean protein" to a concrete food. Single-word
// placeholders must match exactly; longer ones may appear inside the name.
func resolvePlaceholder(food string, placeholders map[string]string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(food))
	if v, ok := placeholders[name]; ok {
		return v, true
	}
	best := ""
	for phrase := range placeholders {
		if strings.Contains(phrase, " ") && strings.Contains(name, phrase) && len(phrase) > len(best) {
			best = phrase
		}
	}
	if best == "" {
		return "", false
	}
	return placeholders[best], true
}

func swapForbidden(food string, rules []knowledge.FoodRule, m Matcher) string {
	for _, rule := range rules {
		if !ruleHit(m, food, rule) || len(rule.Swaps) == 0 {
			continue
		}
		start := stableIndex(strings.ToLower(food), len(rule.Swaps))
		for i := 0; i < len(rule.Swaps); i++ {
			cand := rule.Swaps[(start+i)%len(rule.Swaps)]
			if !forbidden(cand, rules, m) {
				return cand
			}
		}
	}
	return food
}

func forbidden(food string, rules []knowledge.FoodRule, m Matcher) bool {
	for _, rule := range rules {
		if ruleHit(m, food, rule) {
			return true
		}
	}
	return false
}

func ruleHit(m Matcher, food string, rule knowledge.FoodRule) bool {
	text := strings.ToLower(food)
	for _, ex := range rule.Except {
		if ex = strings.ToLower(strings.TrimSpace(ex)); ex != "" {
			text = strings.ReplaceAll(text, ex, " ")
		}
	}
	_, hit := matchAny(m, text, rule.Tokens)
	return hit
}

func filterSupplements(list []string, c constraints) []string {
	if len(list) == 0 {
		return list
	}
	rules := c.kb.FoodRulesFor(c.diet)
	out := make([]string, 0, len(list))
	for _, s := range list {
		if !forbidden(s, rules, c.matcher) {
			out = append(out, s)
		}
	}
	return out
}

// reconcile applies the macro policy to one daily total.
func (e *Enforcer) reconcile(value, target int) int {
	if e.policy != MacroTolerance || value <= 0 {
		return target
	}
	band := e.tolerance * float64(target)
	lo, hi := float64(target)-band, float64(target)+band
	v := math.Max(lo, math.Min(hi, float64(value)))
	return int(math.Round(v))
}
