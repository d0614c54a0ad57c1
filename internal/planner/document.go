package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// PartialPlan is an in-flight plan document. Every level is optional: nil pointers, nil slices and
// empty strings mean "missing". Repairs fill fields in; they never remove content except
// unexpected day keys.
type PartialPlan struct {
	HasDays    bool
	Days       map[string]*PartialDay
	Unexpected []string
}

type PartialDay struct {
	Workout   *PartialWorkout
	Nutrition *PartialNutrition
	Recovery  *PartialRecovery
	Reason    string
}

type PartialWorkout struct {
	Focus  []string
	Blocks []PartialBlock
	Notes  string
}

type PartialBlock struct {
	Name  string
	Items []domain.ExerciseItem
}

type PartialNutrition struct {
	TotalKcal  *float64
	ProteinG   *float64
	Meals      []domain.Meal
	HydrationL *float64
}

type PartialRecovery struct {
	Mobility    []string
	Sleep       []string
	CareNotes   []string
	Supplements []string
}

var weekdayKeys = map[string]string{
	"monday":    "day1",
	"tuesday":   "day2",
	"wednesday": "day3",
	"thursday":  "day4",
	"friday":    "day5",
	"saturday":  "day6",
	"sunday":    "day7",
}

// DecodePlan maps an extracted document onto a PartialPlan. It accepts the per-day mapping under
// "days", at the top level, or one level down (e.g. {"plan": {"days": ...}}). Weekday keys are only
// honoured when no ordinal keys are present.
func DecodePlan(doc map[string]any) PartialPlan {
	plan := PartialPlan{Days: map[string]*PartialDay{}}
	days, ok := locateDays(doc)
	if !ok {
		return plan
	}
	plan.HasDays = true

	ordinal := false
	for k := range days {
		if _, ok := canonicalDayKey(k); ok {
			ordinal = true
			break
		}
	}

	keys := sortedKeys(days)
	for _, k := range keys {
		key, ok := canonicalDayKey(k)
		if !ok && !ordinal {
			key, ok = weekdayKeys[strings.ToLower(strings.TrimSpace(k))]
		}
		if !ok {
			plan.Unexpected = append(plan.Unexpected, k)
			continue
		}
		if _, dup := plan.Days[key]; dup {
			plan.Unexpected = append(plan.Unexpected, k)
			continue
		}
		plan.Days[key] = decodeDay(days[k])
	}
	return plan
}

func locateDays(doc map[string]any) (map[string]any, bool) {
	if d, ok := asMap(lookup(doc, "days")); ok {
		return d, true
	}
	if hasDayKeys(doc) {
		return doc, true
	}
	for _, k := range sortedKeys(doc) {
		inner, ok := asMap(doc[k])
		if !ok {
			continue
		}
		if d, ok := asMap(lookup(inner, "days")); ok {
			return d, true
		}
		if hasDayKeys(inner) {
			return inner, true
		}
	}
	return nil, false
}

func hasDayKeys(m map[string]any) bool {
	for k := range m {
		if _, ok := canonicalDayKey(k); ok {
			return true
		}
		if _, ok := weekdayKeys[strings.ToLower(strings.TrimSpace(k))]; ok {
			return true
		}
	}
	return false
}

// canonicalDayKey accepts "day1", "Day 1", "day_1", "DAY-1".
func canonicalDayKey(k string) (string, bool) {
	s := strings.ToLower(k)
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	if len(s) == 4 && strings.HasPrefix(s, "day") && s[3] >= '1' && s[3] <= '7' {
		return s, true
	}
	return "", false
}

func decodeDay(v any) *PartialDay {
	day := &PartialDay{}
	m, ok := asMap(v)
	if !ok {
		return day
	}
	if w, ok := asMap(lookup(m, "workout")); ok {
		day.Workout = decodeWorkout(w)
	}
	if n, ok := asMap(lookup(m, "nutrition")); ok {
		day.Nutrition = decodeNutrition(n)
	}
	if r, ok := asMap(lookup(m, "recovery")); ok {
		day.Recovery = decodeRecovery(r)
	}
	day.Reason = asString(lookup(m, "reason", "rationale"))
	return day
}

func decodeWorkout(m map[string]any) *PartialWorkout {
	w := &PartialWorkout{
		Focus: asStrings(lookup(m, "focus")),
		Notes: asString(lookup(m, "notes")),
	}
	if blocks, ok := lookup(m, "blocks").([]any); ok {
		w.Blocks = make([]PartialBlock, 0, len(blocks))
		for _, b := range blocks {
			bm, ok := asMap(b)
			if !ok {
				continue
			}
			w.Blocks = append(w.Blocks, PartialBlock{
				Name:  asString(lookup(bm, "name", "title")),
				Items: decodeItems(lookup(bm, "items", "exercises")),
			})
		}
	} else if items, ok := lookup(m, "exercises").([]any); ok {
		w.Blocks = []PartialBlock{{Name: "Main", Items: decodeItems(items)}}
	}
	return w
}

func decodeItems(v any) []domain.ExerciseItem {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]domain.ExerciseItem, 0, len(list))
	for _, raw := range list {
		im, ok := asMap(raw)
		if !ok {
			if name := asString(raw); name != "" {
				items = append(items, domain.ExerciseItem{Exercise: name})
			}
			continue
		}
		item := domain.ExerciseItem{
			Exercise:      asString(lookup(im, "exercise", "name")),
			Reps:          asString(lookup(im, "reps")),
			RIR:           asString(lookup(im, "RIR", "rir")),
			RPE:           asString(lookup(im, "RPE", "rpe")),
			Tempo:         asString(lookup(im, "tempo")),
			Rest:          asString(lookup(im, "rest")),
			Load:          asString(lookup(im, "load")),
			Substitutions: asStrings(lookup(im, "substitutions")),
		}
		if sets, ok := asNumber(lookup(im, "sets")); ok && sets > 0 {
			item.Sets = int(math.Round(sets))
		}
		items = append(items, item)
	}
	return items
}

func decodeNutrition(m map[string]any) *PartialNutrition {
	n := &PartialNutrition{}
	if v, ok := asNumber(lookup(m, "total_kcal", "totalKcal", "kcal", "calories")); ok {
		n.TotalKcal = &v
	}
	if v, ok := asNumber(lookup(m, "protein_g", "proteinG", "protein")); ok {
		n.ProteinG = &v
	}
	if v, ok := asNumber(lookup(m, "hydration_l", "hydrationL", "water_l")); ok {
		n.HydrationL = &v
	}
	meals, ok := lookup(m, "meals").([]any)
	if !ok {
		return n
	}
	n.Meals = make([]domain.Meal, 0, len(meals))
	for _, raw := range meals {
		mm, ok := asMap(raw)
		if !ok {
			continue
		}
		meal := domain.Meal{Name: asString(lookup(mm, "name", "meal"))}
		if items, ok := lookup(mm, "items", "foods").([]any); ok {
			for _, ri := range items {
				meal.Items = append(meal.Items, decodeMealItem(ri))
			}
		}
		n.Meals = append(n.Meals, meal)
	}
	return n
}

func decodeMealItem(v any) domain.MealItem {
	im, ok := asMap(v)
	if !ok {
		return domain.MealItem{Food: asString(v)}
	}
	item := domain.MealItem{
		Food: asString(lookup(im, "food", "name", "item")),
		Qty:  asString(lookup(im, "qty", "quantity", "amount")),
	}
	if mm, ok := asMap(lookup(im, "macros")); ok {
		macros := &domain.Macros{}
		macros.Kcal, _ = asNumber(lookup(mm, "kcal", "calories"))
		macros.ProteinG, _ = asNumber(lookup(mm, "protein_g", "protein"))
		macros.CarbsG, _ = asNumber(lookup(mm, "carbs_g", "carbs"))
		macros.FatG, _ = asNumber(lookup(mm, "fat_g", "fat"))
		item.Macros = macros
	}
	return item
}

func decodeRecovery(m map[string]any) *PartialRecovery {
	r := &PartialRecovery{
		Mobility:    asStrings(lookup(m, "mobility")),
		Sleep:       asStrings(lookup(m, "sleep")),
		CareNotes:   asStrings(lookup(m, "careNotes", "care_notes")),
		Supplements: asStrings(lookup(m, "supplements")),
	}
	r.CareNotes = append(r.CareNotes, asStrings(lookup(m, "stress"))...)
	return r
}

// FromWeeklyPlan lifts a complete plan into the partial tree.
func FromWeeklyPlan(p domain.WeeklyPlan) PartialPlan {
	plan := PartialPlan{HasDays: true, Days: make(map[string]*PartialDay, len(p.Days))}
	for _, k := range sortedKeys(p.Days) {
		d := p.Days[k].Clone()
		kcal, protein, water := float64(d.Nutrition.TotalKcal), float64(d.Nutrition.ProteinG), d.Nutrition.HydrationL
		blocks := make([]PartialBlock, len(d.Workout.Blocks))
		for i, b := range d.Workout.Blocks {
			blocks[i] = PartialBlock{Name: b.Name, Items: b.Items}
		}
		pd := &PartialDay{
			Workout:   &PartialWorkout{Focus: d.Workout.Focus, Blocks: blocks, Notes: d.Workout.Notes},
			Nutrition: &PartialNutrition{TotalKcal: &kcal, ProteinG: &protein, Meals: d.Nutrition.Meals, HydrationL: &water},
			Recovery:  &PartialRecovery{Mobility: d.Recovery.Mobility, Sleep: d.Recovery.Sleep, CareNotes: d.Recovery.CareNotes, Supplements: d.Recovery.Supplements},
			Reason:    d.Reason,
		}
		if _, ok := canonicalDayKey(k); ok {
			plan.Days[k] = pd
		} else {
			plan.Unexpected = append(plan.Unexpected, k)
		}
	}
	return plan
}

// ToWeeklyPlan converts a plan that passed validation. Missing parts come out as zero values.
func (p PartialPlan) ToWeeklyPlan() domain.WeeklyPlan {
	out := domain.WeeklyPlan{Days: make(map[string]domain.DayPlan, len(domain.DayKeys))}
	for _, key := range domain.DayKeys {
		pd, ok := p.Days[key]
		if !ok || pd == nil {
			continue
		}
		var day domain.DayPlan
		if w := pd.Workout; w != nil {
			day.Workout.Focus = append([]string(nil), w.Focus...)
			day.Workout.Notes = w.Notes
			for _, b := range w.Blocks {
				day.Workout.Blocks = append(day.Workout.Blocks, domain.Block{Name: b.Name, Items: b.Items})
			}
		}
		if n := pd.Nutrition; n != nil {
			if n.TotalKcal != nil {
				day.Nutrition.TotalKcal = int(math.Round(*n.TotalKcal))
			}
			if n.ProteinG != nil {
				day.Nutrition.ProteinG = int(math.Round(*n.ProteinG))
			}
			if n.HydrationL != nil {
				day.Nutrition.HydrationL = *n.HydrationL
			}
			day.Nutrition.Meals = n.Meals
		}
		if r := pd.Recovery; r != nil {
			day.Recovery = domain.Recovery{Mobility: r.Mobility, Sleep: r.Sleep, CareNotes: r.CareNotes, Supplements: r.Supplements}
		}
		day.Reason = pd.Reason
		out.Days[key] = day.Clone()
	}
	return out
}

// Clone deep-copies the partial tree.
func (p PartialPlan) Clone() PartialPlan {
	out := PartialPlan{HasDays: p.HasDays, Days: make(map[string]*PartialDay, len(p.Days))}
	out.Unexpected = append([]string(nil), p.Unexpected...)
	for k, d := range p.Days {
		if d == nil {
			out.Days[k] = nil
			continue
		}
		nd := &PartialDay{Reason: d.Reason}
		if w := d.Workout; w != nil {
			nw := &PartialWorkout{Focus: append([]string(nil), w.Focus...), Notes: w.Notes}
			for _, b := range w.Blocks {
				nw.Blocks = append(nw.Blocks, PartialBlock{Name: b.Name, Items: append([]domain.ExerciseItem(nil), b.Items...)})
			}
			nd.Workout = nw
		}
		if n := d.Nutrition; n != nil {
			nn := &PartialNutrition{
				TotalKcal:  copyFloat(n.TotalKcal),
				ProteinG:   copyFloat(n.ProteinG),
				HydrationL: copyFloat(n.HydrationL),
			}
			for _, m := range n.Meals {
				nn.Meals = append(nn.Meals, domain.Meal{Name: m.Name, Items: append([]domain.MealItem(nil), m.Items...)})
			}
			nd.Nutrition = nn
		}
		if r := d.Recovery; r != nil {
			nd.Recovery = &PartialRecovery{
				Mobility:    append([]string(nil), r.Mobility...),
				Sleep:       append([]string(nil), r.Sleep...),
				CareNotes:   append([]string(nil), r.CareNotes...),
				Supplements: append([]string(nil), r.Supplements...),
			}
		}
		out.Days[k] = nd
	}
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// lookup returns the first present key, trying exact then case-insensitive matches.
func lookup(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	for _, k := range keys {
		for mk, v := range m {
			if strings.EqualFold(mk, k) {
				return v
			}
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// asStrings accepts a list of scalars or a single string.
func asStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// asNumber accepts JSON numbers and numeric strings such as "2100" or "2100 kcal".
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		end := 0
		for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
			end++
		}
		if end == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		return f, err == nil
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

