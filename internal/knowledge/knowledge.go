// Package knowledge holds the static exercise and food tables the planner reads.
// Pipeline code only talks to the Base interface, so tables can be swapped or
// extended (see LoadOverlay) without touching it.
package knowledge

import (
	"alcyxob/fitness-planner/internal/domain"
	"sort"
	"strings"
)

// EquipmentTier groups equipment sets into the three table columns.
type EquipmentTier string

const (
	TierBodyweight EquipmentTier = "bodyweight"
	TierHome       EquipmentTier = "home"
	TierGym        EquipmentTier = "gym"
)

// DietTier selects meal templates and the forbidden food token set.
type DietTier string

const (
	DietOmnivore   DietTier = "omnivore"
	DietEggitarian DietTier = "eggitarian"
	DietVegetarian DietTier = "vegetarian"
)

// Canonical focus labels.
const (
	FocusFullBody     = "Full Body"
	FocusUpper        = "Upper"
	FocusLower        = "Lower"
	FocusPush         = "Push"
	FocusPull         = "Pull"
	FocusLegs         = "Legs"
	FocusConditioning = "Conditioning"
	FocusRecovery     = "Recovery"
)

// MealTemplates is the per-diet base day.
type MealTemplates struct {
	Breakfast domain.Meal   `yaml:"breakfast"`
	Lunch     domain.Meal   `yaml:"lunch"`
	Dinner    domain.Meal   `yaml:"dinner"`
	Snacks    []domain.Meal `yaml:"snacks"`
}

// Empty reports whether no main meal template carries any item.
func (m MealTemplates) Empty() bool {
	return len(m.Breakfast.Items) == 0 && len(m.Lunch.Items) == 0 && len(m.Dinner.Items) == 0
}

// FoodRule forbids a category of foods for a diet and lists diet-safe swaps. Except lists
// words that contain a token without being one ("eggplant" for "egg"); they are masked out
// of a name before matching.
type FoodRule struct {
	Category string   `yaml:"category"`
	Tokens   []string `yaml:"tokens"`
	Except   []string `yaml:"except"`
	Swaps    []string `yaml:"swaps"`
}

// RecoveryTemplate is one deterministic recovery text set.
type RecoveryTemplate struct {
	Mobility  []string `yaml:"mobility"`
	Sleep     []string `yaml:"sleep"`
	CareNotes []string `yaml:"careNotes"`
}

// Base is the read-only lookup surface used by the planner.
type Base interface {
	ExercisesFor(focus string, tier EquipmentTier) []string
	MealTemplateFor(diet DietTier) MealTemplates
	PaletteFor(diet DietTier) []domain.Meal
	WarmupFor(focus string) []string
	CooldownFor(focus string) []string
	ReplacementsFor(exercise string) []string
	RecoveryFor(focus string) []RecoveryTemplate
	FoodRulesFor(diet DietTier) []FoodRule
	PlaceholderFoods(diet DietTier) map[string]string
	UnavailableEquipment(tier EquipmentTier) []string
}

// Static is the table-backed Base implementation.
type Static struct {
	Exercises    map[string]map[EquipmentTier][]string `yaml:"exercises"`
	Warmups      map[string][]string                   `yaml:"warmups"`
	Cooldowns    map[string][]string                   `yaml:"cooldowns"`
	Meals        map[DietTier]MealTemplates            `yaml:"meals"`
	Palettes     map[DietTier][]domain.Meal            `yaml:"palettes"`
	Replacements map[string][]string                   `yaml:"replacements"`
	Recovery     map[string][]RecoveryTemplate         `yaml:"recovery"`
	FoodRules    map[DietTier][]FoodRule               `yaml:"foodRules"`
	Placeholders map[string]map[DietTier]string        `yaml:"placeholders"`
	Equipment    map[EquipmentTier][]string            `yaml:"unavailableEquipment"`
}

var _ Base = (*Static)(nil)

func (s *Static) ExercisesFor(focus string, tier EquipmentTier) []string {
	byTier, ok := s.Exercises[CanonicalFocus(focus)]
	if !ok {
		return nil
	}
	return append([]string(nil), byTier[tier]...)
}

func (s *Static) MealTemplateFor(diet DietTier) MealTemplates {
	return s.Meals[diet]
}

func (s *Static) PaletteFor(diet DietTier) []domain.Meal {
	return append([]domain.Meal(nil), s.Palettes[diet]...)
}

func (s *Static) WarmupFor(focus string) []string {
	return append([]string(nil), s.Warmups[CanonicalFocus(focus)]...)
}

func (s *Static) CooldownFor(focus string) []string {
	return append([]string(nil), s.Cooldowns[CanonicalFocus(focus)]...)
}

// ReplacementsFor returns curated replacements for the first table key contained in the
// exercise name. Keys are tried longest first so "barbell bench press" wins over "bench press".
func (s *Static) ReplacementsFor(exercise string) []string {
	name := strings.ToLower(exercise)
	keys := make([]string, 0, len(s.Replacements))
	for k := range s.Replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(name, k) {
			return append([]string(nil), s.Replacements[k]...)
		}
	}
	return nil
}

func (s *Static) RecoveryFor(focus string) []RecoveryTemplate {
	return s.Recovery[recoveryGroup(CanonicalFocus(focus))]
}

func (s *Static) FoodRulesFor(diet DietTier) []FoodRule {
	return s.FoodRules[diet]
}

func (s *Static) PlaceholderFoods(diet DietTier) map[string]string {
	out := make(map[string]string, len(s.Placeholders))
	for phrase, byDiet := range s.Placeholders {
		if food, ok := byDiet[diet]; ok {
			out[phrase] = food
		}
	}
	return out
}

func (s *Static) UnavailableEquipment(tier EquipmentTier) []string {
	return append([]string(nil), s.Equipment[tier]...)
}

var focusAliases = map[string]string{
	"full body":       FocusFullBody,
	"fullbody":        FocusFullBody,
	"total body":      FocusFullBody,
	"upper":           FocusUpper,
	"upper body":      FocusUpper,
	"lower":           FocusLower,
	"lower body":      FocusLower,
	"push":            FocusPush,
	"chest":           FocusPush,
	"shoulders":       FocusPush,
	"triceps":         FocusPush,
	"pull":            FocusPull,
	"back":            FocusPull,
	"biceps":          FocusPull,
	"legs":            FocusLegs,
	"leg":             FocusLegs,
	"glutes":          FocusLegs,
	"quads":           FocusLegs,
	"hamstrings":      FocusLegs,
	"conditioning":    FocusConditioning,
	"cardio":          FocusConditioning,
	"hiit":            FocusConditioning,
	"endurance":       FocusConditioning,
	"recovery":        FocusRecovery,
	"rest":            FocusRecovery,
	"active recovery": FocusRecovery,
	"mobility":        FocusRecovery,
}

// CanonicalFocus maps a free-form focus label onto a table focus. Unknown labels map to Full Body.
func CanonicalFocus(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.ReplaceAll(key, "-", " ")
	key = strings.ReplaceAll(key, "_", " ")
	if f, ok := focusAliases[key]; ok {
		return f
	}
	for _, alias := range sortedAliases {
		if len(alias) > 3 && strings.Contains(key, alias) {
			return focusAliases[alias]
		}
	}
	return FocusFullBody
}

// sortedAliases orders aliases longest first so fuzzy matching is deterministic.
var sortedAliases = func() []string {
	out := make([]string, 0, len(focusAliases))
	for k := range focusAliases {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

func recoveryGroup(focus string) string {
	switch focus {
	case FocusPush, FocusPull, FocusUpper:
		return "upper"
	case FocusLegs, FocusLower:
		return "lower"
	case FocusRecovery:
		return "rest"
	default:
		return "full"
	}
}

// TierFor infers the equipment tier from a profile's equipment list.
// An empty list is treated as bodyweight only.
func TierFor(equipment []string) EquipmentTier {
	tier := TierBodyweight
	for _, e := range equipment {
		v := strings.ToLower(e)
		switch {
		case strings.Contains(v, "gym"), strings.Contains(v, "barbell"), strings.Contains(v, "machine"), strings.Contains(v, "cable"):
			return TierGym
		case strings.Contains(v, "dumbbell"), strings.Contains(v, "kettlebell"), strings.Contains(v, "band"), strings.Contains(v, "home"):
			tier = TierHome
		}
	}
	return tier
}

// UnavailableFor lists the equipment tokens a profile cannot use. A generic "gym" or "home"
// entry takes the tier's table as is. Otherwise every bodyweight-tier token is banned except the
// ones some listed item names, so "resistance bands" alone does not unlock dumbbells.
func UnavailableFor(kb Base, equipment []string) []string {
	tier := TierFor(equipment)
	if tier == TierBodyweight || listsGeneric(equipment, string(tier)) {
		return kb.UnavailableEquipment(tier)
	}
	var out []string
	for _, token := range kb.UnavailableEquipment(TierBodyweight) {
		if !listsPiece(equipment, token) {
			out = append(out, token)
		}
	}
	return out
}

func listsGeneric(equipment []string, word string) bool {
	for _, e := range equipment {
		if strings.Contains(strings.ToLower(e), word) {
			return true
		}
	}
	return false
}

// listsPiece matches "dumbbell" against "Dumbbells" and "cable" against "cable machine".
func listsPiece(equipment []string, token string) bool {
	for _, e := range equipment {
		if strings.Contains(strings.ToLower(e), token) {
			return true
		}
	}
	return false
}

// DietTierFor reduces a dietary preference set to the most restrictive supported tier.
func DietTierFor(prefs []string) DietTier {
	tier := DietOmnivore
	for _, p := range prefs {
		v := strings.ToLower(strings.TrimSpace(p))
		switch {
		case strings.HasPrefix(v, "veg") && !strings.Contains(v, "egg"), v == "lacto-vegetarian", v == "plant-based":
			return DietVegetarian
		case strings.Contains(v, "egg"), v == "ovo-vegetarian":
			tier = DietEggitarian
		}
	}
	return tier
}
