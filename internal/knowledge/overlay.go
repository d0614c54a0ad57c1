package knowledge

import (
	"alcyxob/fitness-planner/internal/domain"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyOverlay = errors.New("knowledge overlay is empty")

// LoadOverlay reads a YAML file and merges it over base. Non-empty entries in the file replace the
// matching entries in base; everything else is kept. base is not modified.
func LoadOverlay(path string, base *Static) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge overlay %s: %w", path, err)
	}
	return ParseOverlay(raw, base)
}

// ParseOverlay merges YAML bytes over base.
func ParseOverlay(raw []byte, base *Static) (*Static, error) {
	var overlay Static
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse knowledge overlay: %w", err)
	}
	if overlay.isZero() {
		return nil, ErrEmptyOverlay
	}
	if base == nil {
		base = Default()
	}
	return merge(base, &overlay), nil
}

func (s *Static) isZero() bool {
	return len(s.Exercises) == 0 && len(s.Warmups) == 0 && len(s.Cooldowns) == 0 &&
		len(s.Meals) == 0 && len(s.Palettes) == 0 && len(s.Replacements) == 0 &&
		len(s.Recovery) == 0 && len(s.FoodRules) == 0 && len(s.Placeholders) == 0 && len(s.Equipment) == 0
}

func merge(base, over *Static) *Static {
	out := &Static{
		Exercises:    make(map[string]map[EquipmentTier][]string, len(base.Exercises)),
		Warmups:      mergeLists(base.Warmups, over.Warmups),
		Cooldowns:    mergeLists(base.Cooldowns, over.Cooldowns),
		Meals:        make(map[DietTier]MealTemplates, len(base.Meals)),
		Palettes:     make(map[DietTier][]domain.Meal, len(base.Palettes)),
		Replacements: mergeLists(base.Replacements, over.Replacements),
		Recovery:     make(map[string][]RecoveryTemplate, len(base.Recovery)),
		FoodRules:    make(map[DietTier][]FoodRule, len(base.FoodRules)),
		Placeholders: make(map[string]map[DietTier]string, len(base.Placeholders)),
		Equipment:    make(map[EquipmentTier][]string, len(base.Equipment)),
	}

	for focus, byTier := range base.Exercises {
		out.Exercises[focus] = make(map[EquipmentTier][]string, len(byTier))
		for tier, list := range byTier {
			out.Exercises[focus][tier] = list
		}
	}
	for focus, byTier := range over.Exercises {
		canon := CanonicalFocus(focus)
		if out.Exercises[canon] == nil {
			out.Exercises[canon] = make(map[EquipmentTier][]string)
		}
		for tier, list := range byTier {
			if len(list) > 0 {
				out.Exercises[canon][tier] = list
			}
		}
	}

	for diet, m := range base.Meals {
		out.Meals[diet] = m
	}
	for diet, m := range over.Meals {
		if !m.Empty() {
			out.Meals[diet] = m
		}
	}

	for diet, p := range base.Palettes {
		out.Palettes[diet] = p
	}
	for diet, p := range over.Palettes {
		if len(p) > 0 {
			out.Palettes[diet] = p
		}
	}

	for k, v := range base.Recovery {
		out.Recovery[k] = v
	}
	for k, v := range over.Recovery {
		if len(v) > 0 {
			out.Recovery[k] = v
		}
	}

	for diet, rules := range base.FoodRules {
		out.FoodRules[diet] = rules
	}
	for diet, rules := range over.FoodRules {
		if len(rules) > 0 {
			out.FoodRules[diet] = rules
		}
	}

	for phrase, byDiet := range base.Placeholders {
		out.Placeholders[phrase] = byDiet
	}
	for phrase, byDiet := range over.Placeholders {
		if len(byDiet) > 0 {
			out.Placeholders[phrase] = byDiet
		}
	}

	for tier, tokens := range base.Equipment {
		out.Equipment[tier] = tokens
	}
	for tier, tokens := range over.Equipment {
		out.Equipment[tier] = tokens
	}
	return out
}

func mergeLists(base, over map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if len(v) > 0 {
			out[k] = v
		}
	}
	return out
}
