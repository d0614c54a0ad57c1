package knowledge

import (
	"strings"
	"testing"
)

var allFocuses = []string{FocusFullBody, FocusUpper, FocusLower, FocusPush, FocusPull, FocusLegs, FocusConditioning, FocusRecovery}

func TestDefaultExercisesRespectTier(t *testing.T) {
	kb := Default()
	for _, tier := range []EquipmentTier{TierBodyweight, TierHome, TierGym} {
		banned := kb.UnavailableEquipment(tier)
		for _, focus := range allFocuses {
			list := kb.ExercisesFor(focus, tier)
			if len(list) < 6 {
				t.Errorf("%s/%s: expected at least 6 exercises, got %d", focus, tier, len(list))
			}
			for _, name := range list {
				lower := strings.ToLower(name)
				for _, tok := range banned {
					if strings.Contains(lower, tok) {
						t.Errorf("%s/%s: %q uses unavailable equipment %q", focus, tier, name, tok)
					}
				}
			}
		}
	}
}

func TestDefaultMealsRespectDiet(t *testing.T) {
	kb := Default()
	for _, diet := range []DietTier{DietOmnivore, DietEggitarian, DietVegetarian} {
		tpl := kb.MealTemplateFor(diet)
		if tpl.Empty() {
			t.Fatalf("%s: empty meal templates", diet)
		}
		var foods []string
		for _, m := range append(kb.PaletteFor(diet), append(tpl.Snacks, tpl.Breakfast, tpl.Lunch, tpl.Dinner)...) {
			for _, it := range m.Items {
				if it.Food == "" || it.Qty == "" {
					t.Errorf("%s: meal %q has item without food or qty: %+v", diet, m.Name, it)
				}
				foods = append(foods, it.Food)
			}
		}
		for _, rule := range kb.FoodRulesFor(diet) {
			foods = append(foods, rule.Swaps...)
		}
		for _, rule := range kb.FoodRulesFor(diet) {
			for _, food := range foods {
				for _, tok := range rule.Tokens {
					if strings.Contains(strings.ToLower(food), tok) {
						t.Errorf("%s: %q matches forbidden %s token %q", diet, food, rule.Category, tok)
					}
				}
			}
		}
	}
}

func TestCanonicalFocus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Push", FocusPush},
		{"  chest ", FocusPush},
		{"upper-body", FocusUpper},
		{"Lower Body Strength", FocusLower},
		{"active_recovery", FocusRecovery},
		{"HIIT", FocusConditioning},
		{"something odd", FocusFullBody},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CanonicalFocus(tt.in); got != tt.want {
				t.Errorf("CanonicalFocus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	if got := TierFor(nil); got != TierBodyweight {
		t.Errorf("empty equipment: got %s", got)
	}
	if got := TierFor([]string{"Dumbbells", "yoga mat"}); got != TierHome {
		t.Errorf("dumbbells: got %s", got)
	}
	if got := TierFor([]string{"resistance bands", "Full Gym"}); got != TierGym {
		t.Errorf("gym: got %s", got)
	}
}

func TestUnavailableFor(t *testing.T) {
	kb := Default()
	tests := []struct {
		name      string
		equipment []string
		banned    []string
		allowed   []string
	}{
		{"nothing", nil, []string{"dumbbell", "kettlebell", "band", "barbell"}, nil},
		{"bands only", []string{"resistance bands"}, []string{"dumbbell", "kettlebell", "barbell", "cable"}, []string{"band"}},
		{"dumbbells only", []string{"Dumbbells"}, []string{"kettlebell", "band", "barbell"}, []string{"dumbbell"}},
		{"generic home", []string{"home equipment"}, []string{"barbell", "cable"}, []string{"dumbbell", "kettlebell", "band"}},
		{"barbell and rack", []string{"barbell", "squat rack"}, []string{"dumbbell", "cable", "machine"}, []string{"barbell"}},
		{"full gym", []string{"Full Gym"}, nil, []string{"dumbbell", "barbell", "cable", "machine"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnavailableFor(kb, tt.equipment)
			has := map[string]bool{}
			for _, token := range got {
				has[token] = true
			}
			for _, token := range tt.banned {
				if !has[token] {
					t.Errorf("%q should be unavailable, got %v", token, got)
				}
			}
			for _, token := range tt.allowed {
				if has[token] {
					t.Errorf("%q should be available, got %v", token, got)
				}
			}
		})
	}
}

func TestDietTierFor(t *testing.T) {
	tests := map[string]DietTier{
		"":           DietOmnivore,
		"vegetarian": DietVegetarian,
		"Vegan":      DietVegetarian,
		"eggitarian": DietEggitarian,
		"keto":       DietOmnivore,
	}
	for in, want := range tests {
		if got := DietTierFor([]string{in}); got != want {
			t.Errorf("DietTierFor(%q) = %s, want %s", in, got, want)
		}
	}
	if got := DietTierFor([]string{"eggitarian", "vegetarian"}); got != DietVegetarian {
		t.Errorf("most restrictive should win, got %s", got)
	}
}

func TestReplacementsPreferLongestKey(t *testing.T) {
	kb := Default()
	got := kb.ReplacementsFor("Barbell Bench Press (heavy)")
	if len(got) == 0 || got[0] != "Dumbbell Bench Press" {
		t.Fatalf("unexpected replacements: %v", got)
	}
	if got := kb.ReplacementsFor("Plank"); got != nil {
		t.Fatalf("expected no replacements, got %v", got)
	}
}

func TestParseOverlay(t *testing.T) {
	raw := []byte(`
exercises:
  push:
    gym: ["Landmine Press", "Cable Fly"]
palettes:
  vegetarian:
    - name: Dal bowl
      items:
        - food: Moong dal
          qty: 250g
`)
	kb, err := ParseOverlay(raw, Default())
	if err != nil {
		t.Fatalf("ParseOverlay: %v", err)
	}
	if got := kb.ExercisesFor(FocusPush, TierGym); len(got) != 2 || got[0] != "Landmine Press" {
		t.Errorf("overlay exercises not applied: %v", got)
	}
	if got := kb.ExercisesFor(FocusPush, TierHome); len(got) == 0 {
		t.Errorf("home tier should be kept from base")
	}
	if got := kb.PaletteFor(DietVegetarian); len(got) != 1 || got[0].Items[0].Food != "Moong dal" {
		t.Errorf("overlay palette not applied: %+v", got)
	}
	if got := kb.PaletteFor(DietOmnivore); len(got) != 3 {
		t.Errorf("omnivore palette should be kept, got %d", len(got))
	}

	if _, err := ParseOverlay([]byte("{}"), nil); err != ErrEmptyOverlay {
		t.Errorf("expected ErrEmptyOverlay, got %v", err)
	}
}
