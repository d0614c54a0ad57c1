package planner

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/knowledge"
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed plan_prompt.md
var planPrompt string

var promptTemplate = template.Must(template.New("plan").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(planPrompt))

type promptData struct {
	Profile       domain.Profile
	Targets       domain.DerivedTargets
	Schedule      []domain.DaySlot
	Tier          knowledge.EquipmentTier
	Diet          knowledge.DietTier
	RepetitionCap int
}

// BuildPrompt renders the generation instruction for a normalized profile.
func BuildPrompt(p domain.Profile, targets domain.DerivedTargets, schedule []domain.DaySlot, repetitionCap int) (string, error) {
	if repetitionCap <= 0 {
		repetitionCap = DefaultRepetitionCap
	}
	data := promptData{
		Profile:       p,
		Targets:       targets,
		Schedule:      schedule,
		Tier:          knowledge.TierFor(p.Equipment),
		Diet:          knowledge.DietTierFor(p.DietaryPreferences),
		RepetitionCap: repetitionCap,
	}
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
