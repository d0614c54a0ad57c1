package planner

import (
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/knowledge"
	"fmt"
)

// OptionsFromConfig maps the planner and generation sections of the configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	policy, err := ParseMacroPolicy(cfg.Planner.MacroPolicy)
	if err != nil {
		return Options{}, fmt.Errorf("planner options: %w", err)
	}
	return Options{
		AdapterTimeout: cfg.Generation.Timeout,
		RepetitionCap:  cfg.Planner.RepetitionCap,
		MacroPolicy:    policy,
		MacroTolerance: cfg.Planner.MacroTolerance,
		Model:          cfg.Generation.Model,
	}, nil
}

// LoadKnowledge returns the built-in tables, merged with the YAML overlay at path when set.
func LoadKnowledge(path string) (knowledge.Base, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	return knowledge.LoadOverlay(path, knowledge.Default())
}
