package cli

import (
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/llm"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/service"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	generateProfile string
	generateOffline bool
	generateQuiet   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly plan for a profile file and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		profile, err := loadProfile(generateProfile)
		if err != nil {
			return err
		}

		log := logger.Nop()
		if !generateQuiet {
			if log, err = logger.New(cfg.Log.Mode); err != nil {
				return err
			}
			defer log.Sync()
		}

		var gen llm.TextGenerator
		if !generateOffline {
			gen, err = llm.New(cmd.Context(), cfg.Generation, cfg.Cache, log)
			if err != nil {
				return err
			}
			if c, ok := gen.(llm.Closer); ok {
				defer c.Close()
			}
		}

		kb, err := planner.LoadKnowledge(cfg.Planner.KnowledgeFile)
		if err != nil {
			return err
		}
		opts, err := planner.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}

		res, err := planner.NewPipeline(gen, kb, log, opts).Run(cmd.Context(), profile)
		if err != nil {
			return err
		}
		return writeJSON(cmd, map[string]any{
			"plan":       res.Plan,
			"targets":    res.Targets,
			"schedule":   res.Schedule,
			"provenance": res.Provenance,
		})
	},
}

// loadProfile reads a YAML (or JSON, which is valid YAML) profile and validates it.
func loadProfile(path string) (domain.Profile, error) {
	if path == "" {
		return domain.Profile{}, fmt.Errorf("--profile is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p domain.Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return service.SanitizeProfile(p)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	generateCmd.Flags().StringVar(&generateProfile, "profile", "", "Path to a YAML profile")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Skip the text generator and use the deterministic plan")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "Discard pipeline logs")
	rootCmd.AddCommand(generateCmd)
}
