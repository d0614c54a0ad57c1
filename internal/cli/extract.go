package cli

import (
	"alcyxob/fitness-planner/internal/planner"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var extractIn string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and validate a plan from raw generator output",
	Long:  "extract reads raw text (a file, or stdin with --in -), recovers the plan document and prints the validation report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, extractIn)
		if err != nil {
			return err
		}
		doc, err := planner.Extract(string(raw))
		if err != nil {
			return err
		}
		partial := planner.DecodePlan(doc)
		report := planner.Validate(partial)
		return writeJSON(cmd, map[string]any{
			"outcome":    planner.Assess(partial, report).String(),
			"violations": report.Violations,
		})
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, fmt.Errorf("--in is required")
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func init() {
	extractCmd.Flags().StringVar(&extractIn, "in", "", "File with raw generator output, or - for stdin")
	rootCmd.AddCommand(extractCmd)
}
