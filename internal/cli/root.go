// Package cli implements planctl, the operator tool for the plan pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "planctl",
	Short:         "planctl generates and inspects weekly training and nutrition plans",
	Long:          "planctl runs the plan pipeline locally, checks raw generator output and mints development tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing config.yaml")
}
