package cli

import (
	"alcyxob/fitness-planner/internal/api"
	"alcyxob/fitness-planner/internal/config"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development JWT signed with the configured secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is not configured")
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWT.Expiration
		}
		token, err := api.IssueToken(cfg.JWT.Secret, tokenUser, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID for the uid claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to jwt.expiration)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
