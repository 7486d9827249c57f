// Package token issues bearer tokens for operators and trusted frontends.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/walletnames/registrar/internal/infrastructure/auth"
	"github.com/walletnames/registrar/internal/infrastructure/config"
	"github.com/walletnames/registrar/internal/shared/authorization"
	"github.com/walletnames/registrar/internal/shared/constants"
)

var (
	env        string
	configPath string
	subject    string
	role       string
	ttl        time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		Long:  `Sign an HS256 access token with the configured JWT secret. The token is printed to stdout.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "User id carried as the token subject (required)")
	cmd.Flags().StringVarP(&role, "role", "r", string(authorization.RoleBuyer), "Role: buyer, operator or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	signed, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer).Generate(subject, r, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
