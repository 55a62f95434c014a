package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/chll-hr/leave-backend/internal/config"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

// newTokenCommand mints access tokens for local development. Production
// tokens come from the identity provider.
func newTokenCommand() *cobra.Command {
	var employeeID, email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for an employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.App.Env == "production" {
				return errors.New("token minting is disabled in production")
			}

			svc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
			if err != nil {
				return err
			}
			token, expiresAt, err := svc.GenerateAccessToken(employeeID, email)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.ErrOrStderr(), "expires", time.Unix(expiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID to put in the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
