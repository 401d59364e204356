package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/domain"
)

func issueTokenCmd() *cobra.Command {
	var (
		userID string
		name   string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a development JWT signed with AUTH_JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET is not set")
			}
			switch domain.Role(role) {
			case domain.RoleAdmin, domain.RoleStaff, domain.RoleCustomer:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
			token, expiresAt, err := tokens.GenerateToken(domain.User{
				ID:   domain.ID(userID),
				Name: name,
				Role: domain.Role(role),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Token     string    `json:"token"`
				ExpiresAt time.Time `json:"expires_at"`
			}{token, expiresAt})
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "1", "user id placed in the token")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name placed in the token")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "role: admin, agent or user")
	return cmd
}
