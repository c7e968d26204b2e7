package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/codelearn/internal/auth"
	"github.com/p-n-ai/codelearn/internal/platform/config"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token for a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ttl := time.Duration(cfg.Auth.AccessTokenTTL) * time.Minute
			if d, _ := cmd.Flags().GetDuration("ttl"); d > 0 {
				ttl = d
			}

			issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, ttl)
			if err != nil {
				return err
			}
			token, err := issuer.Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to LEARN_AUTH_ACCESS_TOKEN_TTL minutes)")
	return cmd
}
