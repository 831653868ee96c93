package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token",
	Long:  "Issue a signed API token for the configured server.jwt_secret. The token is printed on stdout.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Who the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime, e.g. 12h (default: server.token_ttl)")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	serverCfg := rt.cfg.Server
	if tokenTTL > 0 {
		serverCfg.TokenTTL = tokenTTL
	}
	jwtConfig, err := serverCfg.JWT()
	if err != nil {
		return err
	}
	if jwtConfig == nil {
		return fmt.Errorf("server.jwt_secret is not configured (set JWT_SECRET)")
	}

	token, err := server.NewTokenService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
