package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/server"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the REST API",
	Long:  "Sign a JWT for --subject with JWT_SECRET. The token expires after JWT_EXPIRATION_HOURS (default 24).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return executeToken(tokenSubject, cmd.OutOrStdout())
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Name of the client the token is issued to (required)")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func executeToken(subject string, out io.Writer) error {
	cfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(cfg).GenerateToken(subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
