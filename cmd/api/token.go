package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geocoder89/meetuphub/internal/auth"
	"github.com/geocoder89/meetuphub/internal/config"
)

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var sub, email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the write routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			mgr := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
			tok, err := mgr.GenerateAccessToken(sub, email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "", "subject (user id) of the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
