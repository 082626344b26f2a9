package cmd

import (
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the configured Confluence credentials",
	}
	cmd.AddCommand(authCheckCmd())
	return cmd
}

// authCheckCmd verifies that the resolved credentials are accepted by the API.
func authCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the credentials against the Confluence API",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newAuthService()
			creds, err := svc.Resolve(currentConfig())
			if err != nil {
				return err
			}
			log.Info().Str("site", creds.SiteURL).Str("source", creds.Source).Msg("Checking credentials")

			user, err := svc.Verify(cmd.Context(), creds)
			if err != nil {
				return newGate().Handle(err, clierr.Context{EntityType: "site", EntityID: creds.SiteURL, Operation: "verifying credentials for", Source: "cmd.auth"})
			}
			cmd.Printf("Authenticated as %s on %s (credentials from %s).\n",
				displayName(user.DisplayName, user.Email, creds.Email), creds.SiteURL, creds.Source)
			return nil
		},
	}
}
