package cmd

import (
	"strings"

	"github.com/habedi/conflux/auth"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initCmd initializes Conflux for first-time use by saving the site URL and API token in the internal database.
func initCmd() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize Conflux for first-time use",
		Long: "Prompt for the Confluence site URL, account email and API token, check them " +
			"against the API and store them in the local database.",
		Args: exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			cmd.Println("Please enter your Confluence site URL, account email and API token.")

			siteURL, err := p.promptForInput("Site URL (e.g. https://acme.atlassian.net): ")
			if err != nil {
				return err
			}
			email, err := p.promptForInput("Email: ")
			if err != nil {
				return err
			}
			token, err := p.promptForPassword("API token: ")
			if err != nil {
				return err
			}

			creds := auth.Credentials{SiteURL: strings.TrimRight(siteURL, "/"), Email: email, APIToken: token, Source: "prompt"}
			return saveCredentials(cmd, creds, skipVerify)
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "no-verify", false, "Save the credentials without checking them against the API")

	return cmd
}

func saveCredentials(cmd *cobra.Command, creds auth.Credentials, skipVerify bool) error {
	if err := validateCredentials(creds); err != nil {
		return err
	}

	svc := newAuthService()
	if !skipVerify {
		user, err := svc.Verify(cmd.Context(), creds)
		if err != nil {
			return newGate().Handle(err, clierr.Context{EntityType: "site", EntityID: creds.SiteURL, Operation: "verifying credentials for", Source: "cmd.init"})
		}
		cmd.Printf("Authenticated as %s.\n", displayName(user.DisplayName, user.Email, creds.Email))
	}

	if err := svc.Save(creds); err != nil {
		log.Error().Err(err).Msg("Failed to save credentials")
		return clierr.NewUnexpected("Failed to save the credentials: "+err.Error(), err)
	}
	cmd.Println("Credentials saved successfully.")
	return nil
}

// validateCredentials checks the site URL and that the email and token are not empty.
func validateCredentials(creds auth.Credentials) error {
	if err := validation.ValidateSiteURL(creds.SiteURL); err != nil {
		return err
	}
	if err := validation.ValidateNonEmptyString("email", creds.Email); err != nil {
		return err
	}
	return validation.ValidateNonEmptyString("API token", creds.APIToken)
}

func displayName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return "unknown user"
}
