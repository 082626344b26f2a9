package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/apierr"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// verbose adds status codes and vendor payloads to error output.
var verbose bool

func Execute() {
	rootCmd := createRootCmd()

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if code := run(rootCmd); code != 0 {
		os.Exit(code)
	}
}

// run executes rootCmd, prints any failure and returns the exit code.
func run(rootCmd *cobra.Command) int {
	defer closeDatabase()

	if err := rootCmd.Execute(); err != nil {
		log.Debug().Err(err).Msg("Command execution failed.")
		printError(rootCmd.ErrOrStderr(), err, verbose)
		return 1
	}
	return 0
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "conflux",
		Short:         "A command-line client for Confluence Cloud",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvironment()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show status codes and vendor error payloads on failure")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.NewValidation(err.Error(), err)
	})

	rootCmd.AddCommand(
		initCmd(),
		authCmd(),
		spaceCmd(),
		pageCmd(),
		searchCmd(),
		apiCmd(),
		cacheCmd(),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

// printError writes "Error [kind]: message". With verbose set it also writes
// the status code and the innermost cause, which for API failures is the raw
// response body.
func printError(w io.Writer, err error, verbose bool) {
	e := clierr.Ensure(err)
	fmt.Fprintf(w, "Error [%s]: %s\n", e.Kind, e.Message)
	if !verbose {
		return
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(w, "Status: %d\n", e.StatusCode)
	}
	switch cause := clierr.UnwrapDeepCause(e).(type) {
	case nil:
	case *apierr.APIError:
		if cause.Raw != "" {
			fmt.Fprintf(w, "Response: %s\n", cause.Raw)
		} else {
			fmt.Fprintf(w, "Cause: %v\n", cause)
		}
	default:
		fmt.Fprintf(w, "Cause: %v\n", cause)
	}
}

func initializeDatabase() error {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		return clierr.NewUnexpected("Failed to open the local database at "+db.Path+": "+err.Error(), err)
	}
	return nil
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
	}
}
