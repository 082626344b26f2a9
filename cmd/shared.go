package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/habedi/conflux/auth"
	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/config"
	"github.com/habedi/conflux/controller"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// appConfig is loaded once per invocation, before any subcommand runs.
var appConfig *config.Config

// loadEnvironment reads the configuration and opens the local database.
func loadEnvironment() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := db.ConfigurePath(cfg.DBPath); err != nil {
		return clierr.NewValidation(err.Error(), err)
	}
	if err := initializeDatabase(); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func currentConfig() *config.Config {
	if appConfig == nil {
		return &config.Config{DefaultLimit: config.DefaultLimit}
	}
	return appConfig
}

func newGate() *clierr.Gate {
	return clierr.NewGate(clierr.NewClassifier(currentConfig().Classifier))
}

func newAuthService() *auth.Service {
	return auth.NewServiceWithRepo(db.NewCredentialRepository(db.GetDB()), nil)
}

// newController resolves credentials and wires the API client, the error
// gate and the page cache together.
func newController() (*controller.Controller, error) {
	creds, err := newAuthService().Resolve(currentConfig())
	if err != nil {
		return nil, err
	}
	var cache db.PageRepository
	if db.GetDB() != nil {
		cache = db.NewPageRepository(db.GetDB())
	}
	return controller.New(newClient(creds), newGate(), cache, creds.SiteURL), nil
}

// newClient returns an API client throttled to the configured request rate.
func newClient(creds auth.Credentials) *client.Client {
	cfg := currentConfig()
	api := client.New(creds.SiteURL, creds.Email, creds.APIToken)
	api.Limiter = client.NewRateLimiter(cfg.RequestsPerSecond, int(math.Max(1, math.Ceil(cfg.RequestsPerSecond))))
	return api
}

// limitOrDefault returns n, or the configured default limit when n is unset.
func limitOrDefault(n int) int {
	if n == 0 {
		return currentConfig().DefaultLimit
	}
	return n
}

// printResponse writes a controller response to the command's output.
func printResponse(cmd *cobra.Command, resp *controller.Response) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, resp.Content)
	if !strings.HasSuffix(resp.Content, "\n") {
		fmt.Fprintln(out)
	}
}

// exactArgs is cobra.ExactArgs with a validation error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierr.NewValidation(fmt.Sprintf("expected %s, got %d argument(s). See `%s --help`.", usage, len(args), cmd.CommandPath()), nil)
		}
		return nil
	}
}

// prompter reads answers from the command's input. Secrets are read without
// echo when the input is a terminal.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, r: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

// promptForInput prompts the user for input and returns the trimmed string.
func (p *prompter) promptForInput(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	input, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", clierr.NewValidation("Failed to read input.", err)
	}
	return strings.TrimSpace(input), nil
}

// promptForPassword prompts the user for a secret and returns the trimmed string.
func (p *prompter) promptForPassword(prompt string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.promptForInput(prompt)
	}
	fmt.Fprint(p.out, prompt)
	password, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", clierr.NewValidation("Failed to read password.", err)
	}
	return strings.TrimSpace(string(password)), nil
}
