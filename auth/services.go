package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/config"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/apierr"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/rs/zerolog/log"
)

// Credentials are what every API call needs.
type Credentials struct {
	SiteURL  string
	Email    string
	APIToken string
	Source   string // "config" or "store"
}

func (c Credentials) complete() bool {
	return c.SiteURL != "" && c.Email != "" && c.APIToken != ""
}

const missingMessage = "No Confluence credentials found. Run 'conflux init' or set " +
	config.EnvSiteURL + ", " + config.EnvEmail + " and " + config.EnvAPIToken + "."

// Service resolves and checks credentials using its dependencies.
type Service struct {
	Storer CredentialStorer
	Dial   Dialer
}

// NewService is the constructor for the auth service. A nil dial uses the HTTP client.
func NewService(storer CredentialStorer, dial Dialer) *Service {
	if dial == nil {
		dial = func(c Credentials) Verifier { return client.New(c.SiteURL, c.Email, c.APIToken) }
	}
	return &Service{
		Storer: storer,
		Dial:   dial,
	}
}

// NewServiceWithRepo constructs Service using a CredentialRepository directly.
func NewServiceWithRepo(repo db.CredentialRepository, dial Dialer) *Service {
	return NewService(&credentialRepoStorer{repo: repo}, dial)
}

// Resolve returns the credentials from cfg, completing any missing field from
// the store. Nothing usable anywhere is an auth_missing error.
func (s *Service) Resolve(cfg *config.Config) (Credentials, error) {
	creds := Credentials{Source: "config"}
	if cfg != nil {
		creds.SiteURL, creds.Email, creds.APIToken = cfg.SiteURL, cfg.Email, cfg.APIToken
	}
	if creds.complete() {
		return creds, nil
	}

	if s.Storer != nil {
		stored, err := s.Storer.GetCredential()
		if err != nil {
			log.Warn().Err(err).Msg("Could not read stored credentials")
		} else if stored != nil {
			creds.Source = "store"
			creds.SiteURL = firstNonEmpty(creds.SiteURL, stored.SiteURL)
			creds.Email = firstNonEmpty(creds.Email, stored.Email)
			creds.APIToken = firstNonEmpty(creds.APIToken, stored.APIToken)
		}
	}

	if !creds.complete() {
		return Credentials{}, clierr.NewAuthMissing(missingMessage)
	}
	return creds, nil
}

// Verify asks the API who the credentials belong to. A 401 is reported as
// auth_invalid; anything else is returned as is for the caller to classify.
func (s *Service) Verify(ctx context.Context, creds Credentials) (*client.User, error) {
	u, err := s.Dial(creds).CurrentUser(ctx)
	if err != nil {
		if apierr.StatusOf(err) == http.StatusUnauthorized {
			return nil, clierr.NewAuthInvalid("Authentication failed. Check the email address and API token for "+creds.SiteURL+".", http.StatusUnauthorized, err)
		}
		return nil, err
	}
	log.Debug().Str("account", u.AccountID).Msg("Credentials verified")
	return u, nil
}

// Save stores creds for later runs.
func (s *Service) Save(creds Credentials) error {
	if s.Storer == nil {
		return fmt.Errorf("no credential store configured")
	}
	if err := s.Storer.UpsertCredential(&db.Credential{SiteURL: creds.SiteURL, Email: creds.Email, APIToken: creds.APIToken}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// credentialRepoStorer adapts db.CredentialRepository to CredentialStorer.
type credentialRepoStorer struct{ repo db.CredentialRepository }

func (s *credentialRepoStorer) GetCredential() (*db.Credential, error) {
	return s.repo.Get(context.Background())
}

func (s *credentialRepoStorer) UpsertCredential(c *db.Credential) error {
	return s.repo.Upsert(context.Background(), c)
}
