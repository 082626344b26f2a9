package auth

import (
	"context"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/db"
)

// CredentialStorer defines the contract for any component that can store and retrieve credentials.
type CredentialStorer interface {
	GetCredential() (*db.Credential, error)
	UpsertCredential(c *db.Credential) error
}

// Verifier defines the contract for any component that can identify the account behind credentials.
type Verifier interface {
	CurrentUser(ctx context.Context) (*client.User, error)
}

// Dialer builds a Verifier for a set of credentials.
type Dialer func(c Credentials) Verifier
