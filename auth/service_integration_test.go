package auth_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/habedi/conflux/auth"
	"github.com/habedi/conflux/config"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredCredentials_Integration(t *testing.T) {
	db.Path = filepath.Join(t.TempDir(), "conflux.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() { _ = db.CloseDB() })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pass, _ := r.BasicAuth()
		if pass != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"title":"Unauthorized","detail":"Client must be authenticated to access this resource.","status":401}`)
			return
		}
		_, _ = io.WriteString(w, `{"accountId":"acc-9","displayName":"Dev"}`)
	}))
	defer server.Close()

	service := auth.NewServiceWithRepo(db.NewCredentialRepository(db.GetDB()), nil)
	require.NoError(t, service.Save(auth.Credentials{SiteURL: server.URL, Email: "dev@acme.io", APIToken: "good"}))

	creds, err := service.Resolve(&config.Config{})
	require.NoError(t, err)
	u, err := service.Verify(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "acc-9", u.AccountID)

	creds.APIToken = "bad"
	_, err = service.Verify(context.Background(), creds)
	assert.Equal(t, clierr.AuthInvalid, clierr.Ensure(err).Kind)
}
