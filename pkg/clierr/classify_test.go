package clierr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/habedi/conflux/pkg/apierr"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/stretchr/testify/assert"
)

// vendorErr mimics what the HTTP client returns for a non-2xx response.
func vendorErr(status int, body string) error {
	ae := apierr.Parse([]byte(body), status)
	return clierr.NewAPIError(fmt.Sprintf("Request failed with status %d: %s", status, ae.Message), status, ae)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   clierr.Kind
		wantStatus int
	}{
		{
			name:       "network failure from plain error",
			err:        errors.New("fetch failed: ECONNREFUSED"),
			wantKind:   clierr.Network,
			wantStatus: 500,
		},
		{
			name:       "go dial error",
			err:        fmt.Errorf("fetch failed: %w", errors.New("dial tcp 127.0.0.1:1: connect: connection refused")),
			wantKind:   clierr.Network,
			wantStatus: 500,
		},
		{
			name:       "dns failure",
			err:        errors.New("lookup example.atlassian.net: no such host"),
			wantKind:   clierr.Network,
			wantStatus: 500,
		},
		{
			name:       "too many requests text",
			err:        errors.New("Too Many Requests"),
			wantKind:   clierr.RateLimit,
			wantStatus: 429,
		},
		{
			name:       "status 429 wins over payload",
			err:        vendorErr(429, `{"title":"Not Found","detail":"page does not exist","status":404}`),
			wantKind:   clierr.RateLimit,
			wantStatus: 429,
		},
		{
			name:       "title detail with status 404",
			err:        vendorErr(404, `{"title":"Gone","detail":"whatever","status":404}`),
			wantKind:   clierr.NotFound,
			wantStatus: 404,
		},
		{
			name:       "title permission uses own status",
			err:        vendorErr(401, `{"title":"Unauthorized","detail":"token expired","status":401}`),
			wantKind:   clierr.AccessDenied,
			wantStatus: 401,
		},
		{
			name:       "title validation defaults to 400",
			err:        vendorErr(422, `{"title":"Invalid request","detail":"title is required"}`),
			wantKind:   clierr.Validation,
			wantStatus: 400,
		},
		{
			name:       "errors array cql",
			err:        vendorErr(400, `{"errors":[{"message":"Could not parse cql: title ~ "}]}`),
			wantKind:   clierr.QuerySyntax,
			wantStatus: 400,
		},
		{
			name:       "errors array not found",
			err:        vendorErr(400, `{"errors":[{"status":404,"title":"Page not found"}]}`),
			wantKind:   clierr.NotFound,
			wantStatus: 404,
		},
		{
			name:       "errors array permission",
			err:        vendorErr(400, `{"errors":[{"status":403,"title":"No permission to view page"}]}`),
			wantKind:   clierr.AccessDenied,
			wantStatus: 403,
		},
		{
			name:       "errors array content state",
			err:        vendorErr(409, `{"errors":[{"status":409,"title":"Version must be incremented when updating content"}]}`),
			wantKind:   clierr.ContentState,
			wantStatus: 409,
		},
		{
			name:       "flat message not found",
			err:        vendorErr(400, `{"statusCode":400,"message":"No space with key : NOPE does not exist"}`),
			wantKind:   clierr.NotFound,
			wantStatus: 404,
		},
		{
			name:       "flat message cql",
			err:        vendorErr(400, `{"statusCode":400,"message":"Could not parse cql : text ~"}`),
			wantKind:   clierr.QuerySyntax,
			wantStatus: 400,
		},
		{
			name:       "plain text validation",
			err:        errors.New("invalid page id"),
			wantKind:   clierr.Validation,
			wantStatus: 400,
		},
		{
			name:       "status fallback 404",
			err:        vendorErr(404, ``),
			wantKind:   clierr.NotFound,
			wantStatus: 404,
		},
		{
			name:       "status fallback 403",
			err:        vendorErr(403, `{"foo":"bar"}`),
			wantKind:   clierr.AccessDenied,
			wantStatus: 403,
		},
		{
			name:       "status fallback 422",
			err:        clierr.NewAPIError("Request failed with status 422", 422, nil),
			wantKind:   clierr.Validation,
			wantStatus: 422,
		},
		{
			name:       "status fallback other",
			err:        vendorErr(502, `gateway exploded`),
			wantKind:   clierr.Unexpected,
			wantStatus: 502,
		},
		{
			name:       "default",
			err:        errors.New("something odd"),
			wantKind:   clierr.Unexpected,
			wantStatus: 500,
		},
		{
			name:       "pre-classified kind survives",
			err:        clierr.NewAuthMissing("Authentication credentials are missing"),
			wantKind:   clierr.AuthMissing,
			wantStatus: 0,
		},
		{
			name:       "pre-classified cursor survives wrapping",
			err:        fmt.Errorf("list: %w", clierr.NewInvalidCursor("cursor must be a number", nil)),
			wantKind:   clierr.InvalidCursor,
			wantStatus: 0,
		},
		{
			name:       "nil",
			err:        nil,
			wantKind:   clierr.Unexpected,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, status := clierr.Classify(tt.err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	err := vendorErr(400, `{"errors":[{"message":"Could not parse cql: x"}]}`)
	k1, s1 := clierr.Classify(err)
	k2, s2 := clierr.Classify(err)
	assert.Equal(t, k1, k2)
	assert.Equal(t, s1, s2)
}

func TestClassify_CyclicChainTerminates(t *testing.T) {
	a := &clierr.Error{Kind: clierr.APIFailure, Message: "loop"}
	b := &clierr.Error{Kind: clierr.Unexpected, Message: "loop", Cause: a}
	a.Cause = b

	kind, status := clierr.Classify(a)
	assert.Equal(t, clierr.Unexpected, kind)
	assert.Equal(t, 500, status)
}

func TestNewClassifier_CustomKeywords(t *testing.T) {
	c := clierr.NewClassifier(clierr.Keywords{NotFound: []string{"Nicht Gefunden"}})

	kind, status := c.Classify(errors.New("Seite nicht gefunden"))
	assert.Equal(t, clierr.NotFound, kind)
	assert.Equal(t, 404, status)

	// families that were not overridden keep their defaults
	kind, _ = c.Classify(errors.New("fetch failed"))
	assert.Equal(t, clierr.Network, kind)

	// the default "not found" phrase is replaced
	kind, _ = c.Classify(errors.New("page not found"))
	assert.Equal(t, clierr.Unexpected, kind)
}
