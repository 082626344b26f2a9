// Package client talks to the Confluence Cloud REST APIs (v1 search, v2 content).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/habedi/conflux/pkg/apierr"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/rs/zerolog/log"
)

const (
	v1Prefix = "/wiki/rest/api"
	v2Prefix = "/wiki/api/v2"

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// Client sends one attempt per call; failures come back unclassified for the
// controller layer to normalize.
type Client struct {
	BaseURL    string
	Email      string
	APIToken   string
	UserAgent  string
	HTTPClient *http.Client
	Limiter    *RateLimiter
}

// New returns a Client for siteURL, e.g. https://acme.atlassian.net.
func New(siteURL, email, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(siteURL, "/"),
		Email:      email,
		APIToken:   token,
		UserAgent:  "conflux",
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// do sends a request and returns the body of a 2xx response.
// Transport failures are wrapped as "fetch failed: ..."; non-2xx responses
// become api_error values carrying the parsed vendor payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", u).Msg("Failed to create HTTP request object")
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.Email, c.APIToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	log.Debug().Str("method", method).Str("url", u).Msg("Sending HTTP request")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("url", u).Msg("HTTP request failed")
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	slurp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ae := apierr.Parse(slurp[:min(len(slurp), maxErrorBody)], resp.StatusCode)
		log.Debug().Str("method", method).Str("url", u).Int("status", resp.StatusCode).Str("body", string(slurp)).Msg("HTTP request returned non-OK status")
		msg := fmt.Sprintf("Request failed with status %d: %s", resp.StatusCode, ae.Error())
		return nil, clierr.NewAPIError(msg, resp.StatusCode, ae)
	}

	log.Debug().Str("method", method).Str("url", u).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return slurp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := decode(body, out); err != nil {
			return body, err
		}
	}
	return body, nil
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse response JSON")
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// listQuery builds limit/cursor parameters for cursor-paginated v2 endpoints.
func listQuery(opts ListOptions) url.Values {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprint(opts.Limit))
	}
	if opts.Cursor != "" {
		q.Set("cursor", opts.Cursor)
	}
	return q
}
