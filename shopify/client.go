// Package shopify looks up theme records through the Shopify Admin REST
// API. Its single responsibility is resolving the canonical "main" (i.e.
// currently published) theme ID for the configured store.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kilgore5/slate/config"
)

const (
	themesPath = "/admin/themes.json"

	// accessTokenHeader carries the real credential for Admin API calls.
	accessTokenHeader = "X-Shopify-Access-Token"

	// The basic-auth field is a fixed placeholder kept for wire
	// compatibility; authentication happens via the access-token header.
	basicAuthUser        = "slate"
	basicAuthPlaceholder = "[api-password]"

	defaultTimeout = 10 * time.Second
)

// mainRole marks the currently published theme in the themes listing.
const mainRole = "main"

// Client queries the Admin API of the configured store.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string // override for testing; defaults to https://{store}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client, e.g. to control transport
// behavior in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL. Used by tests to point the
// client at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates an Admin API client for the configured store. The
// request timeout is taken from the configuration, falling back to 10s.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// themesResponse is the wire shape of GET /admin/themes.json. Both fields
// stay raw until their presence and shape have been checked.
type themesResponse struct {
	Errors json.RawMessage `json:"errors"`
	Themes json.RawMessage `json:"themes"`
}

// theme is one record in the themes listing.
type theme struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// FetchMainThemeID fetches the store's theme list and returns the ID of
// the theme whose role is "main" (ties broken by response order). The full
// response body is buffered before parsing.
//
// Invalid environment configuration is a hard stop: the process terminates
// with exit status 1 before any request is issued.
//
// Errors:
//   - *APIError if the response carries an errors field
//   - ErrMalformedResponse if the themes field is missing or not a list
//   - ErrNoMainTheme if no theme carries the "main" role
func (c *Client) FetchMainThemeID(ctx context.Context) (int64, error) {
	config.MustValid(c.cfg)

	baseURL := c.baseURL
	if baseURL == "" {
		baseURL = "https://" + c.cfg.Store
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+themesPath, nil)
	if err != nil {
		return 0, fmt.Errorf("create themes request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, basicAuthPlaceholder)
	req.Header.Set(accessTokenHeader, c.cfg.Password.Reveal())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch themes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read themes response: %w", err)
	}

	return parseMainThemeID(body)
}

// parseMainThemeID extracts the main theme ID from a themes.json body.
func parseMainThemeID(body []byte) (int64, error) {
	var parsed themesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(parsed.Errors) > 0 && string(parsed.Errors) != "null" {
		return 0, &APIError{Payload: parsed.Errors}
	}

	if len(parsed.Themes) == 0 || string(parsed.Themes) == "null" {
		return 0, ErrMalformedResponse
	}
	var themes []theme
	if err := json.Unmarshal(parsed.Themes, &themes); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, t := range themes {
		if t.Role == mainRole {
			return t.ID, nil
		}
	}
	return 0, ErrNoMainTheme
}
