// Package api is the REST gateway to the Passdoo portal. It owns outbound
// headers, the version-gate interception and the JSON envelope handling;
// per-area endpoint methods live in the sibling files.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/passdoo/desktop-cli/internal/client/session"
	"github.com/passdoo/desktop-cli/internal/logging"
)

// apiPrefix is prepended to every endpoint path.
const apiPrefix = "/passdoo/api"

const defaultRequestTimeout = 30 * time.Second

// Client calls the portal over HTTPS. All methods attach the JSON content
// type, the client-identification header pair and, when a session is
// present, the bearer token.
type Client struct {
	baseURL string
	version string
	http    *http.Client
	store   *session.Store
	log     logging.Logger

	// onUpgrade, when set, is notified after a version-gate rejection has
	// cleared the session. Intended for the presentation layer.
	onUpgrade func(*UpgradeRequiredError)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUpgradeHandler registers a callback invoked once per version-gate
// rejection that actually logged the user out.
func WithUpgradeHandler(fn func(*UpgradeRequiredError)) Option {
	return func(c *Client) { c.onUpgrade = fn }
}

func NewClient(baseURL, version string, store *session.Store, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		version: version,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		store:   store,
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the portal host the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

// AuthCallbackURL is the page the user opens in a browser to enter the
// device code.
func (c *Client) AuthCallbackURL() string {
	return c.baseURL + apiPrefix + "/desktop/auth-callback"
}

// do executes one API call: marshals body (when non-nil), attaches headers,
// intercepts the version gate and decodes the response into out (when
// non-nil). Non-2xx statuses other than 426 are returned as errors, but the
// body is still decoded first: record-level endpoints report failures
// through the {success,error} envelope with a 200.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Type", "desktop-app")
	req.Header.Set("X-Client-Version", c.version)
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUpgradeRequired {
		return c.handleUpgradeRequired(ctx, resp.Body)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			if resp.StatusCode >= 300 {
				return fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, method, path, resp.Status)
			}
			return fmt.Errorf("decode response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, method, path, resp.Status)
	}
	return nil
}

// handleUpgradeRequired enforces the version-gate contract: extract the
// upgrade payload, force-logout (at most once, however many in-flight calls
// hit the gate simultaneously) and surface a terminal error.
func (c *Client) handleUpgradeRequired(ctx context.Context, body io.Reader) error {
	ue := &UpgradeRequiredError{CurrentVersion: c.version}
	_ = json.NewDecoder(body).Decode(ue)

	if c.store.Invalidate(ctx) {
		c.log.Warn(ctx, "version gate tripped, session cleared",
			"min_version", ue.MinVersion, "current_version", ue.CurrentVersion)
		if c.onUpgrade != nil {
			c.onUpgrade(ue)
		}
	}
	return ue
}

// envelope is the success/error pair most endpoints wrap their payload in.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// reject converts a failed envelope into a caller-facing error, preserving
// the server's text verbatim.
func (e envelope) reject(fallback string) error {
	if e.Error != "" {
		return &ServerError{Message: e.Error}
	}
	return &ServerError{Message: fallback}
}
