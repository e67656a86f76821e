package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const maxBodyBytes = 1 << 20

// Client posts partial queries to a search service's suggestion route.
type Client struct {
	endpoint  string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the pooled client (tests, proxies).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every fetch. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient builds a client for baseURL + path. An empty path means DefaultPath.
func NewClient(baseURL, path string, opts ...ClientOption) (*Client, error) {
	endpoint, err := JoinEndpoint(baseURL, path)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  endpoint,
		userAgent: "searchbar",
		http:      cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// JoinEndpoint resolves path against baseURL.
func JoinEndpoint(baseURL, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", fmt.Errorf("suggestion endpoint: base url is empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("suggestion endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("suggestion endpoint: unsupported scheme %q", base.Scheme)
	}
	if path == "" {
		path = DefaultPath
	}
	return base.JoinPath(path).String(), nil
}

// Endpoint returns the resolved suggestion URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch posts q=<query> and parses the response. A 200 with an unexpected
// shape returns ErrMalformed alongside a nil list.
func (c *Client) Fetch(ctx context.Context, query string) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	suggestions := ParseResponse(data)
	if suggestions == nil {
		return nil, ErrMalformed
	}
	return suggestions, nil
}
