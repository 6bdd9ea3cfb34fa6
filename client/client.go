// Package client provides the document client used by version sources and
// the catalog loader, plus URL builders for published artifacts.
package client

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"github.com/git-pkgs/archversions/fetch"
)

// ErrNotFound is returned when a document or artifact does not exist.
var ErrNotFound = errors.New("not found")

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

func (e *HTTPError) Unwrap() error {
	if e.IsNotFound() {
		return ErrNotFound
	}
	return nil
}

// NotFoundError wraps ErrNotFound with the source and locator that were asked for.
type NotFoundError struct {
	Source  string
	Locator string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Source, e.Locator)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Client downloads documents through a fetch.FetcherInterface.
type Client struct {
	fetcher fetch.FetcherInterface
	custom  bool

	timeout    time.Duration
	maxRetries int
	threshold  int
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMaxRetries sets how often a rate limited or failing request is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithBreakerThreshold sets the consecutive failures that open a host's circuit breaker.
func WithBreakerThreshold(n int) Option {
	return func(c *Client) {
		c.threshold = n
	}
}

// WithFetcher replaces the transport. The timeout, retry, breaker and
// user agent settings are ignored for a custom fetcher.
func WithFetcher(f fetch.FetcherInterface) Option {
	return func(c *Client) {
		c.fetcher = f
		c.custom = true
	}
}

// DefaultClient returns a client with a 30s timeout, 3 retries and a breaker
// that opens after 5 consecutive failures.
func DefaultClient() *Client {
	return NewClient()
}

// NewClient creates a client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:    30 * time.Second,
		maxRetries: 3,
		threshold:  fetch.DefaultTripThreshold,
		userAgent:  "archversions",
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.custom {
		c.fetcher = c.newFetcher()
	}
	return c
}

func (c *Client) newFetcher() fetch.FetcherInterface {
	f := fetch.NewFetcher(
		fetch.WithTimeout(c.timeout),
		fetch.WithMaxRetries(c.maxRetries),
		fetch.WithUserAgent(c.userAgent),
	)
	return fetch.NewCircuitBreakerFetcherWithThreshold(f, c.threshold)
}

// WithUserAgent returns a copy of the client that sends ua as its User-Agent.
func (c *Client) WithUserAgent(ua string) *Client {
	cp := *c
	cp.userAgent = ua
	if !cp.custom {
		cp.fetcher = cp.newFetcher()
	}
	return &cp
}

// UserAgent returns the User-Agent header the client sends.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// GetBody fetches url and returns the whole response body.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, translate(url, err)
	}
	body, err := doc.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}

// GetXML fetches url and decodes the XML body into v.
func (c *Client) GetXML(ctx context.Context, url string, v any) error {
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func translate(url string, err error) error {
	var statusErr *fetch.StatusError
	switch {
	case errors.Is(err, fetch.ErrNotFound):
		return &HTTPError{StatusCode: 404, URL: url}
	case errors.As(err, &statusErr):
		return &HTTPError{StatusCode: statusErr.StatusCode, URL: url, Body: statusErr.Body}
	}
	return err
}
