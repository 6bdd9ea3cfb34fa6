// Package fetch provides the HTTP transport used to download catalog and
// metadata documents, with retry, circuit breaking and DNS caching.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrRateLimited  = errors.New("rate limited by upstream")
	ErrUpstreamDown = errors.New("upstream unavailable")
	ErrTooLarge     = errors.New("document exceeds size limit")
)

// DefaultMaxBodySize bounds how much of a document ReadAll accepts.
const DefaultMaxBodySize = 8 << 20

// StatusError is returned for non-retryable responses other than 404.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// retryError marks a response worth another attempt. after is the delay the
// server asked for through Retry-After, zero when it gave none.
type retryError struct {
	err   error
	after time.Duration
}

func (e *retryError) Error() string { return e.err.Error() }
func (e *retryError) Unwrap() error { return e.err }

// Format is the document format a response carries.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	}
	return "unknown"
}

// formatOf detects the format from the Content-Type header, falling back to
// the URL's extension. Raw gist and maven hosts often send text/plain.
func formatOf(contentType, rawURL string) Format {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case mt == "application/json" || strings.HasSuffix(mt, "+json"):
			return FormatJSON
		case mt == "application/xml" || mt == "text/xml" || strings.HasSuffix(mt, "+xml"):
			return FormatXML
		}
	}
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	switch path.Ext(rawURL) {
	case ".json":
		return FormatJSON
	case ".xml", ".pom":
		return FormatXML
	}
	return FormatUnknown
}

// acceptHeader prefers the format the URL suggests.
func acceptHeader(rawURL string) string {
	switch formatOf("", rawURL) {
	case FormatJSON:
		return "application/json, */*;q=0.5"
	case FormatXML:
		return "application/xml, text/xml;q=0.9, */*;q=0.5"
	}
	return "*/*"
}

// Document is a fetched catalog or metadata document.
type Document struct {
	URL         string
	Body        io.ReadCloser
	Size        int64 // -1 if unknown
	ContentType string
	Format      Format
	ETag        string

	limit int64
}

// ReadAll reads and closes the body. It fails with ErrTooLarge when the body
// exceeds the fetcher's size limit.
func (d *Document) ReadAll() ([]byte, error) {
	defer func() { _ = d.Body.Close() }()

	if d.limit <= 0 {
		return io.ReadAll(d.Body)
	}
	if d.Size > d.limit {
		return nil, fmt.Errorf("%s: %d bytes: %w", d.URL, d.Size, ErrTooLarge)
	}
	data, err := io.ReadAll(io.LimitReader(d.Body, d.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > d.limit {
		return nil, fmt.Errorf("%s: %w", d.URL, ErrTooLarge)
	}
	return data, nil
}

// FetcherInterface defines the interface for document fetchers.
type FetcherInterface interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Fetcher downloads documents from upstream hosts.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxRetries  int
	baseDelay   time.Duration
	maxDelay    time.Duration
	maxBodySize int64
	authFn      func(url string) (headerName, headerValue string)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithTimeout sets the overall timeout of a single request.
// Zero or negative values leave the default in place.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxRetries sets the maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
	}
}

// WithBaseDelay sets the first retry delay. Later delays double, with 10% jitter.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.baseDelay = d
	}
}

// WithMaxBodySize sets the largest body Document.ReadAll accepts.
// Zero or negative disables the limit.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithAuthFunc sets a function that returns auth headers for a given URL.
// Return empty strings to skip authentication for that URL.
func WithAuthFunc(fn func(url string) (headerName, headerValue string)) Option {
	return func(f *Fetcher) {
		f.authFn = fn
	}
}

var (
	resolverOnce sync.Once
	dnsResolver  *dnscache.Resolver
)

// sharedResolver returns the process-wide DNS cache, refreshed every 5 minutes.
func sharedResolver() *dnscache.Resolver {
	resolverOnce.Do(func() {
		dnsResolver = &dnscache.Resolver{}
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				dnsResolver.Refresh(true)
			}
		}()
	})
	return dnsResolver
}

// cachedDial dials the first reachable address the resolver returns for the host.
func cachedDial(resolver *dnscache.Resolver, dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		var lastErr error
		for _, ip := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("dialing %s: %w", host, lastErr)
	}
}

// NewFetcher creates a new Fetcher with the given options.
func NewFetcher(opts ...Option) *Fetcher {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext:           cachedDial(sharedResolver(), dialer),
				MaxIdleConns:          20,
				MaxIdleConnsPerHost:   4,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		userAgent:   "archversions",
		maxRetries:  3,
		baseDelay:   500 * time.Millisecond,
		maxDelay:    30 * time.Second,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.baseDelay
	b.RandomizationFactor = 0.1
	b.Multiplier = 2.0
	b.MaxInterval = f.maxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Fetch downloads a document from the given URL, retrying rate limited and
// server error responses. The caller must read or close Document.Body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	b := f.newBackOff()

	for attempt := 0; ; attempt++ {
		doc, err := f.doFetch(ctx, url)
		if err == nil {
			return doc, nil
		}

		var retry *retryError
		if !errors.As(err, &retry) || attempt >= f.maxRetries {
			return nil, err
		}

		delay := max(b.NextBackOff(), min(retry.after, f.maxDelay))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (f *Fetcher) doFetch(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader(url))

	if f.authFn != nil {
		if name, value := f.authFn(url); name != "" && value != "" {
			req.Header.Set(name, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if err := checkStatus(resp, url); err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	return &Document{
		URL:         url,
		Body:        resp.Body,
		Size:        resp.ContentLength,
		ContentType: contentType,
		Format:      formatOf(contentType, url),
		ETag:        resp.Header.Get("ETag"),
		limit:       f.maxBodySize,
	}, nil
}

// checkStatus maps a non-200 response to an error and closes its body.
func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return &retryError{err: ErrRateLimited, after: retryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return &retryError{err: ErrUpstreamDown}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
}

// retryAfter parses a Retry-After value given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
