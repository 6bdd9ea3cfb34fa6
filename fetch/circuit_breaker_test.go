package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCircuitBreakerFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"definitions":{},"versions":{}}`))
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())

	doc, err := cbFetcher.Fetch(context.Background(), server.URL+"/architectury.json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc == nil {
		t.Fatal("expected document, got nil")
	}
	defer func() { _ = doc.Body.Close() }()

	body, _ := io.ReadAll(doc.Body)
	if string(body) != `{"definitions":{},"versions":{}}` {
		t.Errorf("unexpected body %q", string(body))
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "maven repository",
			url:      "https://maven.architectury.dev/dev/architectury/architectury/maven-metadata.xml",
			expected: "maven.architectury.dev",
		},
		{
			name:     "gist",
			url:      "https://gist.githubusercontent.com/someone/abc/raw/architectury.json",
			expected: "gist.githubusercontent.com",
		},
		{
			name:     "invalid URL",
			url:      "not-a-valid-url",
			expected: "not-a-valid-url",
		},
		{
			name:     "with port",
			url:      "https://example.com:8080/path",
			expected: "example.com:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractHost(tt.url)
			if got != tt.expected {
				t.Errorf("extractHost(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestGetBreakerState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())

	if states := cbFetcher.GetBreakerState(); len(states) != 0 {
		t.Errorf("expected empty states, got %d entries", len(states))
	}

	doc, err := cbFetcher.Fetch(context.Background(), server.URL+"/test")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	_ = doc.Body.Close()

	states := cbFetcher.GetBreakerState()
	if len(states) != 1 {
		t.Fatalf("expected one breaker state after fetch, got %d", len(states))
	}
	for _, state := range states {
		if state != "closed" {
			t.Errorf("expected closed state, got %s", state)
		}
	}
}

func TestCircuitBreakerMultipleHosts(t *testing.T) {
	server1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("server1"))
	}))
	defer server1.Close()

	server2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("server2"))
	}))
	defer server2.Close()

	cbFetcher := NewCircuitBreakerFetcher(NewFetcher())
	ctx := context.Background()

	doc1, err := cbFetcher.Fetch(ctx, server1.URL+"/test")
	if err != nil {
		t.Fatalf("fetch 1 failed: %v", err)
	}
	_ = doc1.Body.Close()

	doc2, err := cbFetcher.Fetch(ctx, server2.URL+"/test")
	if err != nil {
		t.Fatalf("fetch 2 failed: %v", err)
	}
	_ = doc2.Body.Close()

	if states := cbFetcher.GetBreakerState(); len(states) != 2 {
		t.Errorf("expected 2 breaker states, got %d", len(states))
	}
}

func TestCircuitBreakerOpensOnFailures(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcher(WithMaxRetries(0), WithBaseDelay(0))
	cbFetcher := NewCircuitBreakerFetcherWithThreshold(fetcher, 2)
	ctx := context.Background()

	var lastErr error
	for range 6 {
		_, lastErr = cbFetcher.Fetch(ctx, server.URL+"/test")
	}

	if !errors.Is(lastErr, ErrUpstreamDown) {
		t.Errorf("last error = %v, want ErrUpstreamDown", lastErr)
	}
	if requests >= 6 {
		t.Errorf("requests = %d, expected the breaker to short-circuit some of them", requests)
	}
	for host, state := range cbFetcher.GetBreakerState() {
		if state != "open" {
			t.Errorf("breaker for %s = %s, want open", host, state)
		}
	}
}
