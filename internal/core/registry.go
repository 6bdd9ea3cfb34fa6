package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Source is the interface implemented by every version source.
type Source interface {
	// Kind returns the source name used in configuration, e.g. "maven".
	Kind() string

	// FetchListing downloads the candidate versions published at locator.
	FetchListing(ctx context.Context, locator string) (*Listing, error)
}

// Factory creates a source that downloads through client.
type Factory func(client *Client) Source

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a source factory under kind. Sources call it from init.
func Register(kind string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = factory
}

// NewSource creates a source of the given kind. A nil client uses DefaultClient.
func NewSource(kind string, client *Client) (Source, error) {
	mu.RLock()
	factory, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown version source: %s", kind)
	}

	if client == nil {
		client = DefaultClient()
	}

	return factory(client), nil
}

// SupportedSources returns all registered source kinds, sorted.
func SupportedSources() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
