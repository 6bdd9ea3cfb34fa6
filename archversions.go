// Package archversions resolves the latest Architectury toolchain versions
// for a Minecraft version from a remote version catalog.
//
// The catalog maps game versions to four slots (loom, plugin, api and
// injectables). Each slot names a version source either inline or by
// reference to a shared definition, and a source is a filter pattern plus a
// maven-metadata.xml locator.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/archversions"
//		_ "github.com/git-pkgs/archversions/all"
//	)
//
//	client := archversions.DefaultClient()
//	catalog, err := archversions.FetchCatalog(ctx, archversions.DefaultCatalogURL, client)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entry, err := catalog.Stable()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	src, _ := archversions.NewSource("maven", client)
//	report, err := archversions.BuildReport(ctx, catalog, entry, src, archversions.ReportOptions{})
package archversions

import (
	"context"
	"fmt"

	"github.com/git-pkgs/archversions/client"
	"github.com/git-pkgs/archversions/internal/core"
	"github.com/git-pkgs/archversions/version"
)

// DefaultCatalogURL is the published Architectury version catalog.
const DefaultCatalogURL = "https://gist.githubusercontent.com/shedaniel/4a37f350a6e49545347cb798dbfa72b3/raw/architectury.json"

// Re-export types from internal/core
type (
	// Catalog is the decoded version catalog.
	Catalog = core.Catalog

	// GameVersionEntry holds the four version references for one game version.
	GameVersionEntry = core.GameVersionEntry

	// VersionDefinition is a filter pattern plus a candidate list locator.
	VersionDefinition = core.VersionDefinition

	// VersionReference is either an InlineReference or a NamedReference.
	VersionReference = core.VersionReference

	InlineReference = core.InlineReference
	NamedReference  = core.NamedReference

	// Slot names one of the four references of an entry.
	Slot = core.Slot

	// Source downloads candidate version lists.
	Source = core.Source

	// Listing is the candidate list a source returned.
	Listing = core.Listing

	Report        = core.Report
	SlotResult    = core.SlotResult
	ReportOptions = core.ReportOptions
	SelectOption  = core.SelectOption

	// PURL represents a parsed Package URL.
	PURL = core.PURL
)

// Version is a parsed artifact version.
type Version = version.Version

// Re-export constants
const (
	SlotLoom        = core.SlotLoom
	SlotPlugin      = core.SlotPlugin
	SlotAPI         = core.SlotAPI
	SlotInjectables = core.SlotInjectables
)

// Re-export types from client
type (
	// Client downloads documents with retries and per-host circuit breaking.
	Client = client.Client

	// Option configures a Client.
	Option = client.Option

	// URLBuilder constructs URLs for published artifacts.
	URLBuilder = client.URLBuilder
)

// Re-export errors
var (
	ErrNotFound           = client.ErrNotFound
	ErrNoStableEntry      = core.ErrNoStableEntry
	ErrUnknownDefinition  = core.ErrUnknownDefinition
	ErrUnknownGameVersion = core.ErrUnknownGameVersion
)

// Error types
type (
	HTTPError     = client.HTTPError
	NotFoundError = client.NotFoundError
	ParseError    = version.ParseError
	DecodeError   = core.DecodeError
	LookupError   = core.LookupError
	SelectError   = core.SelectError
)

// Slots lists every slot in display order.
var Slots = core.Slots

// Client options.
var (
	WithTimeout          = client.WithTimeout
	WithMaxRetries       = client.WithMaxRetries
	WithBreakerThreshold = client.WithBreakerThreshold
	WithFetcher          = client.WithFetcher
)

// Selection options.
var (
	WithSkipMalformed = core.WithSkipMalformed
	WithSelectLogger  = core.WithSelectLogger
)

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 3 retries with exponential backoff on 429 and 5xx responses
// - a per-host circuit breaker that opens after 5 consecutive failures
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// ParseVersion parses a version string.
func ParseVersion(s string) (Version, error) {
	return version.Parse(s)
}

// CompareVersions compares two versions, see version.Compare.
func CompareVersions(a, b Version) int {
	return version.Compare(a, b)
}

// ParseCatalog decodes a raw JSON catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	return core.ParseCatalog(data)
}

// DecodeCatalog decodes an already parsed JSON-shaped document.
func DecodeCatalog(document any) (*Catalog, error) {
	return core.Decode(document)
}

// FetchCatalog downloads and decodes the catalog at url.
// If c is nil, DefaultClient() is used.
func FetchCatalog(ctx context.Context, url string, c *Client) (*Catalog, error) {
	if c == nil {
		c = DefaultClient()
	}
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	return core.ParseCatalog(body)
}

// SelectEntry picks the entry for key, the stable entry for an empty key,
// and with fallback set also for an unknown key.
func SelectEntry(catalog *Catalog, key string, fallback bool) (*GameVersionEntry, error) {
	return core.SelectEntry(catalog, key, fallback)
}

// SelectLatest returns the greatest candidate matching def, or nil when none
// matches.
func SelectLatest(def *VersionDefinition, candidates []string, opts ...SelectOption) (*Version, error) {
	return core.SelectLatest(def, candidates, opts...)
}

// NewSource creates a version source of the given kind.
// If c is nil, DefaultClient() is used.
//
// Supported sources: "maven"
func NewSource(kind string, c *Client) (Source, error) {
	return core.NewSource(kind, c)
}

// SupportedSources returns all registered source kinds.
// Note: sources must be imported to be registered.
func SupportedSources() []string {
	return core.SupportedSources()
}

// FetchLatestVersion downloads the candidates of def and returns the greatest
// match, or nil when none matches.
func FetchLatestVersion(ctx context.Context, src Source, def *VersionDefinition, opts ...SelectOption) (*Version, error) {
	return core.FetchLatestVersion(ctx, src, def, opts...)
}

// BuildReport resolves and fetches every slot of entry.
func BuildReport(ctx context.Context, catalog *Catalog, entry *GameVersionEntry, src Source, opts ReportOptions) (*Report, error) {
	return core.BuildReport(ctx, catalog, entry, src, opts)
}

// BuildURLs returns a map of all non-empty URLs for an artifact version.
// Keys are "metadata", "registry", "download" and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	return client.BuildURLs(urls, name, version)
}

// ParsePURL parses a Package URL string into its components.
func ParsePURL(purl string) (*PURL, error) {
	return core.ParsePURL(purl)
}
