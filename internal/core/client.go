package core

import (
	"github.com/git-pkgs/archversions/client"
)

// Type aliases so sources only import core.
type (
	Client        = client.Client
	Option        = client.Option
	URLBuilder    = client.URLBuilder
	BaseURLs      = client.BaseURLs
	HTTPError     = client.HTTPError
	NotFoundError = client.NotFoundError
)

// ErrNotFound is returned when a document or artifact does not exist.
var ErrNotFound = client.ErrNotFound

// Function aliases.
var (
	DefaultClient        = client.DefaultClient
	NewClient            = client.NewClient
	WithTimeout          = client.WithTimeout
	WithMaxRetries       = client.WithMaxRetries
	WithBreakerThreshold = client.WithBreakerThreshold
	WithFetcher          = client.WithFetcher
	BuildURLs            = client.BuildURLs
)
