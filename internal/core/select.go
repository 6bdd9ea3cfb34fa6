package core

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/git-pkgs/archversions/version"
)

// SelectOption configures SelectLatest.
type SelectOption func(*selectConfig)

type selectConfig struct {
	skipMalformed bool
	logger        *slog.Logger
}

// WithSkipMalformed makes SelectLatest skip matching candidates that are not
// valid versions instead of failing the whole selection.
func WithSkipMalformed() SelectOption {
	return func(c *selectConfig) {
		c.skipMalformed = true
	}
}

// WithSelectLogger sets the logger that reports skipped candidates.
func WithSelectLogger(l *slog.Logger) SelectOption {
	return func(c *selectConfig) {
		c.logger = l
	}
}

// SelectLatest returns the greatest candidate matching def.Filter. The
// filter is searched, not anchored. It returns nil and no error when no
// candidate matches, and a *SelectError when a matching candidate does not
// parse, unless WithSkipMalformed is given.
func SelectLatest(def *VersionDefinition, candidates []string, opts ...SelectOption) (*version.Version, error) {
	cfg := selectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(discardHandler{})
	}

	matched := lo.Filter(candidates, func(c string, _ int) bool {
		return def.Matches(c)
	})

	parsed := make([]version.Version, 0, len(matched))
	for _, candidate := range matched {
		v, err := version.Parse(candidate)
		if err != nil {
			if cfg.skipMalformed {
				log.Debug("skipping malformed candidate", "candidate", candidate, "error", err)
				continue
			}
			return nil, &SelectError{Candidate: candidate, Err: err}
		}
		parsed = append(parsed, v)
	}

	best, ok := version.Max(parsed...)
	if !ok {
		return nil, nil
	}
	return &best, nil
}

// discardHandler is a slog.Handler that drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
