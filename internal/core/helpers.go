package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/git-pkgs/archversions/version"
)

// FetchLatestVersion downloads the candidates of def from src and returns
// the greatest match. It returns nil and no error when nothing matches.
func FetchLatestVersion(ctx context.Context, src Source, def *VersionDefinition, opts ...SelectOption) (*version.Version, error) {
	listing, err := src.FetchListing(ctx, def.Locator)
	if err != nil {
		return nil, err
	}
	return SelectLatest(def, listing.Versions, opts...)
}

// SlotResult is the outcome for one slot of a report.
type SlotResult struct {
	Slot       Slot               `json:"slot"`
	Reference  VersionReference   `json:"reference"`
	Definition *VersionDefinition `json:"definition"`
	Listing    *Listing           `json:"-"`
	Latest     *version.Version   `json:"latest"`
	URLs       map[string]string  `json:"urls,omitempty"`
}

// Report holds the latest versions of every slot of one game version entry.
type Report struct {
	Key    string       `json:"key"`
	Stable bool         `json:"stable"`
	Slots  []SlotResult `json:"slots"`
}

// Slot returns the result for s, or nil when the report does not contain it.
func (r *Report) Slot(s Slot) *SlotResult {
	for i := range r.Slots {
		if r.Slots[i].Slot == s {
			return &r.Slots[i]
		}
	}
	return nil
}

// ReportOptions configures BuildReport.
type ReportOptions struct {
	// Select is passed to SelectLatest for every slot.
	Select []SelectOption

	// OnSlot is called after each slot has been resolved.
	OnSlot func(SlotResult)

	Logger *slog.Logger
}

// BuildReport resolves and fetches every slot of entry, in the order of
// Slots. Slots are fetched one after another and the first error stops the
// report.
func BuildReport(ctx context.Context, catalog *Catalog, entry *GameVersionEntry, src Source, opts ReportOptions) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(discardHandler{})
	}
	selectOpts := append([]SelectOption{WithSelectLogger(log)}, opts.Select...)

	report := &Report{
		Key:    entry.Key,
		Stable: entry.Stable,
		Slots:  make([]SlotResult, 0, len(Slots)),
	}

	for _, slot := range Slots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref := entry.Slot(slot)
		def, err := catalog.ResolveSlot(ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}

		log.Debug("fetching slot", "slot", slot.String(), "reference", ref.String(), "locator", def.Locator)
		listing, err := src.FetchListing(ctx, def.Locator)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}

		latest, err := SelectLatest(def, listing.Versions, selectOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}

		result := SlotResult{
			Slot:       slot,
			Reference:  ref,
			Definition: def,
			Listing:    listing,
			Latest:     latest,
		}
		if latest != nil && listing.URLs != nil {
			result.URLs = BuildURLs(listing.URLs, listing.FullName(), latest.String())
		}
		if latest == nil {
			log.Warn("no version matches filter", "slot", slot.String(), "filter", def.Filter.String(), "candidates", len(listing.Versions))
		}

		report.Slots = append(report.Slots, result)
		if opts.OnSlot != nil {
			opts.OnSlot(result)
		}
	}

	return report, nil
}
