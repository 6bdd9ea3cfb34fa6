// Package core provides the catalog model, the resolver and selector that
// operate on it, and the registry of version sources.
package core

import (
	"encoding/json"
	"regexp"
)

// VersionDefinition is a concrete version source: a pattern that admits
// candidate version strings and a locator for the candidate list.
type VersionDefinition struct {
	Filter  *regexp.Regexp
	Locator string // maven-metadata.xml URL for maven sources
}

// Matches reports whether candidate contains a match of the filter.
func (d *VersionDefinition) Matches(candidate string) bool {
	return d.Filter.MatchString(candidate)
}

func (d VersionDefinition) MarshalJSON() ([]byte, error) {
	var filter string
	if d.Filter != nil {
		filter = d.Filter.String()
	}
	return json.Marshal(struct {
		Filter string `json:"filter"`
		POM    string `json:"pom"`
	}{filter, d.Locator})
}

// VersionReference is either an InlineReference or a NamedReference.
type VersionReference interface {
	// String returns "@name" for named references and "inline" otherwise.
	String() string
	isVersionReference()
}

// InlineReference carries its definition directly.
type InlineReference struct {
	Definition VersionDefinition
}

// NamedReference points at an entry of the catalog's definitions table.
type NamedReference struct {
	Name string
}

func (InlineReference) isVersionReference() {}
func (NamedReference) isVersionReference()  {}

func (InlineReference) String() string  { return "inline" }
func (r NamedReference) String() string { return "@" + r.Name }

func (r InlineReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Definition)
}

func (r NamedReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Slot names one of the four version references of a game version entry.
type Slot int

const (
	SlotLoom Slot = iota
	SlotPlugin
	SlotAPI
	SlotInjectables
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotLoom, SlotPlugin, SlotAPI, SlotInjectables}

var slotNames = [...]string{
	SlotLoom:        "loom",
	SlotPlugin:      "plugin",
	SlotAPI:         "api",
	SlotInjectables: "injectables",
}

var slotTitles = [...]string{
	SlotLoom:        "Architectury Loom",
	SlotPlugin:      "Architectury Plugin",
	SlotAPI:         "Architectury API",
	SlotInjectables: "Injectables",
}

// String returns the catalog field name of the slot.
func (s Slot) String() string {
	if s < 0 || int(s) >= len(slotNames) {
		return "unknown"
	}
	return slotNames[s]
}

// Title returns the human readable slot name used in tables.
func (s Slot) Title() string {
	if s < 0 || int(s) >= len(slotTitles) {
		return "Unknown"
	}
	return slotTitles[s]
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// GameVersionEntry holds the four version references for one game version.
type GameVersionEntry struct {
	Key         string
	Stable      bool
	API         VersionReference
	Plugin      VersionReference
	Loom        VersionReference
	Injectables VersionReference
}

// Slot returns the reference stored in slot s, or nil for an unknown slot.
func (e *GameVersionEntry) Slot(s Slot) VersionReference {
	switch s {
	case SlotLoom:
		return e.Loom
	case SlotPlugin:
		return e.Plugin
	case SlotAPI:
		return e.API
	case SlotInjectables:
		return e.Injectables
	}
	return nil
}

// Catalog is the decoded version catalog. It is built by Decode and never
// modified afterwards.
type Catalog struct {
	definitions map[string]*VersionDefinition
	defOrder    []string
	entries     map[string]*GameVersionEntry
	order       []string
}

// Listing is the raw candidate list a source returned for a locator.
type Listing struct {
	Source    string     `json:"source"`
	Locator   string     `json:"locator"`
	Namespace string     `json:"namespace,omitempty"` // groupId for maven
	Name      string     `json:"name"`                // artifactId for maven
	Versions  []string   `json:"versions"`
	URLs      URLBuilder `json:"-"`
}

// FullName returns the source specific artifact name, "group:artifact" for maven.
func (l *Listing) FullName() string {
	if l.Namespace == "" {
		return l.Name
	}
	return l.Namespace + ":" + l.Name
}
