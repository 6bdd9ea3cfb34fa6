// Package maven provides a version source that reads maven-metadata.xml
// documents from Maven repositories.
package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/git-pkgs/archversions/internal/core"
)

const (
	// CentralURL is the repository that maven PURLs imply when they carry no
	// repository_url qualifier.
	CentralURL   = "https://repo.maven.apache.org/maven2"
	kind         = "maven"
	metadataFile = "maven-metadata.xml"
)

func init() {
	core.Register(kind, func(client *core.Client) core.Source {
		return New(client)
	})
}

type Source struct {
	client *core.Client
}

func New(client *core.Client) *Source {
	if client == nil {
		client = core.DefaultClient()
	}
	return &Source{client: client}
}

func (s *Source) Kind() string {
	return kind
}

// Metadata is the part of maven-metadata.xml the source reads.
type Metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning versioning `xml:"versioning"`
}

type versioning struct {
	Latest      string   `xml:"latest"`
	Release     string   `xml:"release"`
	Versions    []string `xml:"versions>version"`
	LastUpdated string   `xml:"lastUpdated"`
}

// Versions returns the listed versions in document order, trimmed, with
// empty elements dropped.
func (m *Metadata) Versions() []string {
	versions := make([]string, 0, len(m.Versioning.Versions))
	for _, v := range m.Versioning.Versions {
		if v = strings.TrimSpace(v); v != "" {
			versions = append(versions, v)
		}
	}
	return versions
}

// ParseMetadata decodes a maven-metadata.xml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", metadataFile, err)
	}
	return &m, nil
}

// FetchListing downloads the maven-metadata.xml at locator.
func (s *Source) FetchListing(ctx context.Context, locator string) (*core.Listing, error) {
	body, err := s.client.GetBody(ctx, locator)
	if err != nil {
		var httpErr *core.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Source: kind, Locator: locator}
		}
		return nil, err
	}

	m, err := ParseMetadata(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locator, err)
	}

	return &core.Listing{
		Source:    kind,
		Locator:   locator,
		Namespace: strings.TrimSpace(m.GroupID),
		Name:      strings.TrimSpace(m.ArtifactID),
		Versions:  m.Versions(),
		URLs:      &URLs{baseURL: RepositoryBase(locator, m.GroupID, m.ArtifactID)},
	}, nil
}

// RepositoryBase derives the repository root from a metadata locator, e.g.
// "https://maven.architectury.dev" from
// "https://maven.architectury.dev/dev/architectury/architectury/maven-metadata.xml".
// It returns "" when the locator does not follow the repository layout.
func RepositoryBase(locator, groupID, artifactID string) string {
	dir, ok := strings.CutSuffix(locator, "/"+metadataFile)
	if !ok {
		return ""
	}
	groupID = strings.TrimSpace(groupID)
	artifactID = strings.TrimSpace(artifactID)
	if groupID == "" || artifactID == "" {
		return ""
	}
	base, ok := strings.CutSuffix(dir, "/"+artifactPath(groupID, artifactID))
	if !ok {
		return ""
	}
	return base
}

// ParseCoordinates splits "group:artifact[:version]".
func ParseCoordinates(name string) (groupID, artifactID, version string) {
	parts := strings.Split(name, ":")
	switch len(parts) {
	case 2:
		return parts[0], parts[1], ""
	case 3:
		return parts[0], parts[1], parts[2]
	}
	return "", "", ""
}

func artifactPath(groupID, artifactID string) string {
	return strings.ReplaceAll(groupID, ".", "/") + "/" + artifactID
}

// URLs builds repository URLs for artifacts below one repository root.
type URLs struct {
	baseURL string
}

func (u *URLs) Metadata(name string) string {
	g, a, _ := ParseCoordinates(name)
	if u.baseURL == "" || g == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", u.baseURL, artifactPath(g, a), metadataFile)
}

// Registry returns the artifact version directory.
func (u *URLs) Registry(name, version string) string {
	g, a, _ := ParseCoordinates(name)
	if u.baseURL == "" || g == "" || version == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/", u.baseURL, artifactPath(g, a), version)
}

func (u *URLs) Download(name, version string) string {
	g, a, _ := ParseCoordinates(name)
	if u.baseURL == "" || g == "" || version == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s.jar", u.baseURL, artifactPath(g, a), version, a, version)
}

func (u *URLs) PURL(name, version string) string {
	g, a, _ := ParseCoordinates(name)
	if g == "" {
		return ""
	}
	repo := u.baseURL
	if repo == CentralURL {
		repo = ""
	}
	return core.ArtifactPURL(kind, g, a, version, repo)
}
