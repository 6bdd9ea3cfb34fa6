package core

import (
	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with artifact helpers.
type PURL struct {
	packageurl.PackageURL
}

// FullName returns the artifact name in the form sources expect.
// For maven: "dev.architectury:architectury".
func (p PURL) FullName() string {
	if p.Namespace == "" {
		return p.Name
	}
	if p.Type == packageurl.TypeMaven {
		return p.Namespace + ":" + p.Name
	}
	return p.Namespace + "/" + p.Name
}

// RepositoryURL returns the repository_url qualifier, or "" when absent.
func (p PURL) RepositoryURL() string {
	return p.Qualifiers.Map()["repository_url"]
}

// ParsePURL parses a Package URL string.
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// ArtifactPURL renders a Package URL for an artifact version. A non-empty
// repositoryURL is added as the repository_url qualifier.
func ArtifactPURL(purlType, namespace, name, version, repositoryURL string) string {
	var qualifiers packageurl.Qualifiers
	if repositoryURL != "" {
		qualifiers = packageurl.QualifiersFromMap(map[string]string{"repository_url": repositoryURL})
	}
	return packageurl.NewPackageURL(purlType, namespace, name, version, qualifiers, "").ToString()
}
