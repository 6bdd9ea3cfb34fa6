package client

import "fmt"

// URLBuilder constructs URLs for artifacts published in a version source.
// name is the source-specific artifact name, for maven "group:artifact".
type URLBuilder interface {
	Metadata(name string) string
	Registry(name, version string) string
	Download(name, version string) string
	PURL(name, version string) string
}

// BaseURLs provides a default URLBuilder implementation.
type BaseURLs struct {
	MetadataFn func(name string) string
	RegistryFn func(name, version string) string
	DownloadFn func(name, version string) string
	PURLFn     func(name, version string) string
}

func (b *BaseURLs) Metadata(name string) string {
	if b.MetadataFn != nil {
		return b.MetadataFn(name)
	}
	return ""
}

func (b *BaseURLs) Registry(name, version string) string {
	if b.RegistryFn != nil {
		return b.RegistryFn(name, version)
	}
	return ""
}

func (b *BaseURLs) Download(name, version string) string {
	if b.DownloadFn != nil {
		return b.DownloadFn(name, version)
	}
	return ""
}

func (b *BaseURLs) PURL(name, version string) string {
	if b.PURLFn != nil {
		return b.PURLFn(name, version)
	}
	if version != "" {
		return fmt.Sprintf("pkg:generic/%s@%s", name, version)
	}
	return fmt.Sprintf("pkg:generic/%s", name)
}

// BuildURLs returns a map of all non-empty URLs for an artifact version.
// Keys are "metadata", "registry", "download" and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	result := make(map[string]string)
	if v := urls.Metadata(name); v != "" {
		result["metadata"] = v
	}
	if v := urls.Registry(name, version); v != "" {
		result["registry"] = v
	}
	if v := urls.Download(name, version); v != "" {
		result["download"] = v
	}
	if v := urls.PURL(name, version); v != "" {
		result["purl"] = v
	}
	return result
}
