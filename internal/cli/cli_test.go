package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/archversions"
)

func metadata(group, artifact string, versions ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<metadata><groupId>%s</groupId><artifactId>%s</artifactId><versioning><versions>", group, artifact)
	for _, v := range versions {
		fmt.Fprintf(&b, "<version>%s</version>", v)
	}
	b.WriteString("</versions></versioning></metadata>")
	return b.String()
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/architectury.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{
  "definitions": {
    "loom": {"filter": "^1\\.6\\.", "pom": "%[1]s/dev/architectury/architectury-loom/maven-metadata.xml"},
    "plugin": {"filter": "^3\\.4\\.", "pom": "%[1]s/architectury-plugin/architectury-plugin.gradle.plugin/maven-metadata.xml"},
    "injectables": {"filter": ".*", "pom": "%[1]s/dev/architectury/architectury-injectables/maven-metadata.xml"}
  },
  "versions": {
    "1.20.1": {
      "api": {"filter": "^9\\.", "pom": "%[1]s/dev/architectury/architectury/maven-metadata.xml"},
      "plugin": "@plugin", "loom": "@loom", "injectables": "@injectables"
    },
    "1.20.4": {
      "stable": true,
      "api": {"filter": "^11\\.", "pom": "%[1]s/dev/architectury/architectury/maven-metadata.xml"},
      "plugin": "@plugin", "loom": "@loom", "injectables": "@injectables"
    }
  }
}`, server.URL)
	})
	mux.HandleFunc("/dev/architectury/architectury-loom/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata("dev.architectury", "architectury-loom", "1.5.388", "1.6.397")))
	})
	mux.HandleFunc("/architectury-plugin/architectury-plugin.gradle.plugin/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata("architectury-plugin", "architectury-plugin.gradle.plugin", "3.4.146", "3.4.151")))
	})
	mux.HandleFunc("/dev/architectury/architectury/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata("dev.architectury", "architectury", "9.1.12", "9.2.14", "11.1.17")))
	})
	mux.HandleFunc("/dev/architectury/architectury-injectables/maven-metadata.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata("dev.architectury", "architectury-injectables", "1.0.8", "1.0.10")))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Setenv("ARCHVERSIONS_MAX_RETRIES", "0")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestShow_Table(t *testing.T) {
	server := newServer(t)

	out, err := run(t, "--catalog-url", server.URL+"/architectury.json")
	require.NoError(t, err)

	for _, want := range []string{"Architectury Loom", "Architectury Plugin", "Architectury API", "Injectables", "1.6.397", "3.4.151", "11.1.17", "1.0.10"} {
		assert.Contains(t, out, want)
	}
}

func TestShow_JSON(t *testing.T) {
	server := newServer(t)

	out, err := run(t, "--catalog-url", server.URL+"/architectury.json", "--json", "1.20.1")
	require.NoError(t, err)

	var report struct {
		Key   string `json:"key"`
		Slots []struct {
			Slot   string `json:"slot"`
			Latest string `json:"latest"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "1.20.1", report.Key)
	require.Len(t, report.Slots, 4)
	assert.Equal(t, "api", report.Slots[2].Slot)
	assert.Equal(t, "9.2.14", report.Slots[2].Latest)
}

func TestShow_UnknownVersionFallsBack(t *testing.T) {
	server := newServer(t)

	out, err := run(t, "--catalog-url", server.URL+"/architectury.json", "--json", "1.7.10")
	require.NoError(t, err)
	assert.Contains(t, out, `"key": "1.20.4"`)
}

func TestShow_UnknownVersionStrict(t *testing.T) {
	server := newServer(t)
	t.Setenv("ARCHVERSIONS_FALLBACK_TO_STABLE", "false")

	_, err := run(t, "--catalog-url", server.URL+"/architectury.json", "1.7.10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, archversions.ErrUnknownGameVersion))
}

func TestShow_CatalogNotFound(t *testing.T) {
	server := newServer(t)

	_, err := run(t, "--catalog-url", server.URL+"/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, archversions.ErrNotFound))
}

func TestVersions(t *testing.T) {
	server := newServer(t)

	out, err := run(t, "versions", "--catalog-url", server.URL+"/architectury.json", "--json")
	require.NoError(t, err)

	var rows []entryRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "1.20.1", rows[0].Key)
	assert.False(t, rows[0].Stable)
	assert.Equal(t, "inline", rows[0].Slots["api"])
	assert.Equal(t, "@loom", rows[0].Slots["loom"])
	assert.Equal(t, "1.20.4", rows[1].Key)
	assert.True(t, rows[1].Default)
}

func TestVersions_Table(t *testing.T) {
	server := newServer(t)

	out, err := run(t, "versions", "--catalog-url", server.URL+"/architectury.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Game version")
	assert.Contains(t, out, "1.20.1")
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "@plugin")
}

func TestRenderReport_MissingVersion(t *testing.T) {
	v := archversions.Version{Components: []uint32{1, 0}}
	report := &archversions.Report{Slots: []archversions.SlotResult{
		{Slot: archversions.SlotLoom, Latest: &v},
		{Slot: archversions.SlotPlugin},
	}}

	out := renderReport(report)
	assert.Contains(t, out, "1.0")
	assert.Equal(t, 3, strings.Count(out, "none"))
}
