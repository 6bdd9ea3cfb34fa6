package core

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	return catalog
}

func TestCatalog_StableFirstInDocumentOrder(t *testing.T) {
	catalog := mustCatalog(t)

	// 1.20.4 and 1.19.2 are both stable; 1.20.4 comes first.
	for range 5 {
		entry, err := catalog.Stable()
		require.NoError(t, err)
		assert.Equal(t, "1.20.4", entry.Key)
	}
}

func TestCatalog_NoStableEntry(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`{"definitions": {}, "versions": {
		"1": {"api": "@a", "plugin": "@a", "loom": "@a", "injectables": "@a"}
	}}`))
	require.NoError(t, err)

	_, err = catalog.Stable()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStableEntry))

	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestCatalog_Resolve(t *testing.T) {
	catalog := mustCatalog(t)

	def, ok := catalog.Resolve(NamedReference{Name: "loom"})
	require.True(t, ok)
	assert.Equal(t, `^1\.6\.`, def.Filter.String())

	_, ok = catalog.Resolve(NamedReference{Name: "missing"})
	assert.False(t, ok)

	inline := InlineReference{Definition: VersionDefinition{
		Filter:  regexp.MustCompile("x"),
		Locator: "https://elsewhere.example/x.xml",
	}}
	def, ok = catalog.Resolve(inline)
	require.True(t, ok)
	assert.Equal(t, "https://elsewhere.example/x.xml", def.Locator)

	empty, err := Decode(map[string]any{"definitions": map[string]any{}, "versions": map[string]any{}})
	require.NoError(t, err)
	def, ok = empty.Resolve(inline)
	require.True(t, ok)
	assert.Equal(t, "https://elsewhere.example/x.xml", def.Locator)

	_, ok = catalog.Resolve(nil)
	assert.False(t, ok)
}

func TestCatalog_ResolvePointerReferences(t *testing.T) {
	catalog := mustCatalog(t)

	def, ok := catalog.Resolve(&NamedReference{Name: "loom"})
	require.True(t, ok)
	assert.Equal(t, `^1\.6\.`, def.Filter.String())

	var named *NamedReference
	var inline *InlineReference
	for _, ref := range []VersionReference{named, inline} {
		assert.NotPanics(t, func() {
			_, ok := catalog.Resolve(ref)
			assert.False(t, ok)
		})

		var err error
		assert.NotPanics(t, func() {
			_, err = catalog.ResolveSlot(ref)
		})
		assert.True(t, errors.Is(err, ErrUnknownDefinition))
	}
}

func TestCatalog_ResolveSlot(t *testing.T) {
	catalog := mustCatalog(t)
	entry, ok := catalog.Entry("1.21")
	require.True(t, ok)

	_, err := catalog.ResolveSlot(entry.API)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDefinition))

	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "@missing", lookupErr.Name)

	def, err := catalog.ResolveSlot(entry.Loom)
	require.NoError(t, err)
	assert.Equal(t, "https://maven.example/dev/architectury/architectury-loom/maven-metadata.xml", def.Locator)
}

func TestCatalog_KeysAreCopies(t *testing.T) {
	catalog := mustCatalog(t)

	keys := catalog.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "1.20.1", catalog.Keys()[0])

	names := catalog.DefinitionNames()
	names[0] = "mutated"
	assert.Equal(t, "loom", catalog.DefinitionNames()[0])
}

func TestSelectEntry(t *testing.T) {
	catalog := mustCatalog(t)

	tests := []struct {
		name     string
		key      string
		fallback bool
		want     string
		wantErr  error
	}{
		{"explicit key", "1.20.1", false, "1.20.1", nil},
		{"empty key picks stable", "", false, "1.20.4", nil},
		{"unknown key falls back", "1.7.10", true, "1.20.4", nil},
		{"unknown key strict", "1.7.10", false, "", ErrUnknownGameVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := SelectEntry(catalog, tt.key, tt.fallback)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Key)
		})
	}
}

func TestGameVersionEntry_Slot(t *testing.T) {
	entry := &GameVersionEntry{
		API:         NamedReference{Name: "api"},
		Plugin:      NamedReference{Name: "plugin"},
		Loom:        NamedReference{Name: "loom"},
		Injectables: NamedReference{Name: "injectables"},
	}

	for _, slot := range Slots {
		assert.Equal(t, "@"+slot.String(), entry.Slot(slot).String())
	}
	assert.Nil(t, entry.Slot(Slot(42)))
}

func TestSlotNames(t *testing.T) {
	assert.Equal(t, []Slot{SlotLoom, SlotPlugin, SlotAPI, SlotInjectables}, Slots)
	assert.Equal(t, "Architectury Loom", SlotLoom.Title())
	assert.Equal(t, "Injectables", SlotInjectables.Title())
	assert.Equal(t, "unknown", Slot(-1).String())
	assert.Equal(t, "Unknown", Slot(9).Title())
}
