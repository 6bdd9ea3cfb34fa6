package core

import (
	"encoding/json"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// ParseCatalog decodes a raw JSON catalog document. Object key order is
// kept, so "the first stable entry" follows the document.
func ParseCatalog(data []byte) (*Catalog, error) {
	doc := orderedmap.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &DecodeError{Path: "$", Reason: "invalid JSON document", Err: err}
	}
	return Decode(doc)
}

// Decode builds a catalog from a JSON-shaped tree. Objects may be
// *orderedmap.OrderedMap (key order kept) or map[string]any (keys visited in
// sorted order). The first problem found aborts decoding.
func Decode(document any) (*Catalog, error) {
	root, ok := asObject(document)
	if !ok {
		return nil, &DecodeError{Path: "$", Reason: "expected an object, got " + kindOf(document)}
	}

	rawDefs, ok := root.get("definitions")
	if !ok {
		return nil, &DecodeError{Path: "$.definitions", Reason: "missing required field"}
	}
	defOrder, defs, err := decodeMap("$.definitions", rawDefs, func(path, _ string, v any) (*VersionDefinition, error) {
		return decodeDefinition(path, v)
	})
	if err != nil {
		return nil, err
	}

	rawVersions, ok := root.get("versions")
	if !ok {
		return nil, &DecodeError{Path: "$.versions", Reason: "missing required field"}
	}
	order, entries, err := decodeMap("$.versions", rawVersions, decodeEntry)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		definitions: defs,
		defOrder:    defOrder,
		entries:     entries,
		order:       order,
	}, nil
}

// decodeMap decodes every value of an object with decode and returns the
// keys in visiting order alongside the decoded values.
func decodeMap[V any](path string, raw any, decode func(path, key string, value any) (V, error)) ([]string, map[string]V, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, nil, &DecodeError{Path: path, Reason: "expected an object, got " + kindOf(raw)}
	}

	keys := slices.Clone(obj.keys)
	result := make(map[string]V, len(keys))
	for _, key := range keys {
		value, _ := obj.get(key)
		decoded, err := decode(indexPath(path, key), key, value)
		if err != nil {
			return nil, nil, err
		}
		result[key] = decoded
	}
	return keys, result, nil
}

func decodeDefinition(path string, raw any) (*VersionDefinition, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, &DecodeError{Path: path, Reason: "expected an object, got " + kindOf(raw)}
	}

	pattern, err := requireString(obj, path, "filter")
	if err != nil {
		return nil, err
	}
	filter, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &DecodeError{Path: path + ".filter", Reason: "invalid pattern", Err: err}
	}

	locatorField := "pom"
	if _, ok := obj.get(locatorField); !ok {
		if _, ok := obj.get("locator"); ok {
			locatorField = "locator"
		}
	}
	locator, err := requireString(obj, path, locatorField)
	if err != nil {
		return nil, err
	}

	return &VersionDefinition{Filter: filter, Locator: locator}, nil
}

func decodeReference(path string, raw any) (VersionReference, error) {
	if s, ok := raw.(string); ok {
		name, found := strings.CutPrefix(s, "@")
		if !found {
			return nil, &DecodeError{Path: path, Reason: "reference " + strconv.Quote(s) + " does not start with @"}
		}
		return NamedReference{Name: name}, nil
	}

	if _, ok := asObject(raw); !ok {
		return nil, &DecodeError{Path: path, Reason: "expected an object or an @reference, got " + kindOf(raw)}
	}
	def, err := decodeDefinition(path, raw)
	if err != nil {
		return nil, err
	}
	return InlineReference{Definition: *def}, nil
}

func decodeEntry(path, key string, raw any) (*GameVersionEntry, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, &DecodeError{Path: path, Reason: "expected an object, got " + kindOf(raw)}
	}

	entry := &GameVersionEntry{Key: key}
	if v, ok := obj.get("stable"); ok {
		stable, ok := v.(bool)
		if !ok {
			return nil, &DecodeError{Path: path + ".stable", Reason: "expected a boolean, got " + kindOf(v)}
		}
		entry.Stable = stable
	}

	slots := []struct {
		name string
		dst  *VersionReference
	}{
		{"api", &entry.API},
		{"plugin", &entry.Plugin},
		{"loom", &entry.Loom},
		{"injectables", &entry.Injectables},
	}
	for _, slot := range slots {
		v, ok := obj.get(slot.name)
		if !ok {
			return nil, &DecodeError{Path: path + "." + slot.name, Reason: "missing required field"}
		}
		ref, err := decodeReference(path+"."+slot.name, v)
		if err != nil {
			return nil, err
		}
		*slot.dst = ref
	}

	return entry, nil
}

func requireString(obj object, path, field string) (string, error) {
	v, ok := obj.get(field)
	if !ok {
		return "", &DecodeError{Path: path + "." + field, Reason: "missing required field"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &DecodeError{Path: path + "." + field, Reason: "expected a string, got " + kindOf(v)}
	}
	return s, nil
}

// object is a read-only view over the map types a decoded document can hold.
type object struct {
	keys []string
	get  func(key string) (any, bool)
}

func asObject(v any) (object, bool) {
	switch m := v.(type) {
	case *orderedmap.OrderedMap:
		if m == nil {
			return object{}, false
		}
		return object{keys: m.Keys(), get: m.Get}, true
	case orderedmap.OrderedMap:
		return object{keys: m.Keys(), get: m.Get}, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return object{keys: keys, get: func(key string) (any, bool) {
			v, ok := m[key]
			return v, ok
		}}, true
	}
	return object{}, false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	}
	if _, ok := asObject(v); ok {
		return "object"
	}
	return "unsupported value"
}

func indexPath(path, key string) string {
	return path + "[" + strconv.Quote(key) + "]"
}
