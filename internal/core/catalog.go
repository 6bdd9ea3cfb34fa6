package core

import "slices"

// Stable returns the first entry, in document order, that is marked stable.
func (c *Catalog) Stable() (*GameVersionEntry, error) {
	for _, key := range c.order {
		if e := c.entries[key]; e.Stable {
			return e, nil
		}
	}
	return nil, &LookupError{Err: ErrNoStableEntry}
}

// Resolve returns the definition a reference points at. Inline references
// always resolve; named references report false when the name is unknown.
// A nil reference, including a typed nil pointer, does not resolve.
func (c *Catalog) Resolve(ref VersionReference) (*VersionDefinition, bool) {
	switch r := ref.(type) {
	case InlineReference:
		return &r.Definition, true
	case *InlineReference:
		if r == nil {
			return nil, false
		}
		return &r.Definition, true
	case NamedReference:
		def, ok := c.definitions[r.Name]
		return def, ok
	case *NamedReference:
		if r == nil {
			return nil, false
		}
		def, ok := c.definitions[r.Name]
		return def, ok
	}
	return nil, false
}

// ResolveSlot is like Resolve but reports an unknown name as a *LookupError
// wrapping ErrUnknownDefinition.
func (c *Catalog) ResolveSlot(ref VersionReference) (*VersionDefinition, error) {
	def, ok := c.Resolve(ref)
	if !ok {
		return nil, &LookupError{Name: referenceName(ref), Err: ErrUnknownDefinition}
	}
	return def, nil
}

func referenceName(ref VersionReference) string {
	switch r := ref.(type) {
	case nil:
		return ""
	case *InlineReference:
		if r == nil {
			return ""
		}
	case *NamedReference:
		if r == nil {
			return ""
		}
	}
	return ref.String()
}

// Entry returns the entry for a game version key.
func (c *Catalog) Entry(key string) (*GameVersionEntry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Keys returns the game version keys in document order.
func (c *Catalog) Keys() []string {
	return slices.Clone(c.order)
}

// Definition returns a shared definition by name.
func (c *Catalog) Definition(name string) (*VersionDefinition, bool) {
	def, ok := c.definitions[name]
	return def, ok
}

// DefinitionNames returns the shared definition names in document order.
func (c *Catalog) DefinitionNames() []string {
	return slices.Clone(c.defOrder)
}

// SelectEntry picks the entry for key. An empty key selects the stable
// entry. An unknown key selects the stable entry when fallback is set and is
// a *LookupError wrapping ErrUnknownGameVersion otherwise.
func SelectEntry(c *Catalog, key string, fallback bool) (*GameVersionEntry, error) {
	if key == "" {
		return c.Stable()
	}
	if e, ok := c.Entry(key); ok {
		return e, nil
	}
	if fallback {
		return c.Stable()
	}
	return nil, &LookupError{Name: key, Err: ErrUnknownGameVersion}
}
