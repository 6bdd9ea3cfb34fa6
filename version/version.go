// Package version parses and orders artifact version strings.
//
// Version format: RELEASE[-SNAPSHOT]
//   - RELEASE: one or more dot-separated base-10 integers
//   - SNAPSHOT: everything after the first hyphen, kept verbatim
//
// Ordering compares the release components numerically, treating missing
// trailing components as zero. On a tie a release outranks any snapshot of the
// same numbers, and two snapshots compare lexicographically.
package version

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Version is a parsed version string.
type Version struct {
	Components  []uint32
	Snapshot    string
	HasSnapshot bool
}

// ParseError represents a version parsing error.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "bad version " + strconv.Quote(e.Input) + ": " + e.Reason
}

// Parse parses a version string into its components.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, &ParseError{Input: s, Reason: "empty version"}
	}

	var v Version
	base := s
	if before, after, found := strings.Cut(s, "-"); found {
		base = before
		v.Snapshot = after
		v.HasSnapshot = true
	}

	parts := strings.Split(base, ".")
	v.Components = make([]uint32, 0, len(parts))
	for _, part := range parts {
		// ParseUint rejects empty strings and sign prefixes.
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: "component " + strconv.Quote(part) + " is not a non-negative integer"}
		}
		v.Components = append(v.Components, uint32(n))
	}

	return v, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version in the form Parse accepts.
func (v Version) String() string {
	var b strings.Builder
	for i, c := range v.Components {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	if v.HasSnapshot {
		b.WriteByte('-')
		b.WriteString(v.Snapshot)
	}
	return b.String()
}

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b Version) int {
	n := max(len(a.Components), len(b.Components))
	for i := range n {
		if c := cmp.Compare(component(a, i), component(b, i)); c != 0 {
			return c
		}
	}

	// No snapshot > snapshot when the numbers are equal.
	if a.HasSnapshot != b.HasSnapshot {
		if a.HasSnapshot {
			return -1
		}
		return 1
	}
	if a.HasSnapshot {
		return strings.Compare(a.Snapshot, b.Snapshot)
	}
	return 0
}

func component(v Version, i int) uint32 {
	if i < len(v.Components) {
		return v.Components[i]
	}
	return 0
}

// Compare compares v with other, see Compare.
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Equal reports whether v and other order the same. "1.2" equals "1.2.0".
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Sort sorts versions in ascending order.
func Sort(versions []Version) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the greatest version and false if versions is empty.
// The last of several equal maxima wins, so ["1.2", "1.2.0"] yields "1.2.0".
func Max(versions ...Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	best := versions[0]
	for _, v := range versions[1:] {
		if Compare(v, best) >= 0 {
			best = v
		}
	}
	return best, true
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
