// Package all imports all supported version sources.
//
// Import this package for its side effects to register every source:
//
//	import (
//		"github.com/git-pkgs/archversions"
//		_ "github.com/git-pkgs/archversions/all"
//	)
//
//	// Now all sources are available
//	sources := archversions.SupportedSources()
//	// ["maven"]
package all

import (
	_ "github.com/git-pkgs/archversions/internal/maven"
)
