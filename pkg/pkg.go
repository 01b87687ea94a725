//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the module embedded at build time.
// It is printed by the CLI when users invoke the version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and the REPL history file name.
	Name = "ph"
	// Description is a short, human-readable summary of the project used
	// in help output and documentation.
	Description = "Parser and tree-walking interpreter for the ph language"
)

// VersionString returns the embedded version with surrounding whitespace
// trimmed.
func VersionString() string {
	return strings.TrimSpace(Version)
}
