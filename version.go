package bombrisk

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the module version.
func Version() string {
	return strings.TrimSpace(version)
}
