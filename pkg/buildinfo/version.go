// Package buildinfo carries version metadata stamped at build time.
package buildinfo

import "fmt"

// Stamped via -ldflags "-X github.com/jverhoef/cardrail/pkg/buildinfo.Version=v1.2.3"
// and the corresponding Commit and Date flags; untouched dev builds report
// "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build info for human output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
