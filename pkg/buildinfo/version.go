// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/archlens/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/archlens/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/archlens/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/archlens
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies archlens in outgoing HTTP requests, e.g.
// "archlens/v0.3.0 (+a1b2c3d)".
func UserAgent() string {
	return fmt.Sprintf("archlens/%s (+%s)", Version, Commit)
}
