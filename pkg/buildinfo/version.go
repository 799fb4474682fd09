// Package buildinfo carries the version stamped into quadart binaries.
//
// Release builds set the variables with the linker:
//
//	go build -ldflags "-X github.com/matzehuels/quadart/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/quadart/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/quadart
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	// go install builds carry a module version but no ldflags.
	if Version != "dev" {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
}

// UserAgent identifies quadart on outgoing requests.
func UserAgent() string {
	return "quadart/" + Version
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
