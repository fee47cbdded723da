// Package version carries build metadata injected with -ldflags:
//
//	go build -ldflags "-X github.com/HerbHall/promptrelay/internal/version.Version=1.2.0 \
//	  -X github.com/HerbHall/promptrelay/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a one-line description of the build.
func Info() string {
	return fmt.Sprintf("relay %s (commit %s, built %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
