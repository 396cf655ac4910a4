// Package vars holds build information injected at link time.
package vars

import (
	"fmt"
	"runtime"
)

// Build information, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	URL     = "https://github.com/sjbouwman/silhouette-tool"
)

// Print writes the version information to stdout.
func Print() {
	fmt.Printf("silhouette-tool %s\n", Version)
	fmt.Printf("commit:  %s\n", Commit)
	fmt.Printf("built:   %s\n", Date)
	fmt.Printf("runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("project: %s\n", URL)
}
