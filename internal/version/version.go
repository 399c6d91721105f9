// Package version holds build-time version information for safefr and hexfind.
//
// Build with ldflags to set version info:
//
//	go build -ldflags "-X github.com/timmattison/safefr/internal/version.GitHash=$(git rev-parse --short=7 HEAD) \
//	                   -X github.com/timmattison/safefr/internal/version.GitDirty=$(if git diff --quiet 2>/dev/null; then echo clean; else echo dirty; fi) \
//	                   -X github.com/timmattison/safefr/internal/version.Version=0.1.0" ./cmd/...
package version

import "fmt"

// Plain `go build` keeps these defaults, release builds override them with ldflags
var (
	// Version is the semantic version (e.g., "0.1.0")
	Version = "0.1.0"
	// GitHash is the short git commit hash (e.g., "abc1234"), "unknown" without ldflags
	GitHash = "unknown"
	// GitDirty is "dirty", "clean", or "unknown"
	GitDirty = "unknown"
)

// String returns a formatted version string for the given tool name.
// Format: "safefr 0.1.0 (abc1234, clean)"
func String(toolName string) string {
	return fmt.Sprintf("%s %s", toolName, Short())
}

// Short returns just the version info without tool name.
// Format: "0.1.0 (abc1234, clean)"
func Short() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitHash, GitDirty)
}
