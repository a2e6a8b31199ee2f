package sendcloud

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version information for the sendcloud library. Version is injected at
// build time via ldflags; the value below is the development fallback.
var Version = "dev"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version of the library.
	Version string `json:"version"`

	// GoVersion is the Go version used for building.
	GoVersion string `json:"go_version"`

	// Platform is the target platform (GOOS/GOARCH).
	Platform string `json:"platform"`

	// ModulePath is the module path from build info, when available.
	ModulePath string `json:"module_path,omitempty"`
}

// GetVersionInfo returns the library's version information, filling in
// module details from the embedded build info when available.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range build.Deps {
			if dep.Path == "github.com/etsoo/sendcloud-go" {
				info.ModulePath = dep.Path
				if Version == "dev" && dep.Version != "" {
					info.Version = dep.Version
				}
				break
			}
		}
	}

	return info
}

// String returns a human-readable version string.
func (v VersionInfo) String() string {
	return fmt.Sprintf("sendcloud %s (%s, %s)", v.Version, v.GoVersion, v.Platform)
}
