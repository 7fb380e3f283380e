// Package version carries build metadata for the hwseed CLI.
//
// Values are overridden at build time with -ldflags:
//
//	go build -ldflags "\
//	  -X 'github.com/slashdevops/hwseed/internal/version.Version=1.0.0' \
//	  -X 'github.com/slashdevops/hwseed/internal/version.GitCommit=$(git rev-parse HEAD)'"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// devVersion marks a binary built without ldflags.
const devVersion = "0.0.0"

var (
	// Version is the release version.
	Version = devVersion

	// BuildDate is the build timestamp in RFC 3339.
	BuildDate = "1970-01-01T00:00:00Z"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = ""

	// GitBranch is the branch the binary was built from.
	GitBranch = ""

	// GoVersion is the Go toolchain version.
	GoVersion = runtime.Version()
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns "<app> version: <version>". Development builds report the
// module version recorded by the Go toolchain when available.
func Short(app string) string {
	return fmt.Sprintf("%s version: %s", app, resolved())
}

// Long returns the version together with commit, branch, build date and Go
// version.
func Long(app string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s version: %s, ", app, resolved())

	commit := GitCommit
	if Version == devVersion {
		if info, ok := readBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && commit == "" {
					commit = s.Value
				}
			}
		}
	}

	fmt.Fprintf(&sb, "Git commit: %s, ", commit)
	fmt.Fprintf(&sb, "Git branch: %s, ", GitBranch)
	fmt.Fprintf(&sb, "Build date: %s, ", BuildDate)
	fmt.Fprintf(&sb, "Go version: %s", GoVersion)

	return sb.String()
}

func resolved() string {
	if Version != devVersion {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return Version
}
