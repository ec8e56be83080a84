// Package buildinfo reports the nameplate version.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/nameplate/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/nameplate/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds fall back to the VCS settings recorded by the Go
// toolchain, so `go install` binaries still report their commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var fill sync.Once

// resolve copies vcs.revision and vcs.time from the embedded build info
// into Commit and Date when ldflags left them empty.
func resolve() {
	fill.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if Commit == "" && len(s.Value) >= 7 {
					Commit = s.Value[:7]
				}
			case "vcs.time":
				if Date == "" {
					Date = s.Value
				}
			}
		}
	})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// String returns version, commit and build date on separate lines.
func String() string {
	resolve()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, orUnknown(Commit), orUnknown(Date))
}

// Template is the cobra version template for the root command.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// UserAgent is the product token sent in the Server header and shown in
// the page footer.
func UserAgent() string {
	resolve()
	return "nameplate/" + Version
}
