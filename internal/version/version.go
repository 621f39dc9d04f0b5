// Package version reports the build's version for --version output and the
// LSP serverInfo.
package version

import (
	"runtime/debug"
)

// Set with -ldflags "-X bennypowers.dev/sls/internal/version.Version=v1.0.0"
var (
	Version = ""
	Commit  = ""
)

// build describes a binary from its module version and VCS stamp
type build struct {
	version  string
	revision string
	modified bool
}

func (b build) String() string {
	v := b.version
	if v == "" || v == "(devel)" {
		v = "dev"
	}
	if b.modified {
		v += "-dirty"
	}
	return v
}

// current merges ldflags values over what the Go toolchain stamped into the
// binary
func current() build {
	var b build
	if info, ok := debug.ReadBuildInfo(); ok {
		b = fromBuildInfo(info)
	}
	if Version != "" {
		b.version, b.modified = Version, false
	}
	if Commit != "" {
		b.revision = Commit
	}
	return b
}

func fromBuildInfo(info *debug.BuildInfo) build {
	b := build{version: info.Main.Version}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.revision = s.Value
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
}

// GetVersion returns the version string, "dev" for untagged builds
func GetVersion() string {
	return current().String()
}

// GetFullVersion returns the version followed by the short commit hash,
// when one is known
func GetFullVersion() string {
	b := current()
	if b.revision == "" {
		return b.String()
	}
	rev := b.revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return b.String() + " (" + rev + ")"
}
