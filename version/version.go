// Package version describes the running binary from its embedded build information.
package version

import (
	"fmt"
	"runtime/debug"
)

const unavailable = "unavailable"

var readBuildInfo = debug.ReadBuildInfo

// FromBuildInfo prefers the module version of a "go install"ed binary and falls back to the VCS revision.
func FromBuildInfo() string {
	info, ok := readBuildInfo()
	if !ok {
		return unavailable
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision, ts string

	modified := false

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		case "vcs.modified":
			modified = info.Settings[i].Value == "true"
		default:
			continue
		}
	}

	if revision == "" {
		return unavailable
	}

	if modified {
		revision += "-dirty"
	}

	if ts == "" {
		return fmt.Sprintf("revision %s", revision)
	}

	return fmt.Sprintf("revision %s at %s", revision, ts)
}
