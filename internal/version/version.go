// Package version reports build metadata set at link time, e.g.
//
//	go build -ldflags "-X github.com/information-sharing-networks/pid-validate/internal/version.Version=v1.2.0"
package version

import "runtime/debug"

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// Get returns the build metadata. When the commit was not set with -ldflags the VCS revision
// recorded by the Go toolchain is used, if any.
func Get() Info {
	info := Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}

	if info.GitCommit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					info.GitCommit = s.Value
				}
			}
		}
	}
	return info
}
