package version

import (
	"fmt"
	"strings"
)

// Build metadata, set with -ldflags "-X github.com/pawafulu7/bonsai-cho-sub000/internal/version.Version=..."
var (
	App       = "Bonsai"
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	BuildOS   string
	BuildArch string
)

// String returns the one-line version banner
func String() string {
	s := fmt.Sprintf("%s version %s", App, getVersion())
	if commit := getShortCommit(); commit != "" {
		s += " (" + commit + ")"
	}
	return s
}

// PrintVersion prints the version information
func PrintVersion() {
	fmt.Print(details())
}

func details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s version %s\n", App, getVersion())
	if GitCommit != "" {
		fmt.Fprintf(&b, "Git commit: %s\n", getShortCommit())
	}
	if BuildTime != "" {
		fmt.Fprintf(&b, "Build time: %s\n", BuildTime)
	}
	if GoVersion != "" {
		fmt.Fprintf(&b, "Go version: %s\n", GoVersion)
	}
	if BuildOS != "" && BuildArch != "" {
		fmt.Fprintf(&b, "Built for: %s/%s\n", BuildOS, BuildArch)
	}
	return b.String()
}

func getShortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

func getVersion() string {
	if Version != "" {
		return Version
	}
	return "dev"
}
