package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Build   string `json:"build" yaml:"build"`
	Commit  string `json:"commit" yaml:"commit"`
}

// CurrentBuild returns the build info in effect.
func CurrentBuild() BuildInfo {
	return BuildInfo{Version: Version, Build: Build, Commit: GitCommit}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", b.Version, b.Build, b.Commit)
}

// LoadVersionFromFile reads a .version file next to the binary. Its values
// only fill fields still at their defaults, so ldflags win.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}
	loadVersionFile(filepath.Join(filepath.Dir(exe), ".version"))
}

func loadVersionFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var info BuildInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return
	}
	if Version == "dev" && info.Version != "" {
		Version = info.Version
	}
	if Build == "unknown" && info.Build != "" {
		Build = info.Build
	}
	if GitCommit == "unknown" && info.Commit != "" {
		GitCommit = info.Commit
	}
}
