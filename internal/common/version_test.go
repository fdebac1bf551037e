package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildInfo_String(t *testing.T) {
	b := BuildInfo{Version: "1.2.3", Build: "2026-10-18", Commit: "abc1234"}
	if got := b.String(); got != "1.2.3 (build: 2026-10-18, commit: abc1234)" {
		t.Errorf("String() = %q", got)
	}
}

func restoreVersion(t *testing.T) {
	t.Helper()
	oldVersion, oldBuild, oldCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = oldVersion, oldBuild, oldCommit })
}

func TestLoadVersionFile_OnlyFillsDefaults(t *testing.T) {
	restoreVersion(t)
	Version, Build, GitCommit = "dev", "2026-01-01", "unknown"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# generated\nversion: 1.2.3\nbuild: 2026-10-18\ncommit: abc1234\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write version file: %v", err)
	}

	loadVersionFile(path)

	got := CurrentBuild()
	if got.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", got.Version, "1.2.3")
	}
	if got.Build != "2026-01-01" {
		t.Errorf("Build = %q, want ldflags value kept", got.Build)
	}
	if got.Commit != "abc1234" {
		t.Errorf("Commit = %q, want %q", got.Commit, "abc1234")
	}
}

func TestLoadVersionFile_MissingOrMalformed(t *testing.T) {
	restoreVersion(t)
	Version = "dev"

	dir := t.TempDir()
	loadVersionFile(filepath.Join(dir, "missing"))

	bad := filepath.Join(dir, ".version")
	if err := os.WriteFile(bad, []byte("version: [unterminated"), 0644); err != nil {
		t.Fatalf("write version file: %v", err)
	}
	loadVersionFile(bad)

	if Version != "dev" {
		t.Errorf("Version = %q, want unchanged %q", Version, "dev")
	}
}
