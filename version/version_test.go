package version

import (
	"strings"
	"testing"
)

func pin(t *testing.T, version, commit, branch, buildTime, goVersion string) {
	t.Helper()
	origVersion, origCommit, origBranch, origBuildTime, origGoVersion :=
		Version, GitCommit, GitBranch, BuildTime, GoVersion
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion =
			origVersion, origCommit, origBranch, origBuildTime, origGoVersion
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = version, commit, branch, buildTime, goVersion
}

func TestGetVersionInfo(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildTime string
		release   bool
		year      int
	}{
		{"dev", "dev", "", false, 0},
		{"release", "1.0.0", "2024-01-15T10:30:00Z", true, 2024},
		{"dirty", "1.0.0-dirty", "", false, 0},
		{"bad build time", "1.2.0", "yesterday", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pin(t, tc.version, "abc1234", "main", tc.buildTime, "go1.25.0")
			info := GetVersionInfo()
			if info.Version != tc.version {
				t.Errorf("Version = %q", info.Version)
			}
			if info.IsRelease != tc.release {
				t.Errorf("IsRelease = %v", info.IsRelease)
			}
			if info.GitCommit != "abc1234" || info.GoVersion != "go1.25.0" {
				t.Errorf("ldflags values must win: %+v", info)
			}
			if tc.year != 0 && info.BuildDate.Year() != tc.year {
				t.Errorf("BuildDate = %v", info.BuildDate)
			}
		})
	}
}

func TestGetShortVersion(t *testing.T) {
	pin(t, "1.0.0", "abc1234", "", "2024-01-01T00:00:00Z", "go1.25")
	if sv := GetShortVersion(); !strings.HasPrefix(sv, "1.0.0-abc1234") {
		t.Errorf("GetShortVersion = %q", sv)
	}
}

func TestGetFullVersion(t *testing.T) {
	t.Run("main branch hidden", func(t *testing.T) {
		pin(t, "1.0.0", "abc1234", "main", "2024-01-15T10:30:00Z", "go1.25")
		fv := GetFullVersion()
		if !strings.HasPrefix(fv, "1.0.0-abc1234") || strings.Contains(fv, "main") {
			t.Errorf("GetFullVersion = %q", fv)
		}
		if !strings.Contains(fv, "(built 2024-01-15T10:30:00Z)") {
			t.Errorf("missing build date: %q", fv)
		}
	})
	t.Run("feature branch shown", func(t *testing.T) {
		pin(t, "1.0.0", "abc1234", "feature/vad", "", "go1.25")
		if fv := GetFullVersion(); !strings.Contains(fv, "feature/vad") {
			t.Errorf("GetFullVersion = %q", fv)
		}
	})
}

func TestUserAgent(t *testing.T) {
	pin(t, "2.1.0", "deadbee", "", "", "go1.25")
	if ua := UserAgent(); !strings.HasPrefix(ua, "localai-stt/2.1.0-deadbee") {
		t.Errorf("UserAgent = %q", ua)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit = %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit = %q", got)
	}
}
