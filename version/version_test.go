package version

import (
	"strings"
	"testing"
)

func TestGetVersionInfo_Defaults(t *testing.T) {
	info := GetVersionInfo()

	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.IsRelease {
		t.Error("dev build reported as release")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime not populated")
	}
}

func TestGetVersionInfo_ReleaseDetection(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.4.0"
	if !GetVersionInfo().IsRelease {
		t.Error("tagged version not reported as release")
	}

	Version = "1.4.0-dirty"
	if GetVersionInfo().IsRelease {
		t.Error("dirty version reported as release")
	}
}

func TestGetShortVersion(t *testing.T) {
	short := GetShortVersion()
	if !strings.HasPrefix(short, Version) {
		t.Errorf("GetShortVersion() = %q, want %q prefix", short, Version)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit = %q, want 0123456", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit = %q, want abc", got)
	}
}
