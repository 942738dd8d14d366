package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, BuildDate
	Version, Commit, BuildDate = version, commit, date
	t.Cleanup(func() { Version, Commit, BuildDate = oldV, oldC, oldD })
}

func settings(kv ...string) *debug.BuildInfo {
	info := &debug.BuildInfo{}
	for i := 0; i+1 < len(kv); i += 2 {
		info.Settings = append(info.Settings, debug.BuildSetting{Key: kv[i], Value: kv[i+1]})
	}
	return info
}

func TestApplyBuildInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     *debug.BuildInfo
		wantV    string
		wantC    string
		wantDate string
	}{
		{
			name:     "clean checkout",
			info:     settings("vcs.revision", "0123456789abcdef", "vcs.time", "2026-03-04T05:06:07Z", "vcs.modified", "false"),
			wantV:    "dev-20260304",
			wantC:    "0123456",
			wantDate: "2026-03-04T05:06:07Z",
		},
		{
			name:  "dirty short revision",
			info:  settings("vcs.revision", "abc", "vcs.modified", "true"),
			wantC: "abc-dirty",
		},
		{
			name: "bad time",
			info: settings("vcs.time", "yesterday"),
		},
		{
			name: "no vcs",
			info: settings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVars(t, "", "", "")
			applyBuildInfo(tt.info)
			if Version != tt.wantV {
				t.Errorf("Version = %q, want %q", Version, tt.wantV)
			}
			if Commit != tt.wantC {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantC)
			}
			if BuildDate != tt.wantDate {
				t.Errorf("BuildDate = %q, want %q", BuildDate, tt.wantDate)
			}
		})
	}
}

func TestApplyBuildInfoKeepsLdflags(t *testing.T) {
	withVars(t, "v0.3.0", "feedbee", "")
	applyBuildInfo(settings("vcs.revision", "0123456789", "vcs.time", "2026-03-04T05:06:07Z"))

	if Version != "v0.3.0" || Commit != "feedbee" {
		t.Errorf("ldflags values overwritten: %q %q", Version, Commit)
	}
	if BuildDate != "2026-03-04T05:06:07Z" {
		t.Errorf("BuildDate = %q", BuildDate)
	}
}

func TestFullAndInfo(t *testing.T) {
	withVars(t, "v0.3.0", "feedbee", "")

	if got := Full(); got != "v0.3.0 (commit: feedbee)" {
		t.Errorf("Full() = %q", got)
	}
	info := Info()
	if info.Version != "v0.3.0" || info.Commit != "feedbee" {
		t.Errorf("Info() = %+v", info)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q", info.Platform)
	}
}
