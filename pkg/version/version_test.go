package version

import "testing"

func TestInfoString(t *testing.T) {
	i := Info{Version: "v1.2.3", GitCommit: "abcdefg", BuildTime: "2026-01-01T00:00:00Z"}
	want := "v1.2.3 (commit: abcdefg, built: 2026-01-01T00:00:00Z)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDetectFallback(t *testing.T) {
	// Under `go test`, build info carries no VCS settings, so Detect must
	// fall back to its "dev"/"unknown" defaults rather than panicking.
	i := Detect()
	if i.Version == "" || i.GitCommit == "" || i.BuildTime == "" {
		t.Errorf("Detect() left a field empty: %+v", i)
	}
}
