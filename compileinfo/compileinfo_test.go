package compileinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	bare := CompileInfo{Package: "trackload", GoVersion: "go1.18"}
	if got := bare.String(); !strings.Contains(got, "no VCS information") {
		t.Errorf("Unexpected description %q", got)
	}

	dirty := CompileInfo{Package: "trackload", GoVersion: "go1.18", Commit: "abc123", CommitTime: "2022-04-12T00:00:00Z", Modified: true}
	if got := dirty.String(); !strings.Contains(got, "abc123") || !strings.HasSuffix(got, "with uncommitted changes") {
		t.Errorf("Unexpected description %q", got)
	}
}
