package trackload

import (
	"os/user"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Skip(err)
	}

	cases := map[string]string{
		"~":                 usr.HomeDir,
		"~/manifest.tsv":    filepath.Join(usr.HomeDir, "manifest.tsv"),
		"/data/~/file.json": "/data/~/file.json",
		"~other/file.json":  "~other/file.json",
		"relative.json":     "relative.json",
	}

	for input, expected := range cases {
		if got := ExpandHome(input); got != expected {
			t.Errorf("ExpandHome(%q): expected %q, got %q", input, expected, got)
		}
	}
}
