// Package compileinfo reports the toolchain and VCS revision a binary was
// built from.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string `json:"package"`
	GoVersion  string `json:"go_version"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
}

func (c CompileInfo) String() string {
	if c.Commit == "" {
		return fmt.Sprintf("%s built with %s (no VCS information)", c.Package, c.GoVersion)
	}

	mod := ""
	if c.Modified {
		mod = " with uncommitted changes"
	}

	return fmt.Sprintf("%s built with %s at commit %s (%s)%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Get reads the build information embedded by the go command. Binaries built
// outside module mode get a zero value.
func Get() CompileInfo {
	out := CompileInfo{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = bi.GoVersion
	out.Package = bi.Path
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}
