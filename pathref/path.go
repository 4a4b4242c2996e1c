// Package pathref describes the files a user selects for loading: local files,
// remote URLs, and cloud provider references such as Google Drive items.
package pathref

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind tags the variant held by a Path.
type Kind byte

const (
	LocalFile Kind = iota
	RemoteURL
	CloudRef
)

var kindNames = map[Kind]string{
	LocalFile: "local",
	RemoteURL: "url",
	CloudRef:  "cloud",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", byte(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown path kind %d", byte(k))
	}

	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for candidate, name := range kindNames {
		if name == string(text) {
			*k = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown path kind %q", string(text))
}

// Path is one user-selected item. Handle is the local file handle, the remote
// URL, or the provider URL, depending on Kind. Label is the display name of a
// cloud reference; it is empty until resolved.
type Path struct {
	Kind   Kind   `json:"kind"`
	Handle string `json:"url"`
	Label  string `json:"name,omitempty"`
}

// Local returns a reference to a file on the local filesystem.
func Local(handle string) Path {
	return Path{Kind: LocalFile, Handle: handle}
}

// URL returns a reference to a remote file (http, https, gs, Dropbox links).
func URL(u string) Path {
	return Path{Kind: RemoteURL, Handle: u}
}

// Cloud returns a reference to a cloud provider item. displayName may be
// empty, in which case the reference must be resolved before matching.
func Cloud(displayName, providerURL string) Path {
	return Path{Kind: CloudRef, Handle: providerURL, Label: displayName}
}

// Parse classifies a raw string typed or pasted by a user. Google Drive links
// become unresolved cloud references.
func Parse(raw string) Path {
	raw = strings.TrimSpace(raw)

	switch {
	case IsGoogleDrive(raw):
		return Cloud("", raw)
	case hasRemoteScheme(raw):
		return URL(raw)
	}

	return Local(raw)
}

// Pair builds a batch from a data location and an optional index location, as
// entered in a two-field URL dialog.
func Pair(data, index string) []Path {
	out := make([]Path, 0, 2)
	if strings.TrimSpace(data) != "" {
		out = append(out, Parse(data))
	}
	if strings.TrimSpace(index) != "" {
		out = append(out, Parse(index))
	}

	return out
}

func hasRemoteScheme(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "gs", "ftp", "s3":
		return true
	}

	return false
}

// Name is the display filename used for all matching.
func (p Path) Name() string {
	switch p.Kind {
	case LocalFile:
		if p.Handle == "" {
			return ""
		}
		return filepath.Base(p.Handle)
	case RemoteURL:
		return FilenameFromURL(p.Handle)
	case CloudRef:
		return p.Label
	}

	return ""
}

// Extension is the canonical extension of the display name.
func (p Path) Extension() string {
	return ExtensionOf(p.Name())
}

// Location is the value handed to the genome browser's loader: the local
// handle, the URL, or a direct download URL for Drive items.
func (p Path) Location() string {
	if p.Kind == CloudRef && IsGoogleDrive(p.Handle) {
		return DriveDownloadURL(p.Handle)
	}

	return p.Handle
}

// NeedsResolution reports whether the display name must be fetched from the
// cloud provider before the path can be matched.
func (p Path) NeedsResolution() bool {
	return p.Kind == CloudRef && p.Label == ""
}

// WithDisplayName returns a copy of a cloud reference carrying name.
func (p Path) WithDisplayName(name string) Path {
	p.Label = name
	return p
}

func (p Path) String() string {
	if p.Kind == CloudRef {
		return fmt.Sprintf("%s (%s)", p.Label, p.Handle)
	}

	return p.Handle
}

// FilenameFromURL returns the final path segment of u, ignoring any query
// string or fragment.
func FilenameFromURL(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")

	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}

	return u
}
