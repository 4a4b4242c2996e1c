package pathref

import "strings"

// ExtensionOf derives the canonical lowercase extension of a display name. A
// query string is dropped, then at most one auxiliary suffix (.gz, or else
// .txt, .tab, .bgz), so "sample.vcf.gz?token=1" yields "vcf". A name without a
// dot is its own extension. The empty name yields "".
func ExtensionOf(name string) string {
	if name == "" {
		return ""
	}

	filename := strings.ToLower(name)

	// Strip parameters
	if i := strings.Index(filename, "?"); i > 0 {
		filename = filename[:i]
	}

	// Strip aux extensions
	if strings.HasSuffix(filename, ".gz") {
		filename = filename[:len(filename)-3]
	} else if strings.HasSuffix(filename, ".txt") || strings.HasSuffix(filename, ".tab") || strings.HasSuffix(filename, ".bgz") {
		filename = filename[:len(filename)-4]
	}

	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}

	return filename
}

// Extension is ExtensionOf for an optional path; nil yields "".
func Extension(p *Path) string {
	if p == nil {
		return ""
	}

	return p.Extension()
}
