package reconcile

import (
	"strings"

	"github.com/carbocation/trackload/pathref"
	"github.com/carbocation/trackload/track"
)

// IndexRequirement names the index extension a data file is paired with and
// whether the pairing is mandatory.
type IndexRequirement struct {
	IndexExtension string
	Optional       bool
}

var conventions = map[string]IndexRequirement{
	"fa":    {IndexExtension: "fai", Optional: false},
	"fasta": {IndexExtension: "fai", Optional: false},
	"fna":   {IndexExtension: "fai", Optional: false},
	"bam":   {IndexExtension: "bai", Optional: false},
	"cram":  {IndexExtension: "crai", Optional: false},
	"gz":    {IndexExtension: "tbi", Optional: true},
	"bgz":   {IndexExtension: "tbi", Optional: true},
}

var anyIndex = IndexRequirement{IndexExtension: "idx", Optional: true}

var indexExtensions = map[string]struct{}{
	"fai":  {},
	"bai":  {},
	"crai": {},
	"tbi":  {},
	"idx":  {},
}

// RequirementFor looks up the index convention for the raw final suffix of a
// data file name ("gz" for sample.vcf.gz, not "vcf"). Unlisted suffixes admit
// an optional .idx index.
func RequirementFor(dataSuffix string) IndexRequirement {
	if req, ok := conventions[strings.ToLower(dataSuffix)]; ok {
		return req
	}

	return anyIndex
}

// IsIndexExtension reports whether ext is one of fai, bai, crai, tbi, idx.
func IsIndexExtension(ext string) bool {
	_, ok := indexExtensions[ext]
	return ok
}

// IsDataExtension reports whether ext names a loadable data file.
func IsDataExtension(ext string) bool {
	return track.IsKnownExtension(ext)
}

// rawSuffix is the text after the final dot, or the whole name without one.
func rawSuffix(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}

	return name
}

// CandidateIndexNames lists, in order of preference, the index file names
// that satisfy the data file name. Alignments accept both "sample.bam.bai"
// and the older "sample.bai". ok is false when name is not a data file.
func CandidateIndexNames(name string) (candidates []string, req IndexRequirement, ok bool) {
	ext := pathref.ExtensionOf(name)
	if !IsDataExtension(ext) {
		return nil, IndexRequirement{}, false
	}

	req = RequirementFor(rawSuffix(name))
	candidates = []string{name + "." + req.IndexExtension}

	if ext == "bam" || ext == "cram" {
		stem := name
		if i := strings.LastIndex(name, "."); i >= 0 {
			stem = name[:i]
		}
		candidates = append(candidates, stem+"."+req.IndexExtension)
	}

	return candidates, req, true
}
