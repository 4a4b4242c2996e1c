// Package track infers file formats and track types and defines the
// configuration handed to the genome browser's track loader.
package track

import "strings"

var knownFileExtensions = map[string]struct{}{
	"narrowpeak":  {},
	"broadpeak":   {},
	"regionpeak":  {},
	"peaks":       {},
	"bedpe":       {},
	"gappedpeak":  {},
	"tagalign":    {},
	"gff":         {},
	"gff3":        {},
	"gtf":         {},
	"bed":         {},
	"bedgraph":    {},
	"wig":         {},
	"tdf":         {},
	"gwas":        {},
	"vcf":         {},
	"seg":         {},
	"bam":         {},
	"cram":        {},
	"bigwig":      {},
	"bw":          {},
	"bigbed":      {},
	"bb":          {},
	"biginteract": {},
	"interact":    {},
	"bp":          {},
	"refflat":     {},
	"refgene":     {},
	"genepred":    {},
	"genepredext": {},
	"maf":         {},
	"mut":         {},
	"psl":         {},
	"rmsk":        {},
	"snp":         {},
	"fa":          {},
	"fasta":       {},
	"fna":         {},
}

var sequenceFormats = map[string]struct{}{
	"fa":    {},
	"fasta": {},
	"fna":   {},
}

// Formats that can be read end to end when no index accompanies them.
var indexableFormats = map[string]struct{}{
	"vcf":      {},
	"bed":      {},
	"gff":      {},
	"gtf":      {},
	"gff3":     {},
	"bedgraph": {},
}

var refGeneSuffixes = []string{
	"refgene.txt.gz",
	"refgene.txt.bgz",
	"refgene.txt",
	"refgene.sorted.txt.gz",
	"refgene.sorted.txt.bgz",
}

// IsKnownExtension reports whether ext names a loadable data file, reference
// sequences included.
func IsKnownExtension(ext string) bool {
	_, ok := knownFileExtensions[ext]
	return ok
}

// IsSequenceFormat reports whether format is a FASTA reference sequence.
func IsSequenceFormat(format string) bool {
	_, ok := sequenceFormats[format]
	return ok
}

// IsIndexableFormat reports whether format may be loaded without an index.
func IsIndexableFormat(format string) bool {
	_, ok := indexableFormats[format]
	return ok
}

// InferFormat derives the data format from a filename, or "" when the format
// is unknown.
func InferFormat(name string) string {
	fn := strings.ToLower(name)

	// UCSC refgene files are tab-delimited text whatever their suffix says
	for _, suffix := range refGeneSuffixes {
		if strings.HasSuffix(fn, suffix) {
			return "refgene"
		}
	}

	if i := strings.Index(fn, "?"); i > 0 {
		fn = fn[:i]
	}

	fn = strings.TrimSuffix(fn, ".gz")
	for _, aux := range []string{".txt", ".tab", ".bgz"} {
		if strings.HasSuffix(fn, aux) {
			fn = strings.TrimSuffix(fn, aux)
			break
		}
	}

	ext := fn
	if i := strings.LastIndex(fn, "."); i >= 0 {
		ext = fn[i+1:]
	}

	switch ext {
	case "bw":
		return "bigwig"
	case "bb":
		return "bigbed"
	}

	if IsKnownExtension(ext) {
		return ext
	}

	return ""
}
