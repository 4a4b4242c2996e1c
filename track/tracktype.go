package track

import (
	"strings"

	"github.com/carbocation/trackload/pathref"
)

// InferType maps a data format to the track type that renders it.
func InferType(format string) string {
	switch strings.ToLower(format) {
	case "bw", "bigwig", "wig", "bedgraph", "tdf":
		return "wig"
	case "vcf":
		return "variant"
	case "seg":
		return "seg"
	case "bam", "cram":
		return "alignment"
	case "bedpe", "bedpe-loop":
		return "interaction"
	case "bp":
		return "arc"
	}

	return "annotation"
}

// TranslateDeprecatedTypes rewrites retired type names in place. Applying it
// more than once has no further effect.
func TranslateDeprecatedTypes(c *Config) {
	if c.FeatureType != "" {
		if c.Type == "" {
			c.Type = c.FeatureType
		}
		c.FeatureType = ""
	}

	switch c.Type {
	case "junctions":
		c.Type = "spliceJunctions"
	case "bed":
		c.Type = "annotation"
		if c.Format == "" {
			c.Format = "bed"
		}
	case "annotations":
		c.Type = "annotation"
	case "alignments":
		c.Type = "alignment"
	case "bam":
		c.Type = "alignment"
		c.Format = "bam"
	case "vcf":
		c.Type = "variant"
		c.Format = "vcf"
	case "t2d":
		c.Type = "gwas"
	case "FusionJuncSpan":
		if c.Format == "" {
			c.Format = "fusionjuncspan"
		}
	case "aed":
		c.Type = "annotation"
		if c.Format == "" {
			c.Format = "aed"
		}
	}
}

// InferTrackTypes fills in the format and type of a track configuration that
// does not state them. Genome descriptors are left untouched.
func InferTrackTypes(c *Config) {
	if c.IsGenome() {
		return
	}

	TranslateDeprecatedTypes(c)

	if c.Format == "" {
		name := c.Filename
		if name == "" {
			name = pathref.FilenameFromURL(c.URL)
		}
		c.Format = InferFormat(name)
	}

	if c.Type == "" && c.Format != "" {
		c.Type = InferType(c.Format)
	}
}
