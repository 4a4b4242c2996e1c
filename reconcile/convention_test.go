package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCandidateIndexNames(t *testing.T) {
	cases := []struct {
		name       string
		candidates []string
		optional   bool
	}{
		{"sample.bam", []string{"sample.bam.bai", "sample.bai"}, false},
		{"sample.cram", []string{"sample.cram.crai", "sample.crai"}, false},
		{"chr1.fa", []string{"chr1.fa.fai"}, false},
		{"hg38.fasta", []string{"hg38.fasta.fai"}, false},
		{"variants.vcf.gz", []string{"variants.vcf.gz.tbi"}, true},
		{"variants.vcf.bgz", []string{"variants.vcf.bgz.tbi"}, true},
		{"genes.bed", []string{"genes.bed.idx"}, true},
		{"VARIANTS.VCF.GZ", []string{"VARIANTS.VCF.GZ.tbi"}, true},
	}

	for _, c := range cases {
		candidates, req, ok := CandidateIndexNames(c.name)
		if !ok {
			t.Errorf("%s: expected a data file", c.name)
			continue
		}
		if diff := cmp.Diff(c.candidates, candidates); diff != "" {
			t.Errorf("%s: unexpected candidates (-want +got):\n%s", c.name, diff)
		}
		if req.Optional != c.optional {
			t.Errorf("%s: expected optional=%v, got %v", c.name, c.optional, req.Optional)
		}
	}
}

func TestCandidateIndexNamesRejectsNonData(t *testing.T) {
	for _, name := range []string{"sample.bai", "notes.docx", "session.xml", ""} {
		if _, _, ok := CandidateIndexNames(name); ok {
			t.Errorf("%q should not be treated as a data file", name)
		}
	}
}

func TestRequirementFor(t *testing.T) {
	if req := RequirementFor("BAM"); req.IndexExtension != "bai" || req.Optional {
		t.Errorf("Unexpected requirement for BAM: %+v", req)
	}

	if req := RequirementFor("narrowpeak"); req != anyIndex {
		t.Errorf("Expected the optional idx fallback, got %+v", req)
	}
}

func TestIsIndexExtension(t *testing.T) {
	for _, ext := range []string{"fai", "bai", "crai", "tbi", "idx"} {
		if !IsIndexExtension(ext) {
			t.Errorf("%s should be an index extension", ext)
		}
	}

	for _, ext := range []string{"bam", "csi", ""} {
		if IsIndexExtension(ext) {
			t.Errorf("%q should not be an index extension", ext)
		}
	}
}
