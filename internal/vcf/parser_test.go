package vcf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoSampleVCF = `##fileformat=VCFv4.2
##contig=<ID=1,length=248956422>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	NA12878	NA12891
1	100	rs1	A	T	50	PASS	.	GT	0/1	0/0
1	200	.	AC	A	.	LowQual	.	GT	1/1	0/1
1	300	.	G	GTT,C	30	.	DP=10	GT	1/2	0/0
`

const sitesOnlyVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
2	500	.	C	G	.	PASS	.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeGzip(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	zw.Close()
	f.Close()
	return path
}

func TestParser_Records(t *testing.T) {
	parser, err := NewParser(writeFile(t, "calls.vcf", twoSampleVCF))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	v, err := parser.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil {
		t.Fatal("Expected a variant, got nil")
	}
	if v.Chrom != "1" || v.Pos != 100 || v.Ref != "A" || v.Alt != "T" {
		t.Errorf("Unexpected first record: %+v", v)
	}
	if v.Qual != 50 {
		t.Errorf("Expected qual 50, got %f", v.Qual)
	}
	if v.SampleColumns != "GT\t0/1\t0/0" {
		t.Errorf("Unexpected sample columns %q", v.SampleColumns)
	}

	count := 1
	for {
		v, err := parser.Next()
		if err != nil {
			t.Fatalf("Error reading variant: %v", err)
		}
		if v == nil {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("Expected 3 variants, got %d", count)
	}
}

func TestParser_SampleNames(t *testing.T) {
	names, err := SampleNames(writeFile(t, "calls.vcf", twoSampleVCF))
	if err != nil {
		t.Fatalf("SampleNames: %v", err)
	}
	if len(names) != 2 || names[0] != "NA12878" || names[1] != "NA12891" {
		t.Errorf("Unexpected sample names %v", names)
	}

	names, err = SampleNames(writeFile(t, "sites.vcf", sitesOnlyVCF))
	if err != nil {
		t.Fatalf("SampleNames: %v", err)
	}
	if names != nil {
		t.Errorf("Expected no samples for sites-only VCF, got %v", names)
	}
}

func TestParser_Gzip(t *testing.T) {
	parser, err := NewParser(writeGzip(t, "calls.vcf.gz", twoSampleVCF))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	if len(parser.SampleNames()) != 2 {
		t.Errorf("Expected 2 samples, got %d", len(parser.SampleNames()))
	}
	if len(parser.Header()) != 3 {
		t.Errorf("Expected 3 header lines, got %d", len(parser.Header()))
	}
}

func TestParser_MissingChromLine(t *testing.T) {
	_, err := NewParser(writeFile(t, "bad.vcf", "##fileformat=VCFv4.2\n1\t100\t.\tA\tT\t.\tPASS\t.\n"))
	if err == nil {
		t.Fatal("Expected error for missing #CHROM line")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("Expected *ParseError, got %T", err)
	}
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := NewParser(writeFile(t, "empty.vcf", ""))
	if err == nil {
		t.Fatal("Expected error for empty file")
	}
	expected := "vcf parse error: empty file"
	if err.Error() != expected {
		t.Errorf("Error message mismatch: got %q, want %q", err.Error(), expected)
	}

	_, err = CountRecords(writeFile(t, "header-only.vcf", "##fileformat=VCFv4.2\n"))
	if err == nil || !strings.Contains(err.Error(), "line 1: no #CHROM header line found") {
		t.Errorf("Expected header error at line 1, got %v", err)
	}
}

func TestParser_ShortLine(t *testing.T) {
	parser, err := NewParser(writeFile(t, "short.vcf", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n1\t100\t.\tA\n"))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	_, err = parser.Next()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	expected := "vcf parse error at line 2: expected at least 8 columns, found 4"
	if err.Error() != expected {
		t.Errorf("Error message mismatch: got %q, want %q", err.Error(), expected)
	}
}

func TestCountRecords(t *testing.T) {
	c, err := CountRecords(writeFile(t, "calls.vcf", twoSampleVCF))
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	want := Counts{Records: 3, Pass: 2, SNVs: 1, Indels: 2}
	if c != want {
		t.Errorf("Counts = %+v, want %+v", c, want)
	}
}

func TestVariantClasses(t *testing.T) {
	tests := []struct {
		name       string
		ref, alt   string
		snv, indel bool
	}{
		{"snv", "A", "T", true, false},
		{"multi-allelic snv", "A", "T,C", true, false},
		{"deletion", "AC", "A", false, true},
		{"insertion", "A", "ATT", false, true},
		{"mnv", "AC", "GT", false, false},
		{"symbolic", "A", "<DEL>", false, false},
		{"reference only", "A", ".", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Ref: tt.ref, Alt: tt.alt}
			if v.IsSNV() != tt.snv {
				t.Errorf("IsSNV() = %v, want %v", v.IsSNV(), tt.snv)
			}
			if v.IsIndel() != tt.indel {
				t.Errorf("IsIndel() = %v, want %v", v.IsIndel(), tt.indel)
			}
		})
	}
}
