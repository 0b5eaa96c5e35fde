package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/compare-vcf/internal/compare"
)

const vcfHeader = "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

func writeVCF(t *testing.T, dir, name string, records ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := vcfHeader + strings.Join(records, "")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewMetrics(t *testing.T) {
	tests := []struct {
		name       string
		tp, fn, fp int64
		precision  float64
		recall     float64
		f1         float64
	}{
		{"perfect", 10, 0, 0, 1, 1, 1},
		{"balanced", 8, 2, 2, 0.8, 0.8, 0.8},
		{"no calls", 0, 5, 0, 0, 0, 0},
		{"empty", 0, 0, 0, 0, 0, 0},
		{"only false positives", 0, 0, 3, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(tt.tp, tt.fn, tt.fp)
			assert.InDelta(t, tt.precision, m.Precision, 1e-9)
			assert.InDelta(t, tt.recall, m.Recall, 1e-9)
			assert.InDelta(t, tt.f1, m.F1, 1e-9)
		})
	}
}

func TestFromArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := compare.Artifacts{
		TruePositives: writeVCF(t, dir, "out_TP.vcf",
			"1\t100\t.\tA\tT\t.\tPASS\t.\n",
			"1\t200\t.\tC\tG\t.\tPASS\t.\n",
			"1\t300\t.\tAT\tA\t.\tPASS\t.\n"),
		FalseNegatives: writeVCF(t, dir, "out_FN.vcf",
			"1\t400\t.\tG\tGA\t.\tPASS\t.\n"),
		FalsePositives: writeVCF(t, dir, "out_FP.vcf",
			"1\t500\t.\tT\tC\t.\tLowQual\t.\n"),
	}

	s, err := FromArtifacts(a)
	require.NoError(t, err)

	all := s.All()
	assert.Equal(t, int64(3), all.TP)
	assert.Equal(t, int64(1), all.FN)
	assert.Equal(t, int64(1), all.FP)
	assert.InDelta(t, 0.75, all.Precision, 1e-9)
	assert.InDelta(t, 0.75, all.Recall, 1e-9)

	snv := s.SNVs()
	assert.Equal(t, int64(2), snv.TP)
	assert.Equal(t, int64(0), snv.FN)
	assert.Equal(t, int64(1), snv.FP)

	indel := s.Indels()
	assert.Equal(t, int64(1), indel.TP)
	assert.Equal(t, int64(1), indel.FN)
	assert.InDelta(t, 1.0, indel.Precision, 1e-9)
	assert.InDelta(t, 0.5, indel.Recall, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, s.WriteTable(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Class"))
	assert.Contains(t, lines[1], "0.7500")
}

func TestFromArtifacts_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := compare.Artifacts{
		TruePositives:  writeVCF(t, dir, "out_TP.vcf"),
		FalseNegatives: filepath.Join(dir, "absent_FN.vcf"),
		FalsePositives: writeVCF(t, dir, "out_FP.vcf"),
	}
	_, err := FromArtifacts(a)
	assert.ErrorContains(t, err, "false negatives")
}
