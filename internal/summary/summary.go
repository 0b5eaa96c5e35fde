// Package summary turns comparison artifacts into accuracy metrics.
package summary

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inodb/compare-vcf/internal/compare"
	"github.com/inodb/compare-vcf/internal/vcf"
)

// Summary holds per-class record counts and the derived metrics.
type Summary struct {
	TruePositives  vcf.Counts
	FalseNegatives vcf.Counts
	FalsePositives vcf.Counts
}

// FromArtifacts counts the records in each artifact.
func FromArtifacts(a compare.Artifacts) (Summary, error) {
	var s Summary
	var err error
	if s.TruePositives, err = vcf.CountRecords(a.TruePositives); err != nil {
		return Summary{}, fmt.Errorf("true positives: %w", err)
	}
	if s.FalseNegatives, err = vcf.CountRecords(a.FalseNegatives); err != nil {
		return Summary{}, fmt.Errorf("false negatives: %w", err)
	}
	if s.FalsePositives, err = vcf.CountRecords(a.FalsePositives); err != nil {
		return Summary{}, fmt.Errorf("false positives: %w", err)
	}
	return s, nil
}

// Metrics are precision, recall and F1 over one variant class.
type Metrics struct {
	TP, FN, FP int64
	Precision  float64
	Recall     float64
	F1         float64
}

// NewMetrics derives precision, recall and F1 from raw counts.
// An empty denominator yields 0 rather than NaN.
func NewMetrics(tp, fn, fp int64) Metrics {
	m := Metrics{TP: tp, FN: fn, FP: fp}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// All returns metrics over every record.
func (s Summary) All() Metrics {
	return NewMetrics(s.TruePositives.Records, s.FalseNegatives.Records, s.FalsePositives.Records)
}

// SNVs returns metrics restricted to single-nucleotide records.
func (s Summary) SNVs() Metrics {
	return NewMetrics(s.TruePositives.SNVs, s.FalseNegatives.SNVs, s.FalsePositives.SNVs)
}

// Indels returns metrics restricted to insertions and deletions.
func (s Summary) Indels() Metrics {
	return NewMetrics(s.TruePositives.Indels, s.FalseNegatives.Indels, s.FalsePositives.Indels)
}

// WriteTable writes an aligned per-class metrics table.
func (s Summary) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Class\tTP\tFN\tFP\tPrecision\tRecall\tF1")
	for _, row := range []struct {
		name string
		m    Metrics
	}{
		{"all", s.All()},
		{"snv", s.SNVs()},
		{"indel", s.Indels()},
	} {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			row.name, row.m.TP, row.m.FN, row.m.FP, row.m.Precision, row.m.Recall, row.m.F1)
	}
	return tw.Flush()
}
