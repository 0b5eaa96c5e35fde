// Package history reports on recorded comparison runs.
package history

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/montanaflynn/stats"

	"github.com/inodb/compare-vcf/internal/duckdb"
)

// Stat describes the distribution of one metric across runs.
type Stat struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Aggregate summarizes precision, recall and F1 over a set of runs.
type Aggregate struct {
	Runs      int
	Precision Stat
	Recall    Stat
	F1        Stat
}

// Summarize computes an Aggregate. It fails on an empty run list.
func Summarize(runs []duckdb.RunRecord) (Aggregate, error) {
	if len(runs) == 0 {
		return Aggregate{}, errors.New("no runs recorded")
	}

	precision := make([]float64, len(runs))
	recall := make([]float64, len(runs))
	f1 := make([]float64, len(runs))
	for i, r := range runs {
		precision[i] = r.Precision
		recall[i] = r.Recall
		f1[i] = r.F1
	}

	agg := Aggregate{Runs: len(runs)}
	var err error
	if agg.Precision, err = describe(precision); err != nil {
		return Aggregate{}, fmt.Errorf("precision: %w", err)
	}
	if agg.Recall, err = describe(recall); err != nil {
		return Aggregate{}, fmt.Errorf("recall: %w", err)
	}
	if agg.F1, err = describe(f1); err != nil {
		return Aggregate{}, fmt.Errorf("f1: %w", err)
	}
	return agg, nil
}

func describe(data []float64) (Stat, error) {
	var s Stat
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Stat{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Stat{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Stat{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Stat{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Stat{}, err
	}
	return s, nil
}

// WriteAggregate writes the aggregate as an aligned table.
func WriteAggregate(w io.Writer, agg Aggregate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric (%d runs)\tMean\tMedian\tStdDev\tMin\tMax\n", agg.Runs)
	for _, row := range []struct {
		name string
		s    Stat
	}{
		{"precision", agg.Precision},
		{"recall", agg.Recall},
		{"f1", agg.F1},
	} {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			row.name, row.s.Mean, row.s.Median, row.s.StdDev, row.s.Min, row.s.Max)
	}
	return tw.Flush()
}

// WriteRuns writes one line per run.
func WriteRuns(w io.Writer, runs []duckdb.RunRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Started\tEngine\tCalls\tSample\tTP\tFN\tFP\tPrecision\tRecall\tF1")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Engine, filepath.Base(r.CallVCF), r.Sample,
			r.TP, r.FN, r.FP, r.Precision, r.Recall, r.F1)
	}
	return tw.Flush()
}

// PlotF1 renders the F1 trend across runs as a terminal line chart.
// Fewer than two runs give nothing to plot.
func PlotF1(runs []duckdb.RunRecord) string {
	if len(runs) < 2 {
		return ""
	}
	series := make([]float64, len(runs))
	for i, r := range runs {
		series[i] = r.F1
	}
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Precision(3),
		asciigraph.Caption("F1 by run (oldest first)"))
}
