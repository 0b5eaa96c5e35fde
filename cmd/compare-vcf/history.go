package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/compare-vcf/internal/compare"
	"github.com/inodb/compare-vcf/internal/duckdb"
	"github.com/inodb/compare-vcf/internal/history"
)

type historyOptions struct {
	engine string
	limit  int
	xlsx   string
	plot   bool
	clear  bool
}

func newHistoryCmd() *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List comparisons recorded with --results-db",
		Example: `  compare-vcf history --results-db runs.duckdb
  compare-vcf history --results-db runs.duckdb --engine vcfeval --plot
  compare-vcf history --results-db runs.duckdb --xlsx runs.xlsx`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{keyResultsDB: "results-db"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, viper.GetString(keyResultsDB), opts)
		},
	}

	f := cmd.Flags()
	f.String("results-db", "", "DuckDB file the runs were recorded in")
	f.StringVar(&opts.engine, "engine", "", "Only show runs of this engine")
	f.IntVar(&opts.limit, "limit", 0, "Show only the most recent N runs (0 = all)")
	f.StringVar(&opts.xlsx, "xlsx", "", "Also export the runs to this XLSX file")
	f.BoolVar(&opts.plot, "plot", false, "Plot F1 across runs")
	f.BoolVar(&opts.clear, "clear", false, "Delete all recorded runs")

	return cmd
}

func runHistory(cmd *cobra.Command, dbPath string, opts historyOptions) error {
	if dbPath == "" {
		return usagef("--results-db is required (or set %s in the config)", keyResultsDB)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("%w: %s", compare.ErrInputNotFound, dbPath)
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()

	if opts.clear {
		n, err := store.RunCount()
		if err != nil {
			return err
		}
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted %d runs from %s\n", n, dbPath)
		return nil
	}

	runs, err := store.ListRuns(opts.engine, opts.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs recorded in %s\n", dbPath)
		return nil
	}

	if err := history.WriteRuns(w, runs); err != nil {
		return err
	}
	fmt.Fprintln(w)

	agg, err := history.Summarize(runs)
	if err != nil {
		return err
	}
	if err := history.WriteAggregate(w, agg); err != nil {
		return err
	}

	if opts.plot {
		if plot := history.PlotF1(runs); plot != "" {
			fmt.Fprintf(w, "\n%s\n", plot)
		}
	}

	if opts.xlsx != "" {
		if err := history.WriteXLSX(opts.xlsx, runs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d runs to %s\n", len(runs), opts.xlsx)
	}
	return nil
}
