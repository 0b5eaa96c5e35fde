package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/compare-vcf/internal/compare"
	"github.com/inodb/compare-vcf/internal/orchestrate"
	"github.com/inodb/compare-vcf/internal/process"
)

// Viper keys shared by the flags, the config file and the environment.
const (
	keyEngine    = "engine"
	keyResultsDB = "results_db"
	keyLogLevel  = "loglevel"
	keyJava      = "engines.java"
	keyVarSimJar = "engines.varsim_jar"
	keyRTGJar    = "engines.rtg_jar"
)

func newCompareCmd() *cobra.Command {
	var cfg orchestrate.Config

	cmd := &cobra.Command{
		Use:   "compare [flags]",
		Short: "Compare a call VCF against a truth VCF",
		Long: `Run the selected comparison engine once and report the TP, FN and FP VCFs.

Only one call VCF is supported. Merge several call sets first, e.g.
  src/sort_vcf.sh vcf1 vcf2 > merged.vcf

Engine jars are read from the config file or environment:
  compare-vcf config set engines.varsim_jar /opt/VarSim.jar
  COMPARE_VCF_ENGINES_RTG_JAR=/opt/RTG.jar compare-vcf compare --engine vcfeval ...`,
		Example: `  compare-vcf compare --reference ref.fa --out-dir out \
    --true-vcf truth.vcf --vcfs calls.vcf
  compare-vcf compare --engine vcfeval --sdf ref.sdf --reference ref.fa \
    --out-dir out --true-vcf truth.vcf --vcfs calls.vcf --sample NA12878`,
		// Trailing arguments are extra call VCFs, as in "--vcfs a.vcf b.vcf".
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				keyEngine:    "engine",
				keyResultsDB: "results-db",
				keyLogLevel:  "loglevel",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.CallVCFs = append(cfg.CallVCFs, args...)
			cfg.Engine = viper.GetString(keyEngine)
			cfg.ResultsDB = viper.GetString(keyResultsDB)
			return runCompare(cmd, cfg, viper.GetString(keyLogLevel))
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Reference, "reference", "", "Reference genome FASTA (required)")
	f.StringVar(&cfg.SDF, "sdf", "", "SDF-formatted reference; generated next to the FASTA when vcfeval needs one")
	f.StringVar(&cfg.OutDir, "out-dir", "", "Output directory (required)")
	f.StringSliceVar(&cfg.CallVCFs, "vcfs", nil, "Call VCF to evaluate (required; exactly one)")
	f.StringVar(&cfg.TruthVCF, "true-vcf", "", "Truth VCF (required)")
	f.StringVar(&cfg.Regions, "regions", "", "BED file of regions to restrict the comparison to (not applied yet)")
	f.StringVar(&cfg.Sample, "sample", "", "Sample to compare in multi-sample VCFs")
	f.BoolVar(&cfg.ExcludeFiltered, "exclude-filtered", false, "Only compare PASS records")
	f.BoolVar(&cfg.MatchGenotype, "match-geno", false, "Require genotypes to match, not just alleles")
	f.StringVar(&cfg.LogFile, "log-to-file", "", "Append logs and engine output to this file")
	f.String("loglevel", "info", "Log level: debug, info or warn")
	f.StringVar(&cfg.VcfCompareOptions, "vcfcompare-options", "", "Extra vcfcompare options (not passed on yet)")
	f.StringVar(&cfg.VcfEvalOptions, "vcfeval-options", "", "Extra vcfeval options (not passed on yet)")
	f.String("engine", compare.EngineVcfCompare, "Comparison engine: "+strings.Join(compare.EngineNames(), ", "))
	f.String("results-db", "", "DuckDB file to record this run in")

	return cmd
}

// bindFlags binds the running command's flags to viper keys. Commands share
// keys, so binding happens once the command is chosen.
func bindFlags(cmd *cobra.Command, flags map[string]string) error {
	for key, name := range flags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func checkRequired(cfg orchestrate.Config) error {
	var missing []string
	if cfg.Reference == "" {
		missing = append(missing, "--reference")
	}
	if cfg.OutDir == "" {
		missing = append(missing, "--out-dir")
	}
	if cfg.TruthVCF == "" {
		missing = append(missing, "--true-vcf")
	}
	if len(cfg.CallVCFs) == 0 {
		missing = append(missing, "--vcfs")
	}
	if len(missing) > 0 {
		return usagef("required flag(s) not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

func enginesFromConfig() compare.Engines {
	return compare.Engines{
		Java:      viper.GetString(keyJava),
		VarSimJar: viper.GetString(keyVarSimJar),
		RTGJar:    viper.GetString(keyRTGJar),
	}
}

func runCompare(cmd *cobra.Command, cfg orchestrate.Config, level string) error {
	if err := checkRequired(cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(level, cfg.LogFile, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	runner := process.NewExecRunner(logger.Named("process"))
	orch := orchestrate.New(enginesFromConfig(), runner, nil, logger)

	out, err := orch.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Engine: %s\n", out.Engine)
	fmt.Fprintf(w, "  TP: %s\n", out.Artifacts.TruePositives)
	fmt.Fprintf(w, "  FN: %s\n", out.Artifacts.FalseNegatives)
	fmt.Fprintf(w, "  FP: %s\n", out.Artifacts.FalsePositives)
	if out.RunID != "" {
		fmt.Fprintf(w, "  Run ID: %s\n", out.RunID)
	}
	fmt.Fprintln(w)
	if out.Summary == nil {
		fmt.Fprintln(w, "Summary unavailable: an artifact could not be read (see log)")
		return nil
	}
	return out.Summary.WriteTable(w)
}
