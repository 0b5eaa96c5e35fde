// Package orchestrate drives a single comparison from parsed configuration
// to validated artifacts.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/compare-vcf/internal/compare"
	"github.com/inodb/compare-vcf/internal/duckdb"
	"github.com/inodb/compare-vcf/internal/process"
	"github.com/inodb/compare-vcf/internal/reference"
	"github.com/inodb/compare-vcf/internal/summary"
	"github.com/inodb/compare-vcf/internal/vcf"
)

// Config is the parsed command-line configuration of one comparison.
type Config struct {
	Reference       string
	SDF             string // pre-built prepared reference, optional
	OutDir          string
	CallVCFs        []string
	TruthVCF        string
	Regions         string // accepted, not passed to any engine
	Sample          string
	ExcludeFiltered bool
	MatchGenotype   bool
	LogFile         string
	Engine          string

	// Engine pass-through options are accepted but not passed on.
	VcfCompareOptions string
	VcfEvalOptions    string

	// ResultsDB, when set, records the run in a DuckDB history.
	ResultsDB string
}

// Outcome is what a successful orchestration produced.
type Outcome struct {
	RunID     string
	Engine    string
	Request   compare.Request
	Artifacts compare.Artifacts
	Summary   *summary.Summary // nil when an artifact could not be read
}

// resultPrefixes names the artifact prefix inside the output directory.
var resultPrefixes = map[string]string{
	compare.EngineVcfCompare: "varsim_compare_results",
	compare.EngineVcfEval:    "rtg_compare_results",
}

// Orchestrator runs one comparison job. It is not reusable: Run may be
// called once.
type Orchestrator struct {
	engines  compare.Engines
	runner   process.Runner
	preparer reference.Preparer
	logger   *zap.Logger

	// checkExecutable verifies the java launcher; replaced in tests.
	checkExecutable func(string) error
	now             func() time.Time

	state State
}

// New creates an orchestrator. A nil preparer defaults to an SDFPreparer
// using the same runner and log file.
func New(engines compare.Engines, runner process.Runner, preparer reference.Preparer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		engines:         engines,
		runner:          runner,
		preparer:        preparer,
		logger:          logger,
		checkExecutable: process.CheckExecutable,
		now:             time.Now,
		state:           Configured,
	}
}

// State returns the current step.
func (o *Orchestrator) State() State {
	return o.state
}

func (o *Orchestrator) transition(to State) {
	o.logger.Debug("state transition",
		zap.Stringer("from", o.state),
		zap.Stringer("to", to))
	o.state = to
}

func (o *Orchestrator) fail(err error) error {
	o.transition(Failed)
	return err
}

// Run executes the job: validate inputs, prepare the reference if the
// engine needs one, run the comparison, then summarize and record it.
// The first error ends the run in the Failed state.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (*Outcome, error) {
	if o.state != Configured {
		return nil, fmt.Errorf("orchestrator already used (state %s)", o.state)
	}
	o.logger.Info("working hard ...")
	startedAt := o.now()

	// The call count is an input error whatever the engine setup.
	if err := compare.CheckCallVCFs(cfg.CallVCFs); err != nil {
		return nil, o.fail(err)
	}

	strategy, err := compare.NewStrategy(cfg.Engine, o.engines, o.runner)
	if err != nil {
		return nil, o.fail(err)
	}

	req, err := o.buildRequest(cfg, strategy.Name())
	if err != nil {
		return nil, o.fail(err)
	}
	o.warnUnused(cfg)

	if err := o.validateInputs(req); err != nil {
		return nil, o.fail(err)
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputPrefix), 0755); err != nil {
		return nil, o.fail(fmt.Errorf("create output directory: %w", err))
	}
	o.transition(InputsValidated)

	if strategy.RequiresPreparedReference() && req.PreparedReference == "" {
		o.logger.Info("user did not supply SDF-formatted reference, trying to generate one...")
		sdf, err := o.prepare(ctx, req.Reference, req.LogFile)
		if err != nil {
			return nil, o.fail(fmt.Errorf("prepare reference: %w", err))
		}
		req.PreparedReference = sdf
	}
	o.transition(ReferenceReady)

	comparator := compare.NewComparator(strategy, req)
	comparator.SetLogger(o.logger.Named("compare"))

	tp, err := comparator.TruePositives(ctx)
	if err != nil {
		return nil, o.fail(err)
	}
	fn, err := comparator.FalseNegatives(ctx)
	if err != nil {
		return nil, o.fail(err)
	}
	fp, err := comparator.FalsePositives(ctx)
	if err != nil {
		return nil, o.fail(err)
	}
	o.transition(Compared)

	out := &Outcome{
		Engine:    comparator.Engine(),
		Request:   comparator.Request(),
		Artifacts: compare.Artifacts{TruePositives: tp, FalseNegatives: fn, FalsePositives: fp},
	}

	// The artifacts are the result; counting their records is best effort.
	if sum, err := summary.FromArtifacts(out.Artifacts); err != nil {
		o.logger.Warn("summary unavailable", zap.Error(err))
	} else {
		out.Summary = &sum
	}

	if cfg.ResultsDB != "" {
		if out.Summary == nil {
			o.logger.Warn("run not recorded: no summary", zap.String("db", cfg.ResultsDB))
		} else if out.RunID, err = o.record(cfg.ResultsDB, out, startedAt); err != nil {
			return nil, o.fail(fmt.Errorf("record run: %w", err))
		}
	}

	o.transition(Done)
	return out, nil
}

// buildRequest resolves paths and builds the comparison request. The call
// VCF count is checked here, before anything touches the filesystem.
func (o *Orchestrator) buildRequest(cfg Config, engine string) (compare.Request, error) {
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return compare.Request{}, fmt.Errorf("resolve output directory: %w", err)
	}

	ref, err := filepath.Abs(cfg.Reference)
	if err != nil {
		return compare.Request{}, fmt.Errorf("resolve reference: %w", err)
	}

	return compare.NewRequest(compare.Request{
		OutputPrefix:      filepath.Join(outDir, resultPrefixes[engine]),
		TruthVCF:          cfg.TruthVCF,
		Reference:         ref,
		PreparedReference: cfg.SDF,
		Sample:            cfg.Sample,
		CallVCFs:          cfg.CallVCFs,
		ExcludeFiltered:   cfg.ExcludeFiltered,
		MatchGenotype:     cfg.MatchGenotype,
		LogFile:           cfg.LogFile,
	})
}

func (o *Orchestrator) warnUnused(cfg Config) {
	if cfg.Regions != "" {
		o.logger.Warn("--regions is accepted but not yet applied to the comparison", zap.String("regions", cfg.Regions))
	}
	if cfg.VcfCompareOptions != "" {
		o.logger.Warn("--vcfcompare-options is accepted but not yet passed to vcfcompare", zap.String("options", cfg.VcfCompareOptions))
	}
	if cfg.VcfEvalOptions != "" {
		o.logger.Warn("--vcfeval-options is accepted but not yet passed to vcfeval", zap.String("options", cfg.VcfEvalOptions))
	}
}

// validateInputs checks the inputs exist, java is available and multi-sample
// VCFs come with a sample name.
func (o *Orchestrator) validateInputs(req compare.Request) error {
	if err := req.CheckInputs(); err != nil {
		return err
	}
	if err := o.checkExecutable(o.engines.Launcher()); err != nil {
		return err
	}

	if req.Sample != "" {
		return nil
	}
	for _, path := range append([]string{req.TruthVCF}, req.CallVCFs...) {
		samples, err := vcf.SampleNames(path)
		if err != nil {
			return fmt.Errorf("read header of %s: %w", path, err)
		}
		if len(samples) > 1 {
			return fmt.Errorf("%w: %s has %d samples, pass --sample", compare.ErrSampleRequired, path, len(samples))
		}
	}
	return nil
}

func (o *Orchestrator) prepare(ctx context.Context, ref, logFile string) (string, error) {
	p := o.preparer
	if p == nil {
		sdf := reference.NewSDFPreparer(o.engines, o.runner, logFile)
		sdf.SetLogger(o.logger.Named("reference"))
		p = sdf
	}
	return p.Prepare(ctx, ref)
}

func (o *Orchestrator) record(dbPath string, out *Outcome, startedAt time.Time) (string, error) {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	all := out.Summary.All()
	rec := &duckdb.RunRecord{
		StartedAt:       startedAt,
		Engine:          out.Engine,
		TruthVCF:        out.Request.TruthVCF,
		CallVCF:         out.Request.CallVCFs[0],
		Reference:       out.Request.Reference,
		Sample:          out.Request.Sample,
		ExcludeFiltered: out.Request.ExcludeFiltered,
		MatchGenotype:   out.Request.MatchGenotype,
		TPPath:          out.Artifacts.TruePositives,
		FNPath:          out.Artifacts.FalseNegatives,
		FPPath:          out.Artifacts.FalsePositives,
		TP:              all.TP,
		FN:              all.FN,
		FP:              all.FP,
		Precision:       all.Precision,
		Recall:          all.Recall,
		F1:              all.F1,
	}
	if err := store.RecordRun(rec); err != nil {
		return "", err
	}
	o.logger.Info("recorded run", zap.String("run_id", rec.RunID), zap.String("db", dbPath))
	return rec.RunID, nil
}

// IsUsageError reports whether err stems from how the tool was invoked
// rather than from an engine.
func IsUsageError(err error) bool {
	return errors.Is(err, compare.ErrUnsupportedInput) ||
		errors.Is(err, compare.ErrInputNotFound) ||
		errors.Is(err, compare.ErrSampleRequired) ||
		errors.Is(err, compare.ErrUnknownEngine)
}
