package compare

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/inodb/compare-vcf/internal/process"
)

// VcfEvalOutputSuffix is appended to the request prefix to name the
// directory vcfeval writes into. vcfeval refuses to reuse an existing one.
const VcfEvalOutputSuffix = "_vcfeval"

// VcfEvalStrategy compares haplotypes with RTG vcfeval.
type VcfEvalStrategy struct {
	engines Engines
	runner  process.Runner
}

// NewVcfEvalStrategy creates a vcfeval strategy.
func NewVcfEvalStrategy(engines Engines, runner process.Runner) *VcfEvalStrategy {
	return &VcfEvalStrategy{engines: engines, runner: runner}
}

func (s *VcfEvalStrategy) Name() string                    { return EngineVcfEval }
func (s *VcfEvalStrategy) RequiresPreparedReference() bool { return true }

// OutputDir returns the vcfeval output directory for req.
func (s *VcfEvalStrategy) OutputDir(req Request) string {
	return req.OutputPrefix + VcfEvalOutputSuffix
}

// Args builds the vcfeval argument vector.
// vcfeval drops filtered records unless --all-records is given, and
// --squash-ploidy turns genotype matching into allele matching.
func (s *VcfEvalStrategy) Args(req Request) []string {
	args := s.engines.JarCommand(s.engines.RTGJar)
	args = append(args, "vcfeval",
		"--baseline", req.TruthVCF,
		"--calls", req.CallVCFs[0],
		"--output", s.OutputDir(req),
		"--template", req.PreparedReference,
	)
	if !req.ExcludeFiltered {
		args = append(args, "--all-records")
	}
	if !req.MatchGenotype {
		args = append(args, "--squash-ploidy")
	}
	if req.Sample != "" {
		args = append(args, "--sample", req.Sample)
	}
	return args
}

// Compare runs vcfeval and returns tp/fn/fp.vcf.gz inside OutputDir.
func (s *VcfEvalStrategy) Compare(ctx context.Context, req Request) (Artifacts, error) {
	if req.PreparedReference == "" {
		return Artifacts{}, fmt.Errorf("%s: prepared reference (SDF) is required", s.Name())
	}
	if len(req.CallVCFs) != 1 {
		return Artifacts{}, fmt.Errorf("%w: %s takes exactly one call VCF", ErrUnsupportedInput, s.Name())
	}
	if err := invoke(ctx, s.runner, s.Name(), s.Args(req), req.LogFile); err != nil {
		return Artifacts{}, err
	}

	dir := s.OutputDir(req)
	return Artifacts{
		TruePositives:  filepath.Join(dir, "tp.vcf.gz"),
		FalseNegatives: filepath.Join(dir, "fn.vcf.gz"),
		FalsePositives: filepath.Join(dir, "fp.vcf.gz"),
	}, nil
}
