package compare

import (
	"context"

	"github.com/inodb/compare-vcf/internal/process"
)

// VarSimStrategy compares alleles with VarSim vcfcompare.
type VarSimStrategy struct {
	engines Engines
	runner  process.Runner
}

// NewVarSimStrategy creates a vcfcompare strategy.
func NewVarSimStrategy(engines Engines, runner process.Runner) *VarSimStrategy {
	return &VarSimStrategy{engines: engines, runner: runner}
}

func (s *VarSimStrategy) Name() string                    { return EngineVcfCompare }
func (s *VarSimStrategy) RequiresPreparedReference() bool { return false }

// Args builds the vcfcompare argument vector. Optional flags appear only
// when set, and call VCFs come last in request order.
func (s *VarSimStrategy) Args(req Request) []string {
	args := s.engines.JarCommand(s.engines.VarSimJar)
	args = append(args, "vcfcompare",
		"-prefix", req.OutputPrefix,
		"-true_vcf", req.TruthVCF,
		"-reference", req.Reference,
	)
	if req.ExcludeFiltered {
		args = append(args, "-exclude_filtered")
	}
	if req.MatchGenotype {
		args = append(args, "-match_geno")
	}
	if req.Sample != "" {
		args = append(args, "-sample", req.Sample)
	}
	return append(args, req.CallVCFs...)
}

// Compare runs vcfcompare and returns the <prefix>_TP/FN/FP.vcf paths.
func (s *VarSimStrategy) Compare(ctx context.Context, req Request) (Artifacts, error) {
	if err := invoke(ctx, s.runner, s.Name(), s.Args(req), req.LogFile); err != nil {
		return Artifacts{}, err
	}
	return PrefixArtifacts(req.OutputPrefix), nil
}
