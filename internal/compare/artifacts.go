package compare

import "os"

// Fixed artifact suffixes written by VarSim vcfcompare for a given -prefix.
const (
	SuffixTruePositives  = "_TP.vcf"
	SuffixFalseNegatives = "_FN.vcf"
	SuffixFalsePositives = "_FP.vcf"
)

// Artifacts holds the three files produced by one comparison.
type Artifacts struct {
	TruePositives  string
	FalseNegatives string
	FalsePositives string
}

// PrefixArtifacts derives the vcfcompare artifact paths for prefix.
func PrefixArtifacts(prefix string) Artifacts {
	return Artifacts{
		TruePositives:  prefix + SuffixTruePositives,
		FalseNegatives: prefix + SuffixFalseNegatives,
		FalsePositives: prefix + SuffixFalsePositives,
	}
}

// Paths returns the artifact paths in TP, FN, FP order.
func (a Artifacts) Paths() []string {
	return []string{a.TruePositives, a.FalseNegatives, a.FalsePositives}
}

// Validate checks that every artifact exists, reporting the first missing one.
func (a Artifacts) Validate(engine string) error {
	for _, p := range a.Paths() {
		if p == "" {
			return &MissingArtifactError{Engine: engine, Path: "(unnamed artifact)"}
		}
		if _, err := os.Stat(p); err != nil {
			return &MissingArtifactError{Engine: engine, Path: p}
		}
	}
	return nil
}
