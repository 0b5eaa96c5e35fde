// Package compare scores a variant call set against a truth set by invoking
// an external comparison engine and collecting its TP/FN/FP outputs.
package compare

import (
	"fmt"
	"os"
	"strings"
)

// Request describes one comparison job. Build it with NewRequest.
type Request struct {
	OutputPrefix      string   // base path for generated artifacts, no extension
	TruthVCF          string   // ground-truth variants
	Reference         string   // reference FASTA
	PreparedReference string   // RTG SDF directory, for engines that need one
	Sample            string   // required for multi-sample VCFs
	CallVCFs          []string // variants under evaluation; exactly one
	ExcludeFiltered   bool     // only consider PASS or "." records
	MatchGenotype     bool     // require genotype agreement, not just alleles
	LogFile           string   // engine stderr is appended here when set
}

// NewRequest validates r and returns a copy that shares no memory with it.
// More than one call VCF is rejected rather than silently truncated.
func NewRequest(r Request) (Request, error) {
	if r.OutputPrefix == "" {
		return Request{}, fmt.Errorf("%w: output prefix is required", ErrUnsupportedInput)
	}
	if r.TruthVCF == "" || r.Reference == "" {
		return Request{}, fmt.Errorf("%w: truth VCF and reference are required", ErrUnsupportedInput)
	}
	if err := CheckCallVCFs(r.CallVCFs); err != nil {
		return Request{}, err
	}

	out := r
	out.CallVCFs = append([]string(nil), r.CallVCFs...)
	return out, nil
}

// CheckCallVCFs enforces the single call VCF every engine takes.
func CheckCallVCFs(calls []string) error {
	switch len(calls) {
	case 0:
		return fmt.Errorf("%w: no call VCF given", ErrUnsupportedInput)
	case 1:
		return nil
	default:
		return fmt.Errorf(
			"%w: only one call VCF is supported, got %d; merge them first, e.g. src/sort_vcf.sh vcf1 vcf2 > merged.vcf",
			ErrUnsupportedInput, len(calls))
	}
}

// CheckInputs verifies that every input file named by the request exists.
func (r Request) CheckInputs() error {
	inputs := []struct{ what, path string }{
		{"truth VCF", r.TruthVCF},
		{"reference", r.Reference},
	}
	for _, c := range r.CallVCFs {
		inputs = append(inputs, struct{ what, path string }{"call VCF", c})
	}
	if r.PreparedReference != "" {
		inputs = append(inputs, struct{ what, path string }{"prepared reference", r.PreparedReference})
	}

	var missing []string
	for _, in := range inputs {
		if _, err := os.Stat(in.path); err != nil {
			missing = append(missing, fmt.Sprintf("%s %s", in.what, in.path))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInputNotFound, strings.Join(missing, ", "))
	}
	return nil
}
