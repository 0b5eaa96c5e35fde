// Package vcf provides the VCF reading needed to pre-flight and summarize comparisons.
package vcf

// Variant represents a single record from a VCF file.
type Variant struct {
	Chrom         string  // Chromosome name (e.g., "12", "chr12")
	Pos           int64   // 1-based genomic position
	Ref           string  // Reference allele
	Alt           string  // Alternate allele(s), comma-separated
	Qual          float64 // Quality score
	Filter        string  // Filter status (PASS, "." or filter names)
	SampleColumns string  // FORMAT and sample columns, tab-joined
}

// IsPass returns true if the record passed all filters.
// Both "PASS" and "." count as passing, matching vcfcompare -exclude_filtered.
func (v *Variant) IsPass() bool {
	return v.Filter == "PASS" || v.Filter == "."
}

// IsSNV returns true if the reference and every alternate allele are single bases.
func (v *Variant) IsSNV() bool {
	if len(v.Ref) != 1 {
		return false
	}
	for _, alt := range v.alts() {
		if len(alt) != 1 || isSymbolic(alt) {
			return false
		}
	}
	return true
}

// IsIndel returns true if any alternate allele changes the reference length.
func (v *Variant) IsIndel() bool {
	for _, alt := range v.alts() {
		if isSymbolic(alt) {
			continue
		}
		if len(alt) != len(v.Ref) {
			return true
		}
	}
	return false
}

func (v *Variant) alts() []string {
	var out []string
	start := 0
	for i := 0; i <= len(v.Alt); i++ {
		if i == len(v.Alt) || v.Alt[i] == ',' {
			out = append(out, v.Alt[start:i])
			start = i + 1
		}
	}
	return out
}

// isSymbolic reports whether an allele is a symbolic (<DEL>) or breakend allele.
func isSymbolic(alt string) bool {
	if alt == "" || alt == "*" || alt == "." {
		return true
	}
	for i := 0; i < len(alt); i++ {
		switch alt[i] {
		case '<', '[', ']':
			return true
		}
	}
	return false
}
