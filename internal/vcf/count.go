package vcf

import "fmt"

// Counts tallies the records of one VCF file.
type Counts struct {
	Records int64
	Pass    int64
	SNVs    int64
	Indels  int64
}

// SampleNames opens path, reads only its header and returns the sample names.
func SampleNames(path string) ([]string, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.SampleNames(), nil
}

// CountRecords reads every record of path.
func CountRecords(path string) (Counts, error) {
	p, err := NewParser(path)
	if err != nil {
		return Counts{}, err
	}
	defer p.Close()

	var c Counts
	for {
		v, err := p.Next()
		if err != nil {
			return c, fmt.Errorf("count %s: %w", path, err)
		}
		if v == nil {
			return c, nil
		}
		c.Records++
		if v.IsPass() {
			c.Pass++
		}
		if v.IsSNV() {
			c.SNVs++
		} else if v.IsIndel() {
			c.Indels++
		}
	}
}
