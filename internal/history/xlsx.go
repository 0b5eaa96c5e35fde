package history

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/inodb/compare-vcf/internal/duckdb"
)

// runsSheet is the worksheet the export writes to.
const runsSheet = "Runs"

var xlsxHeaders = []string{
	"Run ID", "Started", "Engine", "Truth VCF", "Call VCF", "Reference", "Sample",
	"Exclude Filtered", "Match Genotype", "TP", "FN", "FP", "Precision", "Recall", "F1",
}

// WriteXLSX exports runs to a spreadsheet at path, one row per run.
func WriteXLSX(path string, runs []duckdb.RunRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", runsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(runsSheet, cell, h); err != nil {
			return err
		}
	}

	for r, run := range runs {
		row := []any{
			run.RunID, run.StartedAt, run.Engine, run.TruthVCF, run.CallVCF, run.Reference, run.Sample,
			run.ExcludeFiltered, run.MatchGenotype, run.TP, run.FN, run.FP,
			run.Precision, run.Recall, run.F1,
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(runsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
