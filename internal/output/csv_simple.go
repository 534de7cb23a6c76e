package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/dignity-planner/internal/domain"
)

// CSVSummarizer implements the per-year CSV output (one row per projection year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"YearIndex", "Year", "Age", "Phase", "OpeningCorpus", "ProjectedYield", "ProjectedAnnualOutgo", "ClosingCorpus", "CarriedCorpus", "Depleted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Projections {
		row := []string{
			intToString(p.YearIndex),
			intToString(p.Year),
			intToString(p.Age),
			string(p.Phase),
			p.OpeningCorpus.StringFixed(2),
			p.ProjectedYield.StringFixed(2),
			p.ProjectedAnnualOutgo.StringFixed(2),
			p.ClosingCorpus.StringFixed(2),
			p.CarriedCorpus.StringFixed(2),
			boolToString(p.IsRetired() && p.IsDepleted()),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
