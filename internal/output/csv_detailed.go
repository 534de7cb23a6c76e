package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/dignity-planner/internal/domain"
)

// CSVDetailedExporter writes the per-asset yield breakdown, one row per asset per year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"YearIndex", "Year", "Age", "Phase", "Asset", "Category", "AssetValue", "YieldPercent", "YieldAmount"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range report.Projections {
		for _, b := range p.AssetBreakdown {
			row := []string{
				intToString(p.YearIndex),
				intToString(p.Year),
				intToString(p.Age),
				string(p.Phase),
				b.AssetName,
				b.Category,
				b.AssetValue.StringFixed(2),
				b.YieldPercent.String(),
				b.YieldAmount.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
