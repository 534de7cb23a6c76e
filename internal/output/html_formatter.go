package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/rpgo/dignity-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with an embedded corpus chart.
type HTMLFormatter struct {
	Currency string
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": FormatPercentage,
	"fixed": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartPoint struct {
	Age    int     `json:"age"`
	Corpus float64 `json:"corpus"`
}

func (h HTMLFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer

	chart := make([]chartPoint, 0, len(report.Projections))
	for _, p := range report.Projections {
		chart = append(chart, chartPoint{Age: p.Age, Corpus: p.ClosingCorpus.InexactFloat64()})
	}

	data := struct {
		*domain.PlanReport
		Highlights Highlights
		Chart      []chartPoint
		Curr       func(decimal.Decimal) string
	}{
		PlanReport: report,
		Highlights: AnalyzePlan(report),
		Chart:      chart,
		Curr:       func(d decimal.Decimal) string { return FormatCurrency(d, h.Currency) },
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
