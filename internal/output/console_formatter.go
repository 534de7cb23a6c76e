package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/dignity-planner/internal/domain"
)

// ConsoleFormatter renders the full plan: summary sections followed by the year table.
type ConsoleFormatter struct {
	Currency string
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, report, c.Currency)
	fmt.Fprintln(&buf)
	c.writeMilestones(&buf, report)
	c.writeYearTable(&buf, report)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeMilestones(w io.Writer, report *domain.PlanReport) {
	ms := report.Milestones
	if len(ms.Milestones) == 0 {
		return
	}
	fmt.Fprintln(w, "MILESTONES")
	fmt.Fprintln(w, strings.Repeat("-", 32))
	for _, m := range ms.Milestones {
		marker := ""
		switch {
		case m.Historical:
			marker = " (past)"
		case m.CoreResponsibility && m.Underfunded():
			marker = " (core, underfunded)"
		}
		fmt.Fprintf(w, "%-28s in %2d yrs  cost %s  funded %s  still needed %s%s\n",
			m.Name, m.YearsToTarget,
			FormatCurrency(m.FutureCost, c.Currency),
			FormatPercentage(m.FundingPercent),
			FormatCurrency(m.AmountStillNeeded, c.Currency),
			marker)
	}
	fmt.Fprintf(w, "Coverage: available %s against needed %s (%s, %s)\n",
		FormatCurrency(ms.TotalAvailable, c.Currency),
		FormatCurrency(ms.TotalFutureCost, c.Currency),
		FormatPercentage(ms.CoveragePercent),
		ms.Status)
	fmt.Fprintln(w)
}

func (c ConsoleFormatter) writeYearTable(w io.Writer, report *domain.PlanReport) {
	fmt.Fprintln(w, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(w, strings.Repeat("-", 32))
	fmt.Fprintf(w, "%-6s %-4s %-13s %20s %18s %18s %20s\n", "Year", "Age", "Phase", "Opening", "Yield", "Outgo", "Closing")
	for _, p := range report.Projections {
		fmt.Fprintf(w, "%-6d %-4d %-13s %20s %18s %18s %20s\n",
			p.Year, p.Age, p.Phase,
			FormatCurrency(p.OpeningCorpus, c.Currency),
			FormatCurrency(p.ProjectedYield, c.Currency),
			FormatCurrency(p.ProjectedAnnualOutgo, c.Currency),
			FormatCurrency(p.ClosingCorpus, c.Currency))
	}
}

// SummaryFormatter provides the concise summary without the year table.
type SummaryFormatter struct {
	Currency string
}

func (s SummaryFormatter) Name() string { return "summary" }

func (s SummaryFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, report, s.Currency)
	return buf.Bytes(), nil
}

func writeSummary(w io.Writer, report *domain.PlanReport, currency string) {
	p := report.Profile
	h := AnalyzePlan(report)

	fmt.Fprintln(w, "DIGNITY PLAN SUMMARY")
	fmt.Fprintln(w, "================================")
	if p.Name != "" {
		fmt.Fprintf(w, "Household: %s\n", p.Name)
	}
	fmt.Fprintf(w, "Age %d, retiring at %d (%d years), life expectancy %d\n",
		p.CurrentAge, p.RetirementAge, report.YearsToRetirement, p.LifeExpectancy)
	fmt.Fprintln(w)

	b := report.Baseline
	fmt.Fprintf(w, "Annual lifestyle expenses: %s\n", FormatCurrency(b.LifestyleExpenses, currency))
	fmt.Fprintf(w, "Replacement sinking fund:  %s\n", FormatCurrency(b.SinkingFund, currency))
	fmt.Fprintf(w, "Total annual need:         %s\n", FormatCurrency(b.TotalNeed, currency))
	fmt.Fprintln(w)

	if h.RetirementYear != 0 {
		fmt.Fprintf(w, "Corpus at retirement (%d, age %d): %s\n", h.RetirementYear, h.RetirementAge, FormatCurrency(h.RetirementCorpus, currency))
	} else {
		fmt.Fprintln(w, "Retirement falls outside the projection window")
	}
	fmt.Fprintf(w, "Peak corpus: %s at age %d\n", FormatCurrency(h.PeakCorpus, currency), h.PeakAge)
	fmt.Fprintf(w, "Final corpus: %s\n", FormatCurrency(h.FinalCorpus, currency))
	if h.DepletionAge != 0 {
		fmt.Fprintf(w, "Projected corpus depleted at age %d\n", h.DepletionAge)
	}
	fmt.Fprintln(w)

	d := report.Dignity
	fmt.Fprintf(w, "Dignity gauge: yield %s vs need %s, ratio %s (%s)\n",
		FormatCurrency(d.AnnualYield, currency), FormatCurrency(d.AnnualNeed, currency), d.Ratio.StringFixed(2), d.Band)

	sol := report.Solvency
	switch {
	case len(sol.Points) == 0:
		fmt.Fprintln(w, "Solvency: no liquid corpus to simulate")
	case sol.ZeroDignityAge != nil:
		fmt.Fprintf(w, "Solvency: corpus exhausted at age %d\n", *sol.ZeroDignityAge)
	default:
		fmt.Fprintf(w, "Solvency: corpus lasts to age %d\n", p.LifeExpectancy)
	}
	fmt.Fprintf(w, "Runway: %d years of drawdown on today's corpus\n", report.Runway.Years)

	rec := report.Reconciliation
	switch {
	case !rec.Checked:
		fmt.Fprintf(w, "Reconciliation: skipped (%s)\n", rec.Reason)
	case rec.Mismatch():
		fmt.Fprintf(w, "Reconciliation: year %d off by %s\n", rec.YearIndex, FormatCurrency(rec.Difference, currency))
	default:
		fmt.Fprintf(w, "Reconciliation: year %d ok\n", rec.YearIndex)
	}
}
