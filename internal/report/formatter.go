// Package report renders plain-text summaries of projections and entries for
// logs and status output.
package report

import (
	"fmt"
	"strings"

	"WealthCompass/internal/model"
	"WealthCompass/internal/projection"

	"github.com/dustin/go-humanize"
)

// ProjectionSummary formats the projection outcome of the given state on a
// single line, including the benchmark comparison.
func ProjectionSummary(st model.PortfolioState) string {
	verdict := "ahead of"
	if st.Outperformance < 0 {
		verdict = "behind"
	}
	return fmt.Sprintf("%s over %dy at %.1f%%: %s projected (%s %s benchmark at %.1f%%), target year %d",
		st.AssetLabel,
		st.HorizonYears,
		st.BaseRatePercent,
		money(st.FutureValue),
		money(st.Outperformance),
		verdict,
		st.HurdleRatePercent,
		st.TargetYear,
	)
}

// Milestones tabulates the projection at every fifth year plus the final
// year, one line per row.
func Milestones(st model.PortfolioState) string {
	series := projection.ProjectSeries(
		st.StartingCapital,
		st.MonthlyContribution,
		st.BaseRatePercent,
		st.HorizonYears,
		st.Plan,
		projection.AdjustmentsFrom(st.PortfolioInputs),
	)
	var b strings.Builder
	for _, p := range series {
		if p.Year%5 != 0 && p.Year != st.HorizonYears {
			continue
		}
		fmt.Fprintf(&b, "year %2d: value %s, contributed %s\n", p.Year, money(p.Value), money(p.Contributed))
	}
	return strings.TrimRight(b.String(), "\n")
}

// EntriesSummary formats each entry's variance against its target.
func EntriesSummary(entries []model.PortfolioEntry) string {
	if len(entries) == 0 {
		return "no entries recorded"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: observed %s vs target %s (%+.1f%%)\n",
			e.CreatedAt.Format("2006-01-02"), money(e.Amount), money(e.TargetValue), e.VariancePct)
	}
	return strings.TrimRight(b.String(), "\n")
}

func money(v float64) string {
	if v < 0 {
		return "-" + humanize.CommafWithDigits(-v, 0)
	}
	return humanize.CommafWithDigits(v, 0)
}
