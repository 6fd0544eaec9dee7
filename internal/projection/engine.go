package projection

import (
	"math"

	"WealthCompass/internal/model"
)

// Result holds the end-of-horizon outcome, rounded to whole currency units.
type Result struct {
	FinalValue       float64
	TotalContributed float64
}

// YearPoint is one row of the per-year projection sequence, rounded to whole
// currency units for charting and tabulation.
type YearPoint struct {
	Year        int
	Value       float64
	Contributed float64
}

// Project computes the compounded value of a recurring investment over the
// horizon. Growth applies first each year, then that year's contributions are
// deposited (end-of-year deposits). A zero horizon returns the starting
// capital unchanged. The function is pure and has no error paths.
func Project(startingCapital, monthlyContribution, baseRatePercent float64, horizonYears int, plan model.ContributionPlan, adj RateAdjustments) Result {
	value := startingCapital
	contributed := startingCapital
	for year := 1; year <= horizonYears; year++ {
		rate := ResolveRate(year, baseRatePercent, adj)
		yearly := 12 * monthlyFor(year, monthlyContribution, plan)
		contributed += yearly
		value = value*(1+rate/100) + yearly
	}
	if value < 0 {
		value = 0
	}
	return Result{
		FinalValue:       math.Round(value),
		TotalContributed: math.Round(contributed),
	}
}

// ProjectSeries returns the year-by-year sequence of the same computation,
// one point per year from 1 through horizonYears.
func ProjectSeries(startingCapital, monthlyContribution, baseRatePercent float64, horizonYears int, plan model.ContributionPlan, adj RateAdjustments) []YearPoint {
	if horizonYears < 1 {
		return nil
	}
	points := make([]YearPoint, 0, horizonYears)
	value := startingCapital
	contributed := startingCapital
	for year := 1; year <= horizonYears; year++ {
		rate := ResolveRate(year, baseRatePercent, adj)
		yearly := 12 * monthlyFor(year, monthlyContribution, plan)
		contributed += yearly
		value = value*(1+rate/100) + yearly
		rounded := value
		if rounded < 0 {
			rounded = 0
		}
		points = append(points, YearPoint{
			Year:        year,
			Value:       math.Round(rounded),
			Contributed: math.Round(contributed),
		})
	}
	return points
}

// AdjustmentsFrom extracts the rate policy configuration from portfolio inputs.
func AdjustmentsFrom(in model.PortfolioInputs) RateAdjustments {
	return RateAdjustments{
		ConservativeScaling:  in.ConservativeScaling,
		DecliningPhases:      in.DecliningPhases,
		PhaseRates:           in.PhaseRates,
		InflationAdjusted:    in.InflationAdjusted,
		InflationRatePercent: in.InflationRatePercent,
	}
}

// monthlyFor resolves the contribution in force for a given year. Pause is
// checked before boost so that a hand-assembled plan carrying a stray boost
// amount still stops contributing past the pause year.
func monthlyFor(year int, base float64, plan model.ContributionPlan) float64 {
	switch {
	case plan.Mode == model.PlanPause && year > plan.AfterYear:
		return 0
	case plan.Mode == model.PlanBoost && year > plan.AfterYear:
		return plan.BoostedMonthly
	default:
		return base
	}
}
