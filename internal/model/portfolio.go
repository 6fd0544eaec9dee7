package model

import "time"

// PlanMode selects which contribution schedule change, if any, is active.
type PlanMode string

const (
	PlanNone  PlanMode = "none"
	PlanPause PlanMode = "pause"
	PlanBoost PlanMode = "boost"
)

// ContributionPlan describes a change to the contribution schedule taking
// effect after AfterYear. Exactly one variant is active at a time, so a
// state where pause and boost are both set cannot be represented.
type ContributionPlan struct {
	Mode           PlanMode `json:"mode"`
	AfterYear      int      `json:"after_year,omitempty"`
	BoostedMonthly float64  `json:"boosted_monthly,omitempty"`
}

// NoPlan keeps the base contribution for the whole horizon.
func NoPlan() ContributionPlan {
	return ContributionPlan{Mode: PlanNone}
}

// PauseAfter stops contributions for every year after the given year.
func PauseAfter(year int) ContributionPlan {
	return ContributionPlan{Mode: PlanPause, AfterYear: year}
}

// BoostAfter raises the monthly contribution for every year after the given year.
func BoostAfter(year int, monthly float64) ContributionPlan {
	return ContributionPlan{Mode: PlanBoost, AfterYear: year, BoostedMonthly: monthly}
}

// PortfolioInputs are the user-controlled fields of a portfolio
// configuration. This subset is what gets fingerprinted for change detection
// and what gets persisted to the remote tier.
type PortfolioInputs struct {
	StartingCapital      float64          `json:"starting_capital"`
	MonthlyContribution  float64          `json:"monthly_contribution"`
	HorizonYears         int              `json:"horizon_years"`
	CurrentAge           *int             `json:"current_age,omitempty"`
	HurdleRatePercent    float64          `json:"hurdle_rate_percent"`
	AssetLabel           string           `json:"asset_label"`
	BaseRatePercent      float64          `json:"base_rate_percent"`
	Plan                 ContributionPlan `json:"plan"`
	ConservativeScaling  bool             `json:"conservative_scaling"`
	DecliningPhases      bool             `json:"declining_phases"`
	PhaseRates           [3]float64       `json:"phase_rates"`
	InflationAdjusted    bool             `json:"inflation_adjusted"`
	InflationRatePercent float64          `json:"inflation_rate_percent"`
}

// PortfolioState is the canonical configuration plus its last-computed
// outputs. Derived fields are always a pure function of the inputs at the
// moment they were computed and are never accepted from callers.
type PortfolioState struct {
	PortfolioInputs

	FutureValue    float64   `json:"future_value"`
	BenchmarkValue float64   `json:"benchmark_value"`
	Outperformance float64   `json:"outperformance"`
	TargetYear     int       `json:"target_year"`
	FutureAge      *int      `json:"future_age,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultInputs returns the configuration used on first run, before any
// user edit or stored state exists.
func DefaultInputs() PortfolioInputs {
	return PortfolioInputs{
		StartingCapital:     0,
		MonthlyContribution: 500,
		HorizonYears:        20,
		HurdleRatePercent:   7,
		AssetLabel:          "sp500",
		BaseRatePercent:     9,
		Plan:                NoPlan(),
		PhaseRates:          [3]float64{9, 7, 5},
	}
}
