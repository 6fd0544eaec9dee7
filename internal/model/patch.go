package model

// Patch is a partial update to PortfolioInputs. Nil fields are left
// untouched. Patches are only ever applied by the sync coordinator; nothing
// else mutates a PortfolioState.
type Patch struct {
	StartingCapital      *float64          `json:"starting_capital,omitempty"`
	MonthlyContribution  *float64          `json:"monthly_contribution,omitempty"`
	HorizonYears         *int              `json:"horizon_years,omitempty"`
	CurrentAge           *int              `json:"current_age,omitempty"`
	ClearCurrentAge      bool              `json:"clear_current_age,omitempty"`
	HurdleRatePercent    *float64          `json:"hurdle_rate_percent,omitempty"`
	AssetLabel           *string           `json:"asset_label,omitempty"`
	BaseRatePercent      *float64          `json:"base_rate_percent,omitempty"`
	Plan                 *ContributionPlan `json:"plan,omitempty"`
	ConservativeScaling  *bool             `json:"conservative_scaling,omitempty"`
	DecliningPhases      *bool             `json:"declining_phases,omitempty"`
	PhaseRates           *[3]float64       `json:"phase_rates,omitempty"`
	InflationAdjusted    *bool             `json:"inflation_adjusted,omitempty"`
	InflationRatePercent *float64          `json:"inflation_rate_percent,omitempty"`
}

// Apply merges the patch into the given inputs.
func (p Patch) Apply(in *PortfolioInputs) {
	if p.StartingCapital != nil {
		in.StartingCapital = *p.StartingCapital
	}
	if p.MonthlyContribution != nil {
		in.MonthlyContribution = *p.MonthlyContribution
	}
	if p.HorizonYears != nil {
		in.HorizonYears = *p.HorizonYears
	}
	if p.CurrentAge != nil {
		age := *p.CurrentAge
		in.CurrentAge = &age
	}
	if p.ClearCurrentAge {
		in.CurrentAge = nil
	}
	if p.HurdleRatePercent != nil {
		in.HurdleRatePercent = *p.HurdleRatePercent
	}
	if p.AssetLabel != nil {
		in.AssetLabel = *p.AssetLabel
	}
	if p.BaseRatePercent != nil {
		in.BaseRatePercent = *p.BaseRatePercent
	}
	if p.Plan != nil {
		in.Plan = *p.Plan
	}
	if p.ConservativeScaling != nil {
		in.ConservativeScaling = *p.ConservativeScaling
	}
	if p.DecliningPhases != nil {
		in.DecliningPhases = *p.DecliningPhases
	}
	if p.PhaseRates != nil {
		in.PhaseRates = *p.PhaseRates
	}
	if p.InflationAdjusted != nil {
		in.InflationAdjusted = *p.InflationAdjusted
	}
	if p.InflationRatePercent != nil {
		in.InflationRatePercent = *p.InflationRatePercent
	}
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p == Patch{}
}
