package projection

// RateAdjustments configures the policy layers applied to the base growth
// rate when resolving a projection year's effective rate.
type RateAdjustments struct {
	ConservativeScaling  bool
	DecliningPhases      bool
	PhaseRates           [3]float64
	InflationAdjusted    bool
	InflationRatePercent float64
}

// conservativeFactor scales rates down when conservative mode is on.
const conservativeFactor = 0.6

// ResolveRate returns the effective annual rate (in percent) for the given
// projection year. The adjustment order is fixed: conservative scaling,
// then phase replacement (scaled again if conservative), then flat inflation
// subtraction, then a floor at zero. The function is total; out-of-range
// configuration is absorbed by the floor rather than rejected.
func ResolveRate(year int, baseRatePercent float64, adj RateAdjustments) float64 {
	rate := baseRatePercent
	if adj.ConservativeScaling {
		rate *= conservativeFactor
	}
	if adj.DecliningPhases {
		switch {
		case year <= 10:
			rate = adj.PhaseRates[0]
		case year <= 20:
			rate = adj.PhaseRates[1]
		default:
			rate = adj.PhaseRates[2]
		}
		if adj.ConservativeScaling {
			rate *= conservativeFactor
		}
	}
	if adj.InflationAdjusted {
		rate -= adj.InflationRatePercent
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}
