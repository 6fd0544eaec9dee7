package model

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioEntry is an actual-vs-target observation. Variance is computed
// once at creation against the projection current at that moment and stored;
// later edits to the portfolio assumptions deliberately do not rewrite it,
// so historical entries stay stable snapshots.
type PortfolioEntry struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner,omitempty"`
	Amount      float64   `json:"amount"`
	TargetValue float64   `json:"target_value"`
	Variance    float64   `json:"variance"`
	VariancePct float64   `json:"variance_pct"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEntry builds an entry for the given observed amount against the given
// target, computing the variance snapshot.
func NewEntry(owner string, amount, target float64) PortfolioEntry {
	e := PortfolioEntry{
		ID:          uuid.NewString(),
		Owner:       owner,
		Amount:      amount,
		TargetValue: target,
		CreatedAt:   time.Now().UTC(),
	}
	e.Variance, e.VariancePct = varianceAgainst(amount, target)
	return e
}

// Revalue replaces the observed amount and recomputes the variance against
// the entry's original target.
func (e *PortfolioEntry) Revalue(amount float64) {
	e.Amount = amount
	e.Variance, e.VariancePct = varianceAgainst(amount, e.TargetValue)
}

func varianceAgainst(amount, target float64) (abs, pct float64) {
	abs = amount - target
	if target != 0 {
		pct = abs / target * 100
	}
	return abs, pct
}

// SampleEntries are the illustrative records shown to anonymous sessions,
// which cannot persist entries of their own.
func SampleEntries() []PortfolioEntry {
	created := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	samples := []PortfolioEntry{
		{ID: "sample-1", Amount: 12500, TargetValue: 12000},
		{ID: "sample-2", Amount: 18200, TargetValue: 19000},
		{ID: "sample-3", Amount: 26150, TargetValue: 25500},
	}
	for i := range samples {
		samples[i].Variance, samples[i].VariancePct = varianceAgainst(samples[i].Amount, samples[i].TargetValue)
		samples[i].CreatedAt = created.AddDate(0, i*3, 0)
	}
	return samples
}
