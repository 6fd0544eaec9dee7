// Package marketdata supplies a suggested base growth rate per asset label.
// The coordinator treats the suggestion as an ordinary state patch; nothing
// downstream knows where a rate came from.
package marketdata

import "context"

// Provider fetches the suggested annual growth rate (percent) for an asset.
type Provider interface {
	SuggestedRate(ctx context.Context, assetLabel string) (float64, error)
	Name() string
}

// StaticProvider serves a fixed rate table. Used when no market-data
// endpoint is configured, and as a controllable double in tests.
type StaticProvider struct {
	Rates map[string]float64
}

// NewStaticProvider returns a provider with long-run nominal CAGR estimates
// for the built-in asset labels.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Rates: map[string]float64{
		"sp500":    9,
		"nasdaq":   11,
		"msciwrld": 7.5,
		"bonds":    3.5,
	}}
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) SuggestedRate(_ context.Context, assetLabel string) (float64, error) {
	if rate, ok := s.Rates[assetLabel]; ok {
		return rate, nil
	}
	return 0, ErrUnknownAsset
}
