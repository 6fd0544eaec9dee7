package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnknownAsset means no rate is known for the requested asset label.
var ErrUnknownAsset = errors.New("marketdata: unknown asset")

// RESTProvider fetches suggested rates from a market-data REST API.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string) *RESTProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *RESTProvider) Name() string { return "rest" }

func (p *RESTProvider) SuggestedRate(ctx context.Context, assetLabel string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/rates?asset=%s", p.BaseURL, url.QueryEscape(assetLabel))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch suggested rate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrUnknownAsset
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch suggested rate: status %d", resp.StatusCode)
	}

	var result struct {
		RatePercent float64 `json:"rate_percent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode suggested rate: %w", err)
	}
	return result.RatePercent, nil
}
