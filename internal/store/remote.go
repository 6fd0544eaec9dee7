package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"WealthCompass/internal/model"
)

// RESTRemote implements RemoteStore against the portfolio sync REST API.
type RESTRemote struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTRemote creates a remote tier client with optional proxy support.
func NewRESTRemote(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTRemote {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RESTRemote{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (r *RESTRemote) FetchInputs(ctx context.Context, userID string) (*model.PortfolioInputs, error) {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s", r.BaseURL, url.PathEscape(userID))
	var in model.PortfolioInputs
	if err := r.do(ctx, http.MethodGet, endpoint, nil, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *RESTRemote) SaveInputs(ctx context.Context, userID string, in model.PortfolioInputs) error {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s", r.BaseURL, url.PathEscape(userID))
	return r.do(ctx, http.MethodPut, endpoint, in, nil)
}

func (r *RESTRemote) ListEntries(ctx context.Context, userID string) ([]model.PortfolioEntry, error) {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s/entries", r.BaseURL, url.PathEscape(userID))
	var entries []model.PortfolioEntry
	if err := r.do(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RESTRemote) InsertEntry(ctx context.Context, userID string, e model.PortfolioEntry) error {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s/entries", r.BaseURL, url.PathEscape(userID))
	return r.do(ctx, http.MethodPost, endpoint, e, nil)
}

func (r *RESTRemote) UpdateEntry(ctx context.Context, userID string, e model.PortfolioEntry) error {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s/entries/%s", r.BaseURL, url.PathEscape(userID), url.PathEscape(e.ID))
	return r.do(ctx, http.MethodPut, endpoint, e, nil)
}

func (r *RESTRemote) DeleteEntry(ctx context.Context, userID, entryID string) error {
	endpoint := fmt.Sprintf("%s/api/v1/portfolios/%s/entries/%s", r.BaseURL, url.PathEscape(userID), url.PathEscape(entryID))
	return r.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// do performs one request with bearer auth and decodes the response into out
// when non-nil. API status codes map onto the store sentinel errors.
func (r *RESTRemote) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusForbidden:
		return ErrIdentityMismatch
	case resp.StatusCode >= 300:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d, body: %s", method, endpoint, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
