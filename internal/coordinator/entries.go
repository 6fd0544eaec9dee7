package coordinator

import (
	"context"
	"fmt"
	"math"

	"WealthCompass/internal/model"
	"WealthCompass/internal/store"
)

// Entries returns the portfolio entries for the current identity. Anonymous
// sessions see a fixed set of illustrative samples held in the local tier
// and cannot persist entries of their own.
func (c *Coordinator) Entries(ctx context.Context) ([]model.PortfolioEntry, error) {
	c.mu.Lock()
	id := c.identity
	c.mu.Unlock()

	if id == "" || c.remote == nil {
		entries, err := c.local.LoadEntries()
		if err != nil || len(entries) == 0 {
			samples := model.SampleEntries()
			if err == nil {
				if saveErr := c.local.SaveEntries(samples); saveErr != nil {
					c.log.Warn().Err(saveErr).Msg("seeding sample entries failed")
				}
			}
			return samples, nil
		}
		return entries, nil
	}
	return c.remote.ListEntries(ctx, id)
}

// AddEntry records an actual-vs-target observation against the currently
// projected future value. The variance snapshot is computed once, here, and
// never recomputed when assumptions later change.
func (c *Coordinator) AddEntry(ctx context.Context, amount float64) (model.PortfolioEntry, error) {
	if err := validateAmount(amount); err != nil {
		return model.PortfolioEntry{}, err
	}

	c.mu.Lock()
	id := c.identity
	target := c.state.FutureValue
	c.mu.Unlock()

	if id == "" || c.remote == nil {
		return model.PortfolioEntry{}, ErrSignInRequired
	}

	e := model.NewEntry(id, amount, target)
	if err := c.remote.InsertEntry(ctx, id, e); err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("insert entry: %w", err)
	}
	c.log.Info().Str("entry", e.ID).Float64("amount", amount).Msg("entry recorded")
	return e, nil
}

// UpdateEntry replaces an entry's observed amount, recomputing its variance
// against the target stored at creation time.
func (c *Coordinator) UpdateEntry(ctx context.Context, entryID string, amount float64) (model.PortfolioEntry, error) {
	if err := validateAmount(amount); err != nil {
		return model.PortfolioEntry{}, err
	}

	c.mu.Lock()
	id := c.identity
	c.mu.Unlock()

	if id == "" || c.remote == nil {
		return model.PortfolioEntry{}, ErrSignInRequired
	}

	entries, err := c.remote.ListEntries(ctx, id)
	if err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("list entries: %w", err)
	}
	for _, e := range entries {
		if e.ID == entryID {
			e.Revalue(amount)
			if err := c.remote.UpdateEntry(ctx, id, e); err != nil {
				return model.PortfolioEntry{}, fmt.Errorf("update entry: %w", err)
			}
			return e, nil
		}
	}
	return model.PortfolioEntry{}, store.ErrNotFound
}

// DeleteEntry removes an entry owned by the current identity.
func (c *Coordinator) DeleteEntry(ctx context.Context, entryID string) error {
	c.mu.Lock()
	id := c.identity
	c.mu.Unlock()

	if id == "" || c.remote == nil {
		return ErrSignInRequired
	}
	if err := c.remote.DeleteEntry(ctx, id, entryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
