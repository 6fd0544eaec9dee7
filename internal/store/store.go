// Package store defines the persistence tiers the sync coordinator talks to:
// a fast, possibly-unavailable local tier and a slower, authoritative remote
// tier keyed by user identity.
package store

import (
	"context"
	"errors"

	"WealthCompass/internal/model"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrUnavailable means the storage medium cannot be used at all.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrIdentityMismatch means the caller tried to mutate a record owned by
	// a different identity. Fatal to the operation, not to the session.
	ErrIdentityMismatch = errors.New("store: identity mismatch")
)

// LocalStore is the device-local key/value tier. It holds the full
// PortfolioState (derived fields included, for fast resume) and the
// illustrative entry samples shown to anonymous sessions.
type LocalStore interface {
	// LoadState returns (nil, nil) when no state has been saved yet.
	LoadState() (*model.PortfolioState, error)
	SaveState(st *model.PortfolioState) error
	LoadEntries() ([]model.PortfolioEntry, error)
	SaveEntries(entries []model.PortfolioEntry) error
	Close() error
}

// RemoteStore is the authoritative per-user tier. It holds exactly the input
// fields of the portfolio (derived fields are always recomputed on load) and
// the entry collection scoped by owning identity.
type RemoteStore interface {
	FetchInputs(ctx context.Context, userID string) (*model.PortfolioInputs, error)
	SaveInputs(ctx context.Context, userID string, in model.PortfolioInputs) error

	ListEntries(ctx context.Context, userID string) ([]model.PortfolioEntry, error)
	InsertEntry(ctx context.Context, userID string, e model.PortfolioEntry) error
	UpdateEntry(ctx context.Context, userID string, e model.PortfolioEntry) error
	DeleteEntry(ctx context.Context, userID, entryID string) error
}
