package coordinator

import (
	"context"
	"math"
	"testing"

	"WealthCompass/internal/model"
	"WealthCompass/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries_AnonymousSeesSamplesOnly(t *testing.T) {
	c := newTestCoordinator(t, store.NewMemoryLocal(), store.NewMemoryRemote(), "")

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SampleEntries(), entries)

	_, err = c.AddEntry(context.Background(), 5000)
	assert.ErrorIs(t, err, ErrSignInRequired)
	_, err = c.UpdateEntry(context.Background(), "sample-1", 5000)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.ErrorIs(t, c.DeleteEntry(context.Background(), "sample-1"), ErrSignInRequired)
}

func TestAddEntry_VarianceSnapshotAgainstCurrentProjection(t *testing.T) {
	remote := store.NewMemoryRemote()
	c := newTestCoordinator(t, store.NewMemoryLocal(), remote, "alice")

	c.UpdateState(model.Patch{
		StartingCapital:     fl(0),
		MonthlyContribution: fl(500),
		BaseRatePercent:     fl(30),
		HorizonYears:        intp(1),
	})
	// Projected future value is 6000; observing 6600 is +10%.
	e, err := c.AddEntry(context.Background(), 6600)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, e.TargetValue)
	assert.Equal(t, 600.0, e.Variance)
	assert.InDelta(t, 10.0, e.VariancePct, 1e-9)
	assert.Equal(t, "alice", e.Owner)
	assert.NotEmpty(t, e.ID)

	// Later assumption changes leave the stored snapshot untouched.
	c.UpdateState(model.Patch{BaseRatePercent: fl(5)})
	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6000.0, entries[0].TargetValue)
	assert.Equal(t, 600.0, entries[0].Variance)
}

func TestUpdateEntry_RevaluesAgainstOriginalTarget(t *testing.T) {
	remote := store.NewMemoryRemote()
	c := newTestCoordinator(t, store.NewMemoryLocal(), remote, "alice")

	e, err := c.AddEntry(context.Background(), 5000)
	require.NoError(t, err)
	target := e.TargetValue

	updated, err := c.UpdateEntry(context.Background(), e.ID, 7000)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, updated.Amount)
	assert.Equal(t, target, updated.TargetValue)
	assert.Equal(t, 7000.0-target, updated.Variance)

	_, err = c.UpdateEntry(context.Background(), "missing", 7000)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteEntry(t *testing.T) {
	remote := store.NewMemoryRemote()
	c := newTestCoordinator(t, store.NewMemoryLocal(), remote, "alice")

	e, err := c.AddEntry(context.Background(), 5000)
	require.NoError(t, err)
	require.NoError(t, c.DeleteEntry(context.Background(), e.ID))

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryValidation_RejectsBeforeAnyTierIsTouched(t *testing.T) {
	remote := store.NewMemoryRemote()
	c := newTestCoordinator(t, store.NewMemoryLocal(), remote, "alice")

	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := c.AddEntry(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected writes must not be partially applied")
}

func TestEntries_IdentityMismatchSurfacesFromTier(t *testing.T) {
	remote := store.NewMemoryRemote()

	// The tier itself rejects a row owned by someone else under alice's key.
	foreign := model.NewEntry("mallory", 100, 100)
	require.ErrorIs(t, remote.InsertEntry(context.Background(), "alice", foreign), store.ErrIdentityMismatch)

	// Through the coordinator the sentinel stays matchable after wrapping.
	c := newTestCoordinator(t, store.NewMemoryLocal(), mismatchRemote{remote}, "alice")
	assert.ErrorIs(t, c.DeleteEntry(context.Background(), "not-yours"), store.ErrIdentityMismatch)
}

// mismatchRemote simulates a tier whose ownership check fires on delete.
type mismatchRemote struct{ *store.MemoryRemote }

func (mismatchRemote) DeleteEntry(context.Context, string, string) error {
	return store.ErrIdentityMismatch
}
