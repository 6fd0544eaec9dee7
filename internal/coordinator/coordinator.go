// Package coordinator owns the canonical in-memory PortfolioState and is the
// only component that mutates it or talks to the persistence tiers. It loads
// on a remote → local → defaults chain, writes locally on every update,
// broadcasts to other contexts, and syncs meaningful edits to the remote
// tier behind a debounce so bursts of edits collapse into one network write.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"WealthCompass/internal/broadcast"
	"WealthCompass/internal/fingerprint"
	"WealthCompass/internal/model"
	"WealthCompass/internal/projection"
	"WealthCompass/internal/store"

	"github.com/rs/zerolog"
)

var (
	// ErrSignInRequired rejects entry writes from anonymous sessions.
	ErrSignInRequired = errors.New("coordinator: sign in required")
	// ErrInvalidAmount rejects non-finite or non-positive entry amounts.
	ErrInvalidAmount = errors.New("coordinator: amount must be a positive number")
)

const (
	defaultDebounceDelay = 3 * time.Second
	defaultRemoteTimeout = 10 * time.Second
)

// Options configures a Coordinator.
type Options struct {
	Local    store.LocalStore  // required
	Remote   store.RemoteStore // nil disables remote sync entirely
	Identity string            // empty means anonymous
	Defaults *model.PortfolioInputs

	DebounceDelay time.Duration
	RemoteTimeout time.Duration
	CurrentYear   int // used only for the displayed target year
	Logger        zerolog.Logger
}

// Coordinator reconciles the local tier, the remote tier, and same-process
// listeners around one canonical PortfolioState. One instance per running
// context; other contexts only ever see the state through the broadcast
// channel or by loading from the tiers themselves.
type Coordinator struct {
	local    store.LocalStore
	remote   store.RemoteStore
	broker   *broadcast.Broker
	log      zerolog.Logger
	defaults model.PortfolioInputs

	delay         time.Duration
	remoteTimeout time.Duration
	currentYear   int

	// wmu serializes remote writes: a debounce firing while an earlier
	// write is still in flight queues behind it instead of racing it.
	wmu sync.Mutex

	mu         sync.Mutex
	state      model.PortfolioState
	lastSynced string // fingerprint of the inputs last confirmed on the remote tier
	identity   string
	timer      *time.Timer
	writeSeq   uint64 // bumped on every armed write; stale writes check it and stand down
	closed     bool
}

// New builds a Coordinator and runs the initial load chain.
func New(ctx context.Context, opts Options) (*Coordinator, error) {
	if opts.Local == nil {
		return nil, errors.New("coordinator: local store is required")
	}
	defaults := model.DefaultInputs()
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = defaultDebounceDelay
	}
	remoteTimeout := opts.RemoteTimeout
	if remoteTimeout <= 0 {
		remoteTimeout = defaultRemoteTimeout
	}
	currentYear := opts.CurrentYear
	if currentYear == 0 {
		currentYear = time.Now().Year()
	}

	c := &Coordinator{
		local:         opts.Local,
		remote:        opts.Remote,
		broker:        broadcast.NewBroker(),
		log:           opts.Logger.With().Str("component", "coordinator").Logger(),
		defaults:      defaults,
		delay:         delay,
		remoteTimeout: remoteTimeout,
		currentYear:   currentYear,
		identity:      opts.Identity,
	}

	c.mu.Lock()
	c.loadLocked(ctx)
	c.mu.Unlock()
	return c, nil
}

// loadLocked runs the remote → local → defaults chain for the current
// identity, recomputes derived fields, and records the loaded fingerprint as
// last-synced.
func (c *Coordinator) loadLocked(ctx context.Context) {
	if c.identity != "" && c.remote != nil {
		in, err := c.remote.FetchInputs(ctx, c.identity)
		switch {
		case err == nil:
			c.state.PortfolioInputs = *in
			c.recomputeLocked()
			c.lastSynced = fingerprint.Fingerprint(c.state.PortfolioInputs)
			// Remote is authoritative: overwrite the local copy.
			st := c.state
			if err := c.local.SaveState(&st); err != nil {
				c.log.Warn().Err(err).Msg("local save after remote load failed")
			}
			c.log.Info().Str("source", "remote").Msg("portfolio state loaded")
			return
		case errors.Is(err, store.ErrNotFound):
			c.log.Debug().Str("identity", c.identity).Msg("no remote portfolio record")
		default:
			c.log.Warn().Err(err).Msg("remote read failed, falling back to local")
		}
	}

	st, err := c.local.LoadState()
	if err != nil {
		c.log.Warn().Err(err).Msg("local read failed, falling back to defaults")
	}
	if st != nil {
		// Stored derived fields are only a resume cache; recompute regardless.
		c.state.PortfolioInputs = st.PortfolioInputs
		c.log.Info().Str("source", "local").Msg("portfolio state loaded")
	} else {
		c.state.PortfolioInputs = c.defaults
		c.log.Info().Str("source", "defaults").Msg("portfolio state initialized")
	}
	c.recomputeLocked()
	c.lastSynced = fingerprint.Fingerprint(c.state.PortfolioInputs)
}

// UpdateState merges the patch into the canonical state, recomputes derived
// fields, persists locally, broadcasts, and — when the input fingerprint
// changed for a signed-in identity — (re)arms the debounced remote sync.
// The updated state is returned.
func (c *Coordinator) UpdateState(patch model.Patch) model.PortfolioState {
	c.mu.Lock()
	defer c.mu.Unlock()

	patch.Apply(&c.state.PortfolioInputs)
	c.recomputeLocked()
	fp := fingerprint.Fingerprint(c.state.PortfolioInputs)

	// Local write strictly after recompute, strictly before broadcast.
	st := c.state
	if err := c.local.SaveState(&st); err != nil {
		c.log.Warn().Err(err).Msg("local save failed, continuing in memory")
	}
	c.broker.Publish(st)

	if fp != c.lastSynced && c.identity != "" && c.remote != nil {
		c.armLocked(fp)
	}
	return st
}

// armLocked starts (or restarts) the debounce timer for a remote write of
// the current inputs. Every call supersedes the previous one.
func (c *Coordinator) armLocked(fp string) {
	c.writeSeq++
	seq := c.writeSeq
	id := c.identity
	in := c.state.PortfolioInputs
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.syncRemote(seq, id, in, fp)
	})
}

// syncRemote performs the debounced remote write. A write that has been
// superseded, or whose identity is no longer current, stands down without
// touching the last-synced fingerprint. The supersession check runs after
// wmu is acquired, so a write that waited out an in-flight one re-validates
// before it touches the network.
func (c *Coordinator) syncRemote(seq uint64, id string, in model.PortfolioInputs, fp string) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	if c.closed || seq != c.writeSeq || id != c.identity {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.remoteTimeout)
	defer cancel()

	if err := c.remote.SaveInputs(ctx, id, in); err != nil {
		// Leave lastSynced stale so the next edit retries.
		c.log.Warn().Err(err).Msg("remote sync failed, will retry on next edit")
		return
	}

	c.mu.Lock()
	if seq == c.writeSeq && id == c.identity {
		c.lastSynced = fp
		c.log.Debug().Str("identity", id).Msg("remote sync completed")
	}
	c.mu.Unlock()
}

// Flush synchronously pushes unsynced inputs to the remote tier, reporting
// failure to the caller. It is a no-op for anonymous sessions and when
// nothing meaningful changed since the last confirmed sync.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.identity == "" || c.remote == nil {
		c.mu.Unlock()
		return nil
	}
	fp := fingerprint.Fingerprint(c.state.PortfolioInputs)
	if fp == c.lastSynced {
		c.mu.Unlock()
		return nil
	}
	c.cancelTimerLocked()
	seq := c.writeSeq
	id := c.identity
	in := c.state.PortfolioInputs
	c.mu.Unlock()

	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	if c.closed || seq != c.writeSeq || id != c.identity {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.remote.SaveInputs(ctx, id, in); err != nil {
		return err
	}

	c.mu.Lock()
	if seq == c.writeSeq && id == c.identity {
		c.lastSynced = fp
	}
	c.mu.Unlock()
	return nil
}

// State returns a copy of the canonical state.
func (c *Coordinator) State() model.PortfolioState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a listener for full-state snapshots. Listeners must
// replace their view with each received state, not merge.
func (c *Coordinator) Subscribe() (<-chan model.PortfolioState, func()) {
	return c.broker.Subscribe()
}

// SetIdentity switches the signed-in identity, cancels any pending write for
// the previous one, and reloads the state chain for the new identity.
func (c *Coordinator) SetIdentity(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == c.identity {
		return
	}
	c.cancelTimerLocked()
	c.identity = id
	c.loadLocked(ctx)
	c.broker.Publish(c.state)
}

// SignOut suppresses further remote writes but leaves both the in-memory and
// local-tier state intact for the next anonymous or re-authenticated session.
func (c *Coordinator) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == "" {
		return
	}
	c.cancelTimerLocked()
	c.identity = ""
	c.log.Info().Msg("signed out, remote sync suspended")
}

// Reconcile re-reads the local tier and adopts a state another context
// persisted there, for platforms where broadcast delivery isn't guaranteed.
// Adoption never schedules a remote write; the writing context owns that.
func (c *Coordinator) Reconcile() {
	st, err := c.local.LoadState()
	if err != nil || st == nil {
		return
	}
	fp := fingerprint.Fingerprint(st.PortfolioInputs)

	c.mu.Lock()
	defer c.mu.Unlock()
	if fp == fingerprint.Fingerprint(c.state.PortfolioInputs) {
		return
	}
	c.state.PortfolioInputs = st.PortfolioInputs
	c.recomputeLocked()
	c.broker.Publish(c.state)
	c.log.Info().Msg("adopted state written by another context")
}

// Close cancels pending work and drops all subscribers. The local store is
// owned by the caller and stays open.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelTimerLocked()
	c.mu.Unlock()
	c.broker.Close()
}

func (c *Coordinator) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Invalidate any write already in flight.
	c.writeSeq++
}

// recomputeLocked re-derives every calculated field from the current inputs.
// The benchmark runs the identical engine at the hurdle rate with no policy
// adjustments.
func (c *Coordinator) recomputeLocked() {
	in := c.state.PortfolioInputs
	res := projection.Project(in.StartingCapital, in.MonthlyContribution, in.BaseRatePercent, in.HorizonYears, in.Plan, projection.AdjustmentsFrom(in))
	bench := projection.Project(in.StartingCapital, in.MonthlyContribution, in.HurdleRatePercent, in.HorizonYears, in.Plan, projection.RateAdjustments{})

	c.state.FutureValue = res.FinalValue
	c.state.BenchmarkValue = bench.FinalValue
	c.state.Outperformance = res.FinalValue - bench.FinalValue
	c.state.TargetYear = c.currentYear + in.HorizonYears
	if in.CurrentAge != nil {
		age := *in.CurrentAge + in.HorizonYears
		c.state.FutureAge = &age
	} else {
		c.state.FutureAge = nil
	}
	c.state.UpdatedAt = time.Now().UTC()
}
