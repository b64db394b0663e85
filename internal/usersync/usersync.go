// Package usersync keeps a user's profile and subscription records in step
// with the identity collaborator.
//
// # State Machine
//
// The [Controller] moves through four states:
//
//	Idle ──(identity present, no data held, not syncing)──▶ Syncing
//	Syncing ──(both fetches settle)──▶ Synced
//	Synced ──(identity absent)──▶ Cleared
//	Cleared ──(identity present)──▶ Syncing
//
// Entering Syncing launches one profile fetch and one subscription fetch
// concurrently, joined by an all-settled barrier: the merge runs only after
// both reach a terminal outcome. Each slot is applied independently: a
// failed fetch is logged and leaves its slot nil without discarding the
// sibling's result.
//
// A repeated identity-present signal while a cycle is in flight is ignored,
// so exactly one fetch pair runs at a time. Each cycle carries a generation
// number; results arriving after the identity that initiated them is no
// longer current are discarded instead of applied.
//
// Identity absence wipes profile and subscription together in one update,
// never leaving one slot populated from a prior identity.
package usersync

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/shared"
)

// State represents the controller's position in the sync lifecycle.
type State int

const (
	StateIdle    State = iota // No identity seen yet
	StateSyncing              // Fetch pair in flight
	StateSynced               // Both fetches settled, slots applied
	StateCleared              // Identity went absent, slots wiped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSyncing:
		return "syncing"
	case StateSynced:
		return "synced"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Fetcher is the slice of the backend API the controller needs.
// Satisfied by [services.Library].
type Fetcher interface {
	ProfileByIdentity(ctx context.Context, identity models.Identity) (*models.UserProfile, error)
	CurrentSubscription(ctx context.Context, identity models.Identity) (*models.Subscription, error)
}

// Context is the merged sync value exposed read-only to all consumers.
// Only the Controller mutates the underlying slots.
type Context struct {
	Identity     models.Identity      `json:"-"`
	Profile      *models.UserProfile  `json:"profile"`
	Subscription *models.Subscription `json:"subscription"`
	IsLoading    bool                 `json:"is_loading"`
}

// Controller synchronizes profile and subscription records with identity changes.
type Controller struct {
	mu      sync.Mutex
	fetcher Fetcher
	logger  *log.Logger

	state           State
	identity        models.Identity
	profile         *models.UserProfile
	subscription    *models.Subscription
	identityLoading bool
	inFlight        bool
	generation      int
}

// NewController creates a Controller over the given fetcher.
//
// Fails fast with [shared.ErrMissingConfig] when the backend handle is
// absent, so misconfiguration surfaces at startup rather than per-cycle.
func NewController(fetcher Fetcher, logger *log.Logger) (*Controller, error) {
	if fetcher == nil {
		return nil, shared.ErrMissingConfig
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Controller{
		fetcher: fetcher,
		logger:  shared.WithLogger(logger, "component", "usersync"),
		state:   StateIdle,
	}, nil
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the merged sync value. IsLoading is true while the
// identity provider is still loading or a fetch cycle has not settled.
func (c *Controller) Snapshot() Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Context{
		Identity:     c.identity,
		Profile:      c.profile,
		Subscription: c.subscription,
		IsLoading:    c.identityLoading || c.inFlight,
	}
}

// SetIdentityLoading records the identity provider's own loading phase.
func (c *Controller) SetIdentityLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identityLoading = loading
}

// SetIdentity applies an identity-change event.
//
// A present identity starts a fetch cycle unless one is in flight or data
// is already held for the same user. An absent identity clears both slots
// atomically and invalidates any in-flight cycle.
//
// When a cycle starts, the returned channel closes once both fetches have
// settled and the merge is applied (or discarded as stale). It is nil when
// the event started no cycle.
func (c *Controller) SetIdentity(ctx context.Context, identity models.Identity) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !identity.Present() {
		c.clearLocked()
		return nil
	}

	sameUser := c.identity.Present() && c.identity.User.UserID == identity.User.UserID

	// Re-entrancy guard: one fetch pair at a time.
	if c.inFlight && sameUser {
		return nil
	}

	// Data already held for this user; nothing to do.
	if sameUser && (c.profile != nil || c.subscription != nil) {
		c.identity = identity
		return nil
	}

	// A different user invalidates whatever is held or in flight.
	if !sameUser && c.identity.Present() {
		c.wipeLocked()
	}

	c.identity = identity
	c.state = StateSyncing
	c.inFlight = true
	c.generation++

	settled := make(chan struct{})
	go c.runCycle(ctx, identity, c.generation, settled)
	return settled
}

// clearLocked handles an identity-absent event. Callers must hold the lock.
func (c *Controller) clearLocked() {
	if c.state == StateIdle && !c.identity.Present() {
		// Nothing was ever synced; stay Idle.
		return
	}
	c.wipeLocked()
	c.identity = models.Identity{}
	c.state = StateCleared
}

// wipeLocked drops both slots together and invalidates in-flight results.
// Callers must hold the lock.
func (c *Controller) wipeLocked() {
	c.profile = nil
	c.subscription = nil
	c.generation++
	c.inFlight = false
}

// runCycle performs one concurrent fetch pair and applies the merge.
func (c *Controller) runCycle(ctx context.Context, identity models.Identity, generation int, settled chan struct{}) {
	defer close(settled)

	var (
		wg      sync.WaitGroup
		profile *models.UserProfile
		perr    error
		sub     *models.Subscription
		serr    error
	)

	// Both fetches are issued back-to-back; neither waits on the other.
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, perr = c.fetcher.ProfileByIdentity(ctx, identity)
	}()
	go func() {
		defer wg.Done()
		sub, serr = c.fetcher.CurrentSubscription(ctx, identity)
	}()

	// All-settled barrier: merge only once both outcomes are terminal.
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("discarding stale sync results", "generation", generation)
		return
	}

	// Each slot settles independently; one failure never discards the
	// sibling's success.
	if perr != nil {
		c.logger.Error("failed to fetch user profile", "err", perr)
	} else {
		c.profile = profile
	}

	if serr != nil {
		c.logger.Error("failed to fetch subscription", "err", serr)
	} else {
		c.subscription = sub
	}

	c.state = StateSynced
	c.inFlight = false
}
