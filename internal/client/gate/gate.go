// Package gate decides whether a protected view may be shown. Every mount
// re-verifies the stored credential with the server and fails closed.
package gate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tasktrack/internal/client/credential"
	"tasktrack/internal/errors"
)

// State is the verdict of one boundary.
type State int

const (
	Checking State = iota
	Granted
	Denied
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// ErrUnmounted is returned by Wait when the boundary was unmounted before it settled.
var ErrUnmounted = errors.New("boundary unmounted")

// Verifier answers whether a credential is valid. An error means no answer.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// Observer receives every state a boundary enters, in order, starting with
// Checking. A verdict reached after Unmount is not reported. The observer may
// call back into its boundary, for example to Unmount on Denied.
type Observer func(State)

type Gate struct {
	store    credential.Store
	verifier Verifier
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*Gate)

// WithTimeout bounds the verify call; an expired call denies.
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		g.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func New(store credential.Store, verifier Verifier, opts ...Option) *Gate {
	g := &Gate{
		store:    store,
		verifier: verifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Boundary is one mount of a protected view.
type Boundary struct {
	mu         sync.Mutex
	notifyMu   sync.Mutex
	state      State
	generation uint64
	observer   Observer
	cancel     context.CancelFunc
	done       chan struct{}
	closeOnce  sync.Once
	unmounted  bool
}

// Mount starts a fresh check. Without a stored credential the boundary is
// Denied before Mount returns and the verifier is not called.
func (g *Gate) Mount(ctx context.Context, observer Observer) *Boundary {
	if observer == nil {
		observer = func(State) {}
	}
	b := &Boundary{
		state:    Checking,
		observer: observer,
		done:     make(chan struct{}),
	}
	observer(Checking)

	session, err := g.store.Get()
	if err != nil || session.Token == "" {
		if err != nil && !errors.Is(err, credential.ErrNoSession) {
			g.logger.Warn("Reading stored credential failed", slog.Any("error", err))
		}
		b.settle(b.generation, Denied, nil)

		return b
	}

	var verifyCtx context.Context
	if g.timeout > 0 {
		verifyCtx, b.cancel = context.WithTimeout(ctx, g.timeout)
	} else {
		verifyCtx, b.cancel = context.WithCancel(ctx)
	}

	go g.verify(verifyCtx, b, b.generation, session.Token, b.cancel)

	return b
}

func (g *Gate) verify(ctx context.Context, b *Boundary, generation uint64, token string, cancel context.CancelFunc) {
	defer cancel()

	valid, err := g.verifier.Verify(ctx, token)
	switch {
	case err != nil:
		// Transport failures deny without clearing the credential.
		g.logger.Warn("Credential verification failed", slog.Any("error", err))
		b.settle(generation, Denied, nil)
	case !valid:
		b.settle(generation, Denied, func() {
			if err := g.store.Clear(); err != nil {
				g.logger.Warn("Clearing rejected credential failed", slog.Any("error", err))
			}
		})
	default:
		b.settle(generation, Granted, nil)
	}
}

// settle applies a verdict unless the boundary was unmounted or already
// settled. apply runs first, under the boundary lock. The observer runs after
// the lock is released.
func (b *Boundary) settle(generation uint64, state State, apply func()) {
	b.mu.Lock()
	if b.unmounted || generation != b.generation || b.state != Checking {
		b.mu.Unlock()

		return
	}
	if apply != nil {
		apply()
	}
	b.state = state
	b.closeOnce.Do(func() { close(b.done) })
	b.mu.Unlock()

	b.notify(state)
}

// notify delivers state to the observer unless the boundary has been unmounted
// since it settled. Calls are serialized by notifyMu, which Unmount never takes.
func (b *Boundary) notify(state State) {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	b.mu.Lock()
	unmounted := b.unmounted
	b.mu.Unlock()
	if unmounted {
		return
	}

	b.observer(state)
}

// State returns the current state.
func (b *Boundary) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// Unmount cancels an in-flight check and discards its result.
func (b *Boundary) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unmounted {
		return
	}
	b.unmounted = true
	b.generation++
	if b.cancel != nil {
		b.cancel()
	}
	b.closeOnce.Do(func() { close(b.done) })
}

// Wait blocks until the boundary settles, is unmounted, or ctx ends.
func (b *Boundary) Wait(ctx context.Context) (State, error) {
	select {
	case <-b.done:
	case <-ctx.Done():
		return b.State(), errors.WithStack(ctx.Err())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unmounted && b.state == Checking {
		return b.state, ErrUnmounted
	}

	return b.state, nil
}
