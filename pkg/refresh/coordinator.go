package refresh

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/logger"
)

// RenewFunc exchanges a refresh token for a new access token against the
// server. It is called by at most one goroutine at a time.
type RenewFunc func(ctx context.Context, refreshToken string) (string, error)

type result struct {
	access string
	err    error
}

// Coordinator guarantees at most one outstanding renewal call at any time.
// Callers that discover an expired or rejected access token while a renewal
// is already in flight wait for that renewal's outcome instead of issuing a
// duplicate call. The coordinator is the only component that writes tokens
// during renewal.
//
// A Coordinator is an explicit object rather than package state so tests and
// applications construct fresh instances with their own stores.
type Coordinator struct {
	renew  RenewFunc
	tokens *credentials.Tokens
	log    *slog.Logger

	mu       sync.Mutex
	inFlight bool
	waiters  []chan result
}

// New creates a coordinator renewing through renew and persisting through
// tokens.
func New(renew RenewFunc, tokens *credentials.Tokens, opts ...Option) *Coordinator {
	if renew == nil {
		panic("refresh: renew func is required")
	}
	if tokens == nil {
		panic("refresh: token store is required")
	}

	c := &Coordinator{
		renew:  renew,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Noop()
	}
	return c
}

// Refresh returns a fresh access token, collapsing concurrent calls into a
// single renewal request.
//
// When no renewal is in flight and no refresh token is stored, Refresh fails
// immediately with ErrNoRefreshToken without touching the network or the
// waiter queue. A renewal failure is terminal for the cycle: every waiter
// receives the same ErrRenewalFailed and both tokens are cleared. The renewal
// call itself is never retried.
func (c *Coordinator) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		ch := make(chan result, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case res := <-ch:
			return res.access, res.err
		case <-ctx.Done():
			// Leaving the queue must not disturb the renewal or other waiters.
			c.removeWaiter(ch)
			return "", ctx.Err()
		}
	}

	refreshToken, ok := c.tokens.Refresh()
	if !ok {
		c.mu.Unlock()
		return "", ErrNoRefreshToken
	}

	c.inFlight = true
	c.mu.Unlock()

	// The settled value reaches the waiters even if renew panics: the flag is
	// cleared and the queue drained on every exit path.
	res := result{err: ErrRenewalFailed}
	defer func() { c.settle(res) }()

	c.log.DebugContext(ctx, "token renewal started")

	access, err := c.renew(ctx, refreshToken)
	if err != nil {
		// Terminal for this cycle: the session is over for everyone waiting.
		c.tokens.Clear()
		res = result{err: errors.Join(ErrRenewalFailed, err)}
		c.log.DebugContext(ctx, "token renewal failed", slog.Any("error", err))
		return "", res.err
	}

	c.tokens.SetAccess(access)
	res = result{access: access}
	c.log.DebugContext(ctx, "token renewal succeeded")
	return access, nil
}

// settle clears the in-flight flag and hands the outcome to every waiter
// still queued. Waiter channels are buffered, so delivery never blocks.
func (c *Coordinator) settle(res result) {
	c.mu.Lock()
	c.inFlight = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}

func (c *Coordinator) removeWaiter(ch chan result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiters = slices.DeleteFunc(c.waiters, func(w chan result) bool { return w == ch })
}
