package refresh_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/refresh"
)

func newTokens(access, refreshToken string) *credentials.Tokens {
	tokens := credentials.NewTokens(credentials.NewMemoryStore(), credentials.DefaultConfig())
	if access != "" || refreshToken != "" {
		tokens.SetPair(access, refreshToken)
	}
	return tokens
}

func TestCoordinator_SingleFlight(t *testing.T) {
	t.Parallel()

	const concurrent = 10

	var calls atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})

	tokens := newTokens("expired", "r1")
	coord := refresh.New(func(ctx context.Context, refreshToken string) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		return "fresh", nil
	}, tokens)

	results := make(chan string, concurrent)
	errs := make(chan error, concurrent)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		access, err := coord.Refresh(context.Background())
		results <- access
		errs <- err
	}()

	<-started
	for range concurrent - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			access, err := coord.Refresh(context.Background())
			results <- access
			errs <- err
		}()
	}

	// Give the latecomers time to enqueue before the renewal resolves.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)
	close(errs)

	assert.Equal(t, int64(1), calls.Load(), "exactly one renewal call must reach the server")
	for access := range results {
		assert.Equal(t, "fresh", access)
	}
	for err := range errs {
		assert.NoError(t, err)
	}

	access, ok := tokens.Access()
	require.True(t, ok)
	assert.Equal(t, "fresh", access)
}

func TestCoordinator_FailureRejectsAllWaiters(t *testing.T) {
	t.Parallel()

	const concurrent = 5

	renewErr := errors.New("server says no")
	started := make(chan struct{})
	release := make(chan struct{})

	tokens := newTokens("expired", "r1")
	coord := refresh.New(func(ctx context.Context, refreshToken string) (string, error) {
		close(started)
		<-release
		return "", renewErr
	}, tokens)

	errs := make(chan error, concurrent)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := coord.Refresh(context.Background())
		errs <- err
	}()

	<-started
	for range concurrent - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := coord.Refresh(context.Background())
			errs <- err
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.ErrorIs(t, err, refresh.ErrRenewalFailed)
		assert.ErrorIs(t, err, renewErr, "all waiters must receive the same rejection")
	}

	_, ok := tokens.Access()
	assert.False(t, ok, "a failed renewal must leave no access token behind")
	_, ok = tokens.Refresh()
	assert.False(t, ok, "a failed renewal must leave no refresh token behind")
}

func TestCoordinator_NoRefreshToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	coord := refresh.New(func(ctx context.Context, refreshToken string) (string, error) {
		calls.Add(1)
		return "fresh", nil
	}, newTokens("", ""))

	_, err := coord.Refresh(context.Background())
	require.ErrorIs(t, err, refresh.ErrNoRefreshToken)
	assert.Zero(t, calls.Load(), "no network call without a refresh token")
}

func TestCoordinator_WaiterCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	tokens := newTokens("expired", "r1")
	coord := refresh.New(func(ctx context.Context, refreshToken string) (string, error) {
		close(started)
		<-release
		return "fresh", nil
	}, tokens)

	leaderDone := make(chan error, 1)
	go func() {
		_, err := coord.Refresh(context.Background())
		leaderDone <- err
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	waiterDone := make(chan error, 1)
	go func() {
		_, err := coord.Refresh(ctx)
		waiterDone <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-waiterDone:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}

	// The in-flight renewal is unaffected by the departed waiter.
	close(release)
	select {
	case err := <-leaderDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("renewal did not resolve")
	}

	access, ok := tokens.Access()
	require.True(t, ok)
	assert.Equal(t, "fresh", access)
}

func TestCoordinator_FlagClearedAfterFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	tokens := newTokens("expired", "r1")
	coord := refresh.New(func(ctx context.Context, refreshToken string) (string, error) {
		calls.Add(1)
		return "", errors.New("boom")
	}, tokens)

	_, err := coord.Refresh(context.Background())
	require.ErrorIs(t, err, refresh.ErrRenewalFailed)

	// The failure logged everyone out, so a second cycle starts from scratch.
	tokens.SetPair("expired-again", "r2")
	_, err = coord.Refresh(context.Background())
	require.ErrorIs(t, err, refresh.ErrRenewalFailed)

	assert.Equal(t, int64(2), calls.Load(), "a failed cycle must not leave the in-flight flag set")
}
