package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitReadySucceedsAfterRetries(t *testing.T) {
	p := &flakyPinger{failures: 3}

	err := WaitReady(context.Background(), p, time.Millisecond, 50)

	assert.NoError(t, err)
	assert.Equal(t, 4, p.calls)
}

func TestWaitReadyGivesUp(t *testing.T) {
	p := &flakyPinger{failures: 100}

	err := WaitReady(context.Background(), p, time.Millisecond, 5)

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 5, p.calls)
}

func TestWaitReadyHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &flakyPinger{failures: 100}

	err := WaitReady(ctx, p, time.Hour, 50)

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 1, p.calls)
}

type hangingPinger struct {
	calls        int
	hadDeadlines bool
}

func (p *hangingPinger) Ping(ctx context.Context) error {
	p.calls++
	_, ok := ctx.Deadline()
	p.hadDeadlines = ok
	<-ctx.Done()
	return ctx.Err()
}

func TestWaitReadyBoundsHangingPings(t *testing.T) {
	floor := pingFloor
	pingFloor = 20 * time.Millisecond
	t.Cleanup(func() { pingFloor = floor })
	p := &hangingPinger{}

	start := time.Now()
	err := WaitReady(context.Background(), p, 10*time.Millisecond, 3)

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, p.hadDeadlines)
	assert.GreaterOrEqual(t, p.calls, 1)
	assert.Less(t, time.Since(start), time.Second)
}
