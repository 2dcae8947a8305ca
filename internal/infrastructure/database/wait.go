package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrBackendUnavailable is returned by WaitReady when every attempt failed.
var ErrBackendUnavailable = errors.New("database service unavailable")

// Pinger is anything that can tell whether the backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// pingFloor is the shortest time a single ping may take. Short poll
// intervals would otherwise cut off a TLS handshake to a hosted database.
var pingFloor = time.Second

// WaitReady polls p every interval, at most attempts times. The first
// successful ping returns nil. Each ping is bounded by max(interval,
// pingFloor) and the whole wait by attempts*interval plus one ping, so a
// hanging connect cannot stretch it.
func WaitReady(ctx context.Context, p Pinger, interval time.Duration, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	pingTimeout := max(interval, pingFloor)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(attempts)*interval+pingTimeout)
	defer cancel()

	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = ping(ctx, p, pingTimeout); lastErr == nil {
			if i > 1 {
				log.Printf("[database] backend ready after %d attempts", i)
			}
			return nil
		}
		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w after %d attempts: %w", ErrBackendUnavailable, i, lastErr)
		case <-time.After(interval):
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrBackendUnavailable, attempts, lastErr)
}

func ping(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Ping(ctx)
}
