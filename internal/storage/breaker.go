package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	breakerFailures = 3
	breakerCooldown = 10 * time.Second
)

type getResult struct {
	value string
	found bool
}

// callerGone marks a failure that happened after the caller's own context
// ended. It does not count against the backend.
type callerGone struct{ err error }

func (c callerGone) Error() string { return c.err.Error() }
func (c callerGone) Unwrap() error { return c.err }

// Breaker fails fast with gobreaker.ErrOpenState once the wrapped backend
// has failed breakerFailures times in a row, until the cooldown passes.
// Cancellations and deadlines of the caller's context are not failures; a
// hung backend still trips it through the client's own network timeouts.
type Breaker struct {
	name string
	next KV
	cb   *gobreaker.CircuitBreaker[getResult]
}

func NewBreaker(next KV, name string, log *slog.Logger) *Breaker {
	if log == nil {
		log = slog.Default()
	}
	return &Breaker{
		name: name,
		next: next,
		cb: gobreaker.NewCircuitBreaker[getResult](gobreaker.Settings{
			Name:        "kv:" + name,
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= breakerFailures
			},
			IsSuccessful: func(err error) bool {
				var gone callerGone
				return err == nil || errors.As(err, &gone)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("storage breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func (b *Breaker) execute(ctx context.Context, fn func() (getResult, error)) (getResult, error) {
	res, err := b.cb.Execute(func() (getResult, error) {
		res, err := fn()
		if err != nil && ctx.Err() != nil {
			return res, callerGone{err}
		}
		return res, err
	})
	var gone callerGone
	if errors.As(err, &gone) {
		return res, gone.err
	}
	return res, err
}

func (b *Breaker) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := b.execute(ctx, func() (getResult, error) {
		v, ok, err := b.next.Get(ctx, key)
		return getResult{value: v, found: ok}, err
	})
	if err != nil {
		return "", false, err
	}
	return res.value, res.found, nil
}

func (b *Breaker) Set(ctx context.Context, key, value string) error {
	_, err := b.execute(ctx, func() (getResult, error) {
		return getResult{}, b.next.Set(ctx, key, value)
	})
	return err
}

func (b *Breaker) Delete(ctx context.Context, key string) error {
	_, err := b.execute(ctx, func() (getResult, error) {
		return getResult{}, b.next.Delete(ctx, key)
	})
	return err
}

// State is the current breaker state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Health describes the breaker when it is not closed, e.g. "redis breaker
// open". It is empty while requests flow normally.
func (b *Breaker) Health() string {
	st := b.State()
	if st == gobreaker.StateClosed {
		return ""
	}
	return fmt.Sprintf("%s breaker %s", b.name, st)
}
