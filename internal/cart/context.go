package cart

import (
	"context"
	"errors"
)

// ErrNoProvider is returned by FromContext when no store was installed.
var ErrNoProvider = errors.New("cart: store used outside of a cart provider; install one with cart.NewContext")

type storeKey struct{}

// NewContext returns a copy of ctx that provides s to everything below it.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store provided by ctx.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}
