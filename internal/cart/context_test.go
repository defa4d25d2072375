package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/gomarketplace/internal/storage"
)

func TestFromContextWithoutProvider(t *testing.T) {
	s, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrNoProvider)
	require.Nil(t, s)
}

func TestFromContextTypedNil(t *testing.T) {
	_, err := FromContext(NewContext(context.Background(), nil))
	require.ErrorIs(t, err, ErrNoProvider)
}

func TestFromContextReturnsProvidedStore(t *testing.T) {
	store := NewStore(storage.NewMemory(), "", nil)
	ctx := NewContext(context.Background(), store)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	require.Same(t, store, got)

	// survives derived contexts
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	got, err = FromContext(child)
	require.NoError(t, err)
	require.Same(t, store, got)
}
