package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jask/gomarketplace/internal/storage"
)

// DefaultKey is the storage key the mobile client used for the cart blob.
const DefaultKey = "@GoMarketplace:products"

const defaultLoadTimeout = 10 * time.Second

// Store owns the cart, mirrors every change to a storage.KV under a single
// key and publishes each new item list to subscribers.
//
// Mutations are serialized: the new list is derived, written in full to
// storage and only then published. A failed write leaves the published list
// untouched.
type Store struct {
	kv  storage.KV
	key string
	log *slog.Logger

	writeMu sync.Mutex

	mu     sync.RWMutex
	items  []Item
	subs   map[int]chan []Item
	nextID int

	once        sync.Once
	ready       chan struct{}
	loadErr     error
	loadTimeout time.Duration
}

// NewStore returns an empty, not yet loaded store. An empty key means DefaultKey.
func NewStore(kv storage.KV, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		kv:    kv,
		key:   key,
		log:   log.With("component", "cart", "key", key),
		items: []Item{},
		subs:  map[int]chan []Item{},
		ready: make(chan struct{}),

		loadTimeout: defaultLoadTimeout,
	}
}

// Start loads the persisted cart in the background. Failures are logged and
// leave the cart empty.
func (s *Store) Start(ctx context.Context) {
	go func() { _ = s.Load(ctx) }()
}

// Load reads the persisted cart once. Later calls wait for the first one and
// return its error. The store counts as loaded even when loading fails.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		defer close(s.ready)
		s.loadErr = s.load(ctx)
		if s.loadErr != nil {
			s.log.Error("cart load failed", "err", s.loadErr)
		}
	})
	return s.loadErr
}

func (s *Store) load(ctx context.Context) error {
	blob, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}
	if !found {
		s.log.Debug("no persisted cart")
		return nil
	}
	items, dropped, err := decodeItems(blob)
	if err != nil {
		return err
	}
	if dropped > 0 {
		s.log.Warn("persisted cart had invalid entries", "dropped", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(items)
	s.log.Info("cart loaded", "items", len(items))
	return nil
}

// Ready is closed once the initial load has finished.
func (s *Store) Ready() <-chan struct{} { return s.ready }

// Loaded reports whether the initial load has finished.
func (s *Store) Loaded() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// StorageHealth reports a degraded backend, or "" when storage is healthy.
func (s *Store) StorageHealth() string { return storage.Health(s.kv) }

// Items returns a copy of the current cart.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Totals returns count and amount of the current cart.
func (s *Store) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.items)
}

// Subscribe returns a channel that receives the current cart right away and
// every published cart after that. Only the latest undelivered cart is kept,
// so a slow reader never blocks the store. cancel closes the channel.
func (s *Store) Subscribe() (<-chan []Item, func()) {
	ch := make(chan []Item, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- cloneItems(s.items)
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// AddToCart adds p with quantity 1, or increments it when already present.
func (s *Store) AddToCart(ctx context.Context, p Product) error {
	return s.mutate(ctx, "add", func(items []Item) ([]Item, error) {
		return Add(items, p), nil
	})
}

// Increment raises the quantity of id by one.
func (s *Store) Increment(ctx context.Context, id string) error {
	return s.mutate(ctx, "increment", func(items []Item) ([]Item, error) {
		return Increment(items, id)
	})
}

// Decrement lowers the quantity of id by one and removes it at zero.
func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.mutate(ctx, "decrement", func(items []Item) ([]Item, error) {
		return Decrement(items, id)
	})
}

// Remove drops id from the cart.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove", func(items []Item) ([]Item, error) {
		return Remove(items, id)
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear", func([]Item) ([]Item, error) {
		return []Item{}, nil
	})
}

func (s *Store) mutate(ctx context.Context, op string, fn func([]Item) ([]Item, error)) error {
	// a mutation must never be overwritten by a late initial load
	if !s.Loaded() {
		go func() {
			// detached from the mutation's cancellation, bounded on its own
			loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
			defer cancel()
			_ = s.Load(loadCtx)
		}()
		select {
		case <-s.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, err := fn(s.Items())
	if err != nil {
		return err
	}
	blob, err := encodeItems(next)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		s.log.Error("cart persist failed", "op", op, "err", err)
		return fmt.Errorf("persist cart: %w", err)
	}

	s.mu.Lock()
	s.publishLocked(next)
	s.mu.Unlock()

	s.log.Debug("cart updated", "op", op, "items", len(next))
	return nil
}

func (s *Store) publishLocked(items []Item) {
	s.items = items
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- cloneItems(items):
		default:
		}
	}
}
