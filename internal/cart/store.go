package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

// Store is the single source of truth for one session's in-progress cart.
// Mutations are serialized by a per-session mutex and persisted to the
// snapshot store after every change. Persistence failures are logged, never
// surfaced: the in-memory cart stays authoritative for the session.
type Store struct {
	sessionID string
	snaps     SnapshotStore
	logger    *zap.Logger

	mu   sync.Mutex
	cart domain.Cart
}

// NewStore creates the store for a session, restoring the persisted cart if
// one exists. A corrupt snapshot is discarded and the session starts empty;
// the load path never returns an error to the caller.
func NewStore(ctx context.Context, sessionID string, snaps SnapshotStore, logger *zap.Logger) *Store {
	s := &Store{
		sessionID: sessionID,
		snaps:     snaps,
		logger:    logger,
		cart:      domain.Cart{Items: []domain.CartItem{}},
	}

	data, err := snaps.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			logger.Warn("Failed to load cart snapshot, starting empty",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
		return s
	}

	restored, err := Restore(data)
	if err != nil {
		logger.Error("Corrupt cart snapshot, discarding stored value",
			zap.String("session_id", sessionID),
			zap.Error(err))
		if delErr := snaps.Delete(ctx, sessionID); delErr != nil {
			logger.Warn("Failed to delete corrupt cart snapshot", zap.Error(delErr))
		}
		return s
	}

	s.cart = restored
	return s
}

// Add merges the product into the cart and persists the new state
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int, selected map[string]string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = Add(s.cart, product, quantity, selected)
	s.persist(ctx)
	return copyCart(s.cart)
}

// Remove drops every slot of the product from the cart and persists
func (s *Store) Remove(ctx context.Context, productID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = Remove(s.cart, productID)
	s.persist(ctx)
	return copyCart(s.cart)
}

// SetQuantity updates the product's quantity and persists. Zero or negative
// behaves as Remove.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = SetQuantity(s.cart, productID, quantity)
	s.persist(ctx)
	return copyCart(s.cart)
}

// Clear empties the cart and persists the empty state
func (s *Store) Clear(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = Clear(s.cart)
	s.persist(ctx)
	return copyCart(s.cart)
}

// Cart returns a copy of the current cart
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart)
}

// Total returns the derived cart total
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total
}

// ItemsCount returns the derived sum of quantities
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemsCount
}

// persist writes the full cart under the session key. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.cart)
	if err != nil {
		s.logger.Error("Failed to marshal cart snapshot",
			zap.String("session_id", s.sessionID),
			zap.Error(err))
		return
	}
	if err := s.snaps.Save(ctx, s.sessionID, data); err != nil {
		s.logger.Warn("Failed to persist cart snapshot",
			zap.String("session_id", s.sessionID),
			zap.Error(err))
	}
}

func copyCart(c domain.Cart) domain.Cart {
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	return domain.Cart{Items: items, Total: c.Total, ItemsCount: c.ItemsCount}
}
