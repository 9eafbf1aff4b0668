// Package cart owns the shopping cart cache. The cart is entirely
// server-authoritative: every mutation issues its command to the backend
// and, on success, immediately refetches the full cart, so the local cache
// is always a direct projection of the last successful fetch. Nothing is
// ever patched optimistically, which is why failures need no rollback.
//
// Mutations are serialized: each one holds the store's action lock through
// its trailing refetch, so concurrent quantity clicks from different UI
// components resolve in a total order instead of racing their refetches.
package cart

import (
	"context"
	"sync"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

type apiClient interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

type Store struct {
	api apiClient
	log logging.Logger

	actionMu sync.Mutex

	mu      sync.RWMutex
	cart    *models.Cart
	items   []models.CartItem
	loading bool
	lastErr string
}

func NewStore(client apiClient, log logging.Logger) *Store {
	return &Store{api: client, log: log.With("store", "cart")}
}

// Items returns the item list from the last successful fetch.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.items...)
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ItemCount is Σ quantity over the last fetched item list, never a locally
// accumulated counter.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the display-only estimate Σ(unit price × quantity); the
// authoritative total is whatever the backend computes at checkout.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Fetch resyncs the local cache with the server's cart.
func (s *Store) Fetch(ctx context.Context) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.fetch(ctx)
}

func (s *Store) fetch(ctx context.Context) stores.Result {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch cart")
		s.mu.Lock()
		s.loading = false
		s.lastErr = res.Message
		s.mu.Unlock()
		return res
	}

	s.mu.Lock()
	s.cart = cart
	s.items = cart.Items
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// mutate runs one server-side cart command followed by the full refetch,
// all under the action lock. On failure the previous item cache is left
// untouched.
func (s *Store) mutate(ctx context.Context, fallback string, op func(context.Context) error) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	if err := op(ctx); err != nil {
		res := stores.Fail(err, fallback)
		s.mu.Lock()
		s.loading = false
		s.lastErr = res.Message
		s.mu.Unlock()
		return res
	}

	return s.fetch(ctx)
}

// AddItem puts quantity units of a product into the server-side cart.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int) stores.Result {
	if quantity < 1 {
		quantity = 1
	}
	return s.mutate(ctx, "Failed to add item", func(ctx context.Context) error {
		return s.api.AddCartItem(ctx, productID, quantity)
	})
}

// UpdateQuantity sets an item's quantity. A quantity of zero or less is
// redirected to the remove path so it can never reach the backend's update
// endpoint.
func (s *Store) UpdateQuantity(ctx context.Context, itemID int64, quantity int) stores.Result {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}
	return s.mutate(ctx, "Failed to update quantity", func(ctx context.Context) error {
		return s.api.UpdateCartItem(ctx, itemID, quantity)
	})
}

// RemoveItem deletes one line from the cart.
func (s *Store) RemoveItem(ctx context.Context, itemID int64) stores.Result {
	return s.mutate(ctx, "Failed to remove item", func(ctx context.Context) error {
		return s.api.RemoveCartItem(ctx, itemID)
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) stores.Result {
	return s.mutate(ctx, "Failed to clear cart", func(ctx context.Context) error {
		return s.api.ClearCart(ctx)
	})
}
