// Package orders owns order creation and history retrieval. Orders are
// created once at checkout and immutable from the client's perspective
// afterwards; the list and current-order caches are replaced wholesale on
// every fetch.
package orders

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

type apiClient interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft, idempotencyKey string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
}

// newIdempotencyKey is a test seam for the per-attempt checkout key.
var newIdempotencyKey = uuid.NewString

type Store struct {
	api apiClient
	log logging.Logger

	actionMu sync.Mutex

	mu      sync.RWMutex
	orders  []models.Order
	current *models.Order
	loading bool
	lastErr string
}

func NewStore(client apiClient, log logging.Logger) *Store {
	return &Store{api: client, log: log.With("store", "orders")}
}

func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.orders...)
}

// CurrentOrder is the slot the order-confirmation view reads right after
// checkout.
func (s *Store) CurrentOrder() *models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	o := *s.current
	return &o
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

func (s *Store) beginAction() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) failAction(msg string) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = msg
	s.mu.Unlock()
}

// Create submits one checkout attempt. Every attempt carries a fresh
// client-generated idempotency key, so a retry after a timeout cannot turn
// into a duplicate order. On success the returned order — including its
// generated order number — is stored as the current order before the caller
// navigates to a confirmation view keyed by that number.
func (s *Store) Create(ctx context.Context, draft models.OrderDraft) (stores.Result, *models.Order) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	order, err := s.api.CreateOrder(ctx, draft, newIdempotencyKey())
	if err != nil {
		res := stores.Fail(err, "Failed to create order")
		s.failAction(res.Message)
		return res, nil
	}

	s.mu.Lock()
	s.current = order
	s.loading = false
	s.mu.Unlock()

	s.log.Info(ctx, "order created", "order_number", order.OrderNumber)
	return stores.OK(), order
}

// Fetch replaces the order history cache.
func (s *Store) Fetch(ctx context.Context) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch orders")
		s.failAction(res.Message)
		return res
	}

	s.mu.Lock()
	s.orders = orders
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// FetchByID replaces the current-order slot.
func (s *Store) FetchByID(ctx context.Context, id int64) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch order")
		s.failAction(res.Message)
		return res
	}

	s.mu.Lock()
	s.current = order
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}
