// Package catalog owns the product browsing state: the master product list,
// the filtered view the UI renders, the current detail product, and the
// read-only category reference data.
//
// Category filtering is pure client-side narrowing of the already-fetched
// master list; search is server-side. The two are not composed: invoking one
// does not preserve the other's constraint.
package catalog

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

type apiClient interface {
	ListProducts(ctx context.Context, params url.Values) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type Store struct {
	api apiClient
	log logging.Logger

	actionMu sync.Mutex

	mu               sync.RWMutex
	products         []models.Product
	filtered         []models.Product
	current          *models.Product
	categories       []models.Category
	selectedCategory *int64
	searchQuery      string
	loading          bool
	lastErr          string
}

func NewStore(client apiClient, log logging.Logger) *Store {
	return &Store{api: client, log: log.With("store", "catalog")}
}

// Products returns the master list from the last full fetch.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// FilteredProducts returns the view the UI renders: the master list narrowed
// by the active category filter or replaced by the last search result.
func (s *Store) FilteredProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.filtered...)
}

func (s *Store) CurrentProduct() *models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) SelectedCategory() *int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedCategory == nil {
		return nil
	}
	id := *s.selectedCategory
	return &id
}

func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
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

// FetchProducts replaces both the master list and the filtered view with the
// full result set. Both response shapes the backend produces (bare array and
// enveloped results) arrive here already normalized by the API client.
func (s *Store) FetchProducts(ctx context.Context, params url.Values) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.fetchProducts(ctx, params)
}

func (s *Store) fetchProducts(ctx context.Context, params url.Values) stores.Result {
	s.beginAction()

	products, err := s.api.ListProducts(ctx, params)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch products")
		s.mu.Lock()
		s.loading = false
		s.lastErr = res.Message
		s.mu.Unlock()
		return res
	}

	s.mu.Lock()
	s.products = products
	s.filtered = products
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// FetchProductByID populates the current-product slot used by detail views,
// independent of the list cache.
func (s *Store) FetchProductByID(ctx context.Context, id int64) stores.Result {
	return s.fetchCurrent(ctx, strconv.FormatInt(id, 10))
}

// FetchProductBySlug is FetchProductByID for slug-addressed detail pages.
func (s *Store) FetchProductBySlug(ctx context.Context, slug string) stores.Result {
	return s.fetchCurrent(ctx, slug)
}

func (s *Store) fetchCurrent(ctx context.Context, idOrSlug string) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	p, err := s.api.GetProduct(ctx, idOrSlug)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch product")
		s.mu.Lock()
		s.loading = false
		s.lastErr = res.Message
		s.mu.Unlock()
		return res
	}

	s.mu.Lock()
	s.current = p
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// FetchCategories replaces the category reference cache.
func (s *Store) FetchCategories(ctx context.Context) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		res := stores.Fail(err, "Failed to fetch categories")
		s.mu.Lock()
		s.loading = false
		s.lastErr = res.Message
		s.mu.Unlock()
		return res
	}

	s.mu.Lock()
	s.categories = categories
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// FilterByCategory narrows the filtered view to products whose category id
// matches exactly. A nil id clears the filter back to the full master list.
// No server round-trip happens.
func (s *Store) FilterByCategory(categoryID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedCategory = categoryID
	if categoryID == nil {
		s.filtered = s.products
		return
	}

	filtered := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Category == *categoryID {
			filtered = append(filtered, p)
		}
	}
	s.filtered = filtered
}

// SearchProducts delegates to the backend search endpoint when the query is
// non-empty; an empty query resets to the unfiltered fetch. The result
// replaces the filtered view even when empty — never the stale prior list.
func (s *Store) SearchProducts(ctx context.Context, query string) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.mu.Lock()
	s.searchQuery = query
	s.loading = true
	s.mu.Unlock()

	if query == "" {
		return s.fetchProducts(ctx, nil)
	}

	results, err := s.api.SearchProducts(ctx, query)
	if err != nil {
		// Matching the fetch-failure policy here would leave a stale error
		// visible after the next keystroke; a failed search just stops the
		// spinner.
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return stores.Fail(err, "Search failed")
	}

	s.mu.Lock()
	s.filtered = results
	s.loading = false
	s.mu.Unlock()
	return stores.OK()
}

// ResetFilters restores the filtered view to the master list and clears the
// selected category and search query.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = s.products
	s.selectedCategory = nil
	s.searchQuery = ""
}
