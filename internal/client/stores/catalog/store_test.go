package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandonyx/fitsupply-cli/internal/client/api"
	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

type fakeAPI struct {
	products   []models.Product
	listErr    error
	lastParams url.Values

	searchResults map[string][]models.Product
	searchErr     error
	lastQuery     string

	product    *models.Product
	productErr error
	lastSlug   string

	categories []models.Category
	catErr     error
}

func (f *fakeAPI) ListProducts(_ context.Context, params url.Values) ([]models.Product, error) {
	f.lastParams = params
	return f.products, f.listErr
}

func (f *fakeAPI) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	results := f.searchResults[query]
	if results == nil {
		results = []models.Product{}
	}
	return results, nil
}

func (f *fakeAPI) GetProduct(_ context.Context, idOrSlug string) (*models.Product, error) {
	f.lastSlug = idOrSlug
	return f.product, f.productErr
}

func (f *fakeAPI) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, f.catErr
}

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Slug: "whey", Name: "Whey Protein", Category: 10, Price: 29.99},
		{ID: 2, Slug: "creatine", Name: "Creatine", Category: 10, Price: 19.99},
		{ID: 3, Slug: "shaker", Name: "Shaker Bottle", Category: 20, Price: 9.99},
	}
}

func newTestStore(f *fakeAPI) *Store {
	return NewStore(f, logging.NewDefault(slog.LevelError))
}

func TestFetchProducts_ReplacesMasterAndFilteredView(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{products: testProducts()}
	s := newTestStore(f)

	res := s.FetchProducts(ctx, nil)

	require.True(t, res.OK)
	assert.Len(t, s.Products(), 3)
	assert.Equal(t, s.Products(), s.FilteredProducts())
	assert.False(t, s.IsLoading())
}

func TestFetchProducts_FailureRecordsError(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{listErr: &api.Error{Status: 500, Detail: "boom"}}
	s := newTestStore(f)

	res := s.FetchProducts(ctx, nil)

	require.False(t, res.OK)
	assert.Equal(t, "boom", s.LastError())
	assert.Empty(t, s.Products())
	assert.False(t, s.IsLoading())
}

func TestFilterByCategory(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{products: testProducts()}
	s := newTestStore(f)
	require.True(t, s.FetchProducts(ctx, nil).OK)

	cat := int64(10)
	s.FilterByCategory(&cat)

	filtered := s.FilteredProducts()
	require.Len(t, filtered, 2)
	assert.Equal(t, "Whey Protein", filtered[0].Name)
	require.NotNil(t, s.SelectedCategory())
	assert.Equal(t, int64(10), *s.SelectedCategory())

	// Master list stays intact; nil clears the filter.
	assert.Len(t, s.Products(), 3)
	s.FilterByCategory(nil)
	assert.Len(t, s.FilteredProducts(), 3)
	assert.Nil(t, s.SelectedCategory())
}

func TestSearchProducts_ReplacesFilteredView(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{
		products: testProducts(),
		searchResults: map[string][]models.Product{
			"protein": {{ID: 1, Slug: "whey", Name: "Whey Protein"}},
		},
	}
	s := newTestStore(f)
	require.True(t, s.FetchProducts(ctx, nil).OK)

	res := s.SearchProducts(ctx, "protein")

	require.True(t, res.OK)
	assert.Equal(t, "protein", s.SearchQuery())
	assert.Equal(t, "protein", f.lastQuery)
	require.Len(t, s.FilteredProducts(), 1)
	assert.Len(t, s.Products(), 3, "master list untouched by search")
}

func TestSearchProducts_ZeroResultsIsEmptyNotStale(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{products: testProducts()}
	s := newTestStore(f)
	require.True(t, s.FetchProducts(ctx, nil).OK)
	require.NotEmpty(t, s.FilteredProducts())

	res := s.SearchProducts(ctx, "unobtainium")

	require.True(t, res.OK)
	assert.Empty(t, s.FilteredProducts())
}

func TestSearchProducts_EmptyQueryResetsToFullFetch(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{
		products: testProducts(),
		searchResults: map[string][]models.Product{
			"protein": {{ID: 1, Name: "Whey Protein"}},
		},
	}
	s := newTestStore(f)
	require.True(t, s.SearchProducts(ctx, "protein").OK)
	require.Len(t, s.FilteredProducts(), 1)

	res := s.SearchProducts(ctx, "")

	require.True(t, res.OK)
	assert.Len(t, s.FilteredProducts(), 3)
	assert.Empty(t, s.SearchQuery())
}

func TestResetFilters(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{products: testProducts()}
	s := newTestStore(f)
	require.True(t, s.FetchProducts(ctx, nil).OK)

	cat := int64(20)
	s.FilterByCategory(&cat)
	require.Len(t, s.FilteredProducts(), 1)

	s.ResetFilters()

	assert.Len(t, s.FilteredProducts(), 3)
	assert.Nil(t, s.SelectedCategory())
	assert.Empty(t, s.SearchQuery())
}

func TestFetchProductBySlug_PopulatesCurrentSlot(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{product: &models.Product{ID: 1, Slug: "whey", Name: "Whey Protein"}}
	s := newTestStore(f)

	res := s.FetchProductBySlug(ctx, "whey")

	require.True(t, res.OK)
	assert.Equal(t, "whey", f.lastSlug)
	require.NotNil(t, s.CurrentProduct())
	assert.Equal(t, "Whey Protein", s.CurrentProduct().Name)
	assert.Empty(t, s.Products(), "detail fetch is independent of the list cache")
}

func TestFetchProductByID_UsesNumericPath(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{product: &models.Product{ID: 42, Name: "BCAA"}}
	s := newTestStore(f)

	require.True(t, s.FetchProductByID(ctx, 42).OK)
	assert.Equal(t, "42", f.lastSlug)
}

func TestFetchCategories(t *testing.T) {
	ctx := context.Background()
	f := &fakeAPI{categories: []models.Category{{ID: 10, Name: "Supplements"}}}
	s := newTestStore(f)

	require.True(t, s.FetchCategories(ctx).OK)
	require.Len(t, s.Categories(), 1)
	assert.Equal(t, "Supplements", s.Categories()[0].Name)
}
