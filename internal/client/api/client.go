// Package api is the single egress point for all FitSupply backend calls.
//
// Two cross-cutting policies are applied uniformly by the HTTP
// implementation:
//
//   - Authentication injection: every outgoing request attaches the current
//     access token as a bearer credential, read fresh from the persisted
//     token store at call time, so a token refreshed by a concurrent request
//     is picked up immediately.
//   - Transparent refresh-on-401: an unauthorized response triggers exactly
//     one refresh using the stored refresh token, then one replay of the
//     original request. A second failure is terminal: both stored tokens are
//     purged before the error is surfaced.
//
// All other HTTP error statuses are surfaced unmodified as *Error; the
// client does not interpret business-level error bodies.
package api

import (
	"context"
	"net/url"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// TokenStore is the persisted credential storage the client reads on every
// call and updates after a successful refresh.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

// Client names every backend operation the stores consume.
type Client interface {
	// Identity.
	Register(ctx context.Context, reg models.Registration) error
	Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)

	// Catalog.
	ListProducts(ctx context.Context, params url.Values) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// Cart.
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error

	// Orders.
	CreateOrder(ctx context.Context, draft models.OrderDraft, idempotencyKey string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
}
