package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/common"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client over the backend's REST surface.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenStore
	log     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client (tests use this to
// shorten timeouts or inject transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// NewHTTPClient constructs a client for the API rooted at baseURL.
// A trailing slash on baseURL is tolerated.
func NewHTTPClient(baseURL string, tokens TokenStore, log logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request is one logical call. retried marks that the single
// refresh-and-replay this request is entitled to has been spent, which
// guarantees at most one retry per original call.
type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	header  http.Header
	noAuth  bool
	retried bool
}

func (c *HTTPClient) do(ctx context.Context, req *request) ([]byte, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var rd io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, rd)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, vals := range req.header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}

	// The bearer token is read fresh from persisted storage on every
	// attempt, never cached on the client, so a token refreshed by a
	// concurrent request is picked up immediately.
	if !req.noAuth {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.noAuth && !req.retried {
		req.retried = true
		if err := c.refreshTokens(ctx); err != nil {
			c.purgeTokens(ctx)
			return nil, fmt.Errorf("token refresh failed: %w", common.ErrUnauthorized)
		}
		c.log.Debug(ctx, "access token refreshed, replaying request", "method", req.method, "path", req.path)
		return c.do(ctx, req)
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.noAuth {
		// Replay came back unauthorized as well. Terminal.
		c.purgeTokens(ctx)
	}

	return nil, parseError(resp.StatusCode, body)
}

// refreshTokens performs the single refresh attempt a 401 is entitled to.
// The refresh endpoint may rotate the refresh token; when it does not, the
// stored one is kept.
func (c *HTTPClient) refreshTokens(ctx context.Context) error {
	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if refresh == "" {
		return common.ErrUnauthorized
	}

	raw, err := c.do(ctx, &request{
		method:  http.MethodPost,
		path:    "/token/refresh/",
		body:    map[string]string{"refresh": refresh},
		noAuth:  true,
		retried: true,
	})
	if err != nil {
		return err
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return c.tokens.SaveTokens(ctx, pair.Access, pair.Refresh)
}

func (c *HTTPClient) purgeTokens(ctx context.Context) {
	if err := c.tokens.ClearTokens(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear stored tokens", "error", err)
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.do(ctx, &request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Register creates an account. The caller logs in separately; there is no
// "registered but not logged in" state on the client.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) error {
	_, err := c.do(ctx, &request{method: http.MethodPost, path: "/register/", body: reg, noAuth: true})
	return err
}

// Login exchanges credentials for a token pair. Persisting the pair is the
// caller's responsibility.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error) {
	raw, err := c.do(ctx, &request{method: http.MethodPost, path: "/token/", body: creds, noAuth: true})
	if err != nil {
		return models.TokenPair{}, err
	}
	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token response: %w", err)
	}
	return pair, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, "/user/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	raw, err := c.do(ctx, &request{method: http.MethodPatch, path: "/user/", body: update})
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &u, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, params url.Values) ([]models.Product, error) {
	raw, err := c.do(ctx, &request{method: http.MethodGet, path: "/products/", query: params})
	if err != nil {
		return nil, err
	}
	return DecodeList[models.Product](raw)
}

func (c *HTTPClient) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("search", query)
	return c.ListProducts(ctx, params)
}

func (c *HTTPClient) GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	var p models.Product
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(idOrSlug)+"/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := c.do(ctx, &request{method: http.MethodGet, path: "/categories/"})
	if err != nil {
		return nil, err
	}
	return DecodeList[models.Category](raw)
}

func (c *HTTPClient) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	if err := c.getJSON(ctx, "/categories/"+strconv.FormatInt(id, 10)+"/", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *HTTPClient) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.getJSON(ctx, "/cart/", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	_, err := c.do(ctx, &request{method: http.MethodPost, path: "/cart/add/", body: body})
	return err
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	body := map[string]any{"quantity": quantity}
	path := "/cart/items/" + strconv.FormatInt(itemID, 10) + "/"
	_, err := c.do(ctx, &request{method: http.MethodPatch, path: path, body: body})
	return err
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, itemID int64) error {
	path := "/cart/items/" + strconv.FormatInt(itemID, 10) + "/"
	_, err := c.do(ctx, &request{method: http.MethodDelete, path: path})
	return err
}

func (c *HTTPClient) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, &request{method: http.MethodDelete, path: "/cart/clear/"})
	return err
}

// CreateOrder submits a checkout. The idempotency key identifies one
// checkout attempt so a retry after a timeout cannot create a duplicate
// order; the backend de-duplicates on it.
func (c *HTTPClient) CreateOrder(ctx context.Context, draft models.OrderDraft, idempotencyKey string) (*models.Order, error) {
	hdr := http.Header{}
	if idempotencyKey != "" {
		hdr.Set("Idempotency-Key", idempotencyKey)
	}
	raw, err := c.do(ctx, &request{method: http.MethodPost, path: "/orders/", body: draft, header: hdr})
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}

func (c *HTTPClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := c.do(ctx, &request{method: http.MethodGet, path: "/orders/"})
	if err != nil {
		return nil, err
	}
	return DecodeList[models.Order](raw)
}

func (c *HTTPClient) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.getJSON(ctx, "/orders/"+strconv.FormatInt(id, 10)+"/", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
