package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/common"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

var _ Client = (*HTTPClient)(nil)

// memTokens is an in-memory TokenStore recording mutations.
type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared int
}

func (m *memTokens) AccessToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, nil
}

func (m *memTokens) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh, nil
}

func (m *memTokens) SaveTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memTokens) ClearTokens(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.cleared++
	return nil
}

func testLogger() logging.Logger {
	return logging.NewDefault(slog.LevelError)
}

func newClient(t *testing.T, handler http.Handler, tokens TokenStore) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, tokens, testLogger())
}

func TestHTTPClient_BearerReadFreshPerCall(t *testing.T) {
	var seen []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{ID: 1})
	})

	tokens := &memTokens{access: "A1"}
	c := newClient(t, mux, tokens)

	_, err := c.Profile(context.Background())
	require.NoError(t, err)

	// A token rotated by another caller must be picked up on the next call.
	tokens.SaveTokens(context.Background(), "A2", "")
	_, err = c.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer A1", "Bearer A2"}, seen)
}

func TestHTTPClient_RefreshOn401_ReplaysOnce(t *testing.T) {
	refreshCalls := 0
	userCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "R1", body["refresh"])
		json.NewEncoder(w).Encode(models.TokenPair{Access: "A2", Refresh: "R2"})
	})
	mux.HandleFunc("GET /user/", func(w http.ResponseWriter, r *http.Request) {
		userCalls++
		if r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: 7, Username: "alice"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	c := newClient(t, mux, tokens)

	u, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 2, userCalls)
	assert.Equal(t, "A2", tokens.access)
	assert.Equal(t, "R2", tokens.refresh)
}

func TestHTTPClient_SecondConsecutive401_IsTerminal(t *testing.T) {
	refreshCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		json.NewEncoder(w).Encode(models.TokenPair{Access: "A2", Refresh: "R2"})
	})
	mux.HandleFunc("GET /user/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "nope"})
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	c := newClient(t, mux, tokens)

	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// Exactly one refresh attempt per logical request, and both tokens
	// cleared once the replay also comes back unauthorized.
	assert.Equal(t, 1, refreshCalls)
	assert.Empty(t, tokens.access)
	assert.Empty(t, tokens.refresh)
}

func TestHTTPClient_RefreshFailure_PurgesTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "refresh expired"})
	})
	mux.HandleFunc("GET /cart/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &memTokens{access: "A1", refresh: "R1"}
	c := newClient(t, mux, tokens)

	_, err := c.GetCart(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Empty(t, tokens.access)
	assert.Empty(t, tokens.refresh)
	assert.Equal(t, 1, tokens.cleared)
}

func TestHTTPClient_401WithoutRefreshToken_PurgesTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &memTokens{access: "stale"}
	c := newClient(t, mux, tokens)

	_, err := c.GetCart(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, tokens.cleared)
}

func TestHTTPClient_BusinessErrorsSurfacedUnmodified(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"email":    []string{"user with this email already exists"},
			"password": []string{"too short"},
		})
	})

	c := newClient(t, mux, &memTokens{})

	err := c.Register(context.Background(), models.Registration{Username: "bob"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, []string{"too short"}, apiErr.Fields["password"])
	assert.Equal(t, "Registration failed", apiErr.FriendlyMessage("Registration failed"))
}

func TestHTTPClient_CreateOrder_SendsIdempotencyKey(t *testing.T) {
	var gotKey string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders/", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		json.NewEncoder(w).Encode(models.Order{ID: 1, OrderNumber: "FS-0001"})
	})

	c := newClient(t, mux, &memTokens{access: "A"})

	order, err := c.CreateOrder(context.Background(), models.OrderDraft{PaymentMethod: "card"}, "key-123")
	require.NoError(t, err)
	assert.Equal(t, "FS-0001", order.OrderNumber)
	assert.Equal(t, "key-123", gotKey)
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, &memTokens{}, testLogger())
	_, err := c.ListProducts(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestHTTPClient_GetProduct_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{slug}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not found."})
	})

	c := newClient(t, mux, &memTokens{})

	_, err := c.GetProduct(context.Background(), "whey-protein")
	require.ErrorIs(t, err, common.ErrNotFound)
}
