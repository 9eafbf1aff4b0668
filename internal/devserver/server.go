// Package devserver is an in-memory implementation of the FitSupply backend
// REST contract. It exists for local development and as a realistic fixture
// for integration tests; the production backend is an external system this
// repository only consumes.
package devserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

// Config holds the knobs the stub needs.
type Config struct {
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns settings suitable for local development.
func DefaultConfig() Config {
	return Config{
		JWTSecret:  []byte("dev-only-secret"),
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}
}

type account struct {
	id        int64
	username  string
	email     string
	password  string
	firstName string
	lastName  string
}

// Server holds all state behind one mutex; the stub favors obviousness over
// throughput.
type Server struct {
	cfg Config
	log logging.Logger

	mu            sync.Mutex
	nextUserID    int64
	nextItemID    int64
	nextOrderID   int64
	accounts      map[string]*account // by username
	refreshTokens map[string]int64    // live refresh token -> user id
	products      []models.Product
	categories    []models.Category
	carts         map[int64][]models.CartItem // user id -> items
	orders        map[int64][]models.Order    // user id -> orders
	idempotency   map[string]models.Order     // idempotency key -> created order
}

func New(cfg Config, log logging.Logger) *Server {
	s := &Server{
		cfg:           cfg,
		log:           log.With("component", "devserver"),
		accounts:      make(map[string]*account),
		refreshTokens: make(map[string]int64),
		carts:         make(map[int64][]models.CartItem),
		orders:        make(map[int64][]models.Order),
		idempotency:   make(map[string]models.Order),
	}
	s.seedCatalog()
	return s
}

// Router builds the gin engine exposing the REST surface under /api.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/register/", s.handleRegister)
		api.POST("/token/", s.handleToken)
		api.POST("/token/refresh/", s.handleTokenRefresh)

		api.GET("/products/", s.handleListProducts)
		api.GET("/products/:slug/", s.handleGetProduct)
		api.GET("/categories/", s.handleListCategories)
		api.GET("/categories/:id/", s.handleGetCategory)

		authed := api.Group("", s.authRequired())
		{
			authed.GET("/user/", s.handleGetUser)
			authed.PATCH("/user/", s.handleUpdateUser)

			authed.GET("/cart/", s.handleGetCart)
			authed.POST("/cart/add/", s.handleCartAdd)
			authed.PATCH("/cart/items/:id/", s.handleCartUpdateItem)
			authed.DELETE("/cart/items/:id/", s.handleCartRemoveItem)
			authed.DELETE("/cart/clear/", s.handleCartClear)

			authed.POST("/orders/", s.handleCreateOrder)
			authed.GET("/orders/", s.handleListOrders)
			authed.GET("/orders/:id/", s.handleGetOrder)
		}
	}

	return r
}

const ctxUserID = "userID"

// authRequired validates the bearer token and stashes the user id on the
// request context. Responses mirror the DRF conventions the client parses.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		userID, err := s.parseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func (s *Server) userID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

func (s *Server) accountByID(id int64) *account {
	for _, a := range s.accounts {
		if a.id == id {
			return a
		}
	}
	return nil
}

func userJSON(a *account) models.User {
	return models.User{
		ID:        a.id,
		Username:  a.username,
		Email:     a.email,
		FirstName: a.firstName,
		LastName:  a.lastName,
	}
}
