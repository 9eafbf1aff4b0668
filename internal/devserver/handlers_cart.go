package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

func (s *Server) handleGetCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.cartJSON(s.userID(c)))
}

func (s *Server) handleCartAdd(c *gin.Context) {
	var body struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.productByID(body.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	userID := s.userID(c)
	items := s.carts[userID]
	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += body.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.nextItemID++
		items = append(items, models.CartItem{
			ID:       s.nextItemID,
			Product:  product,
			Quantity: body.Quantity,
		})
	}
	s.carts[userID] = items

	c.JSON(http.StatusOK, s.cartJSON(userID))
}

func (s *Server) handleCartUpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}
	if body.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"quantity": []string{"Ensure this value is greater than or equal to 1."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.userID(c)
	items := s.carts[userID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = body.Quantity
			s.carts[userID] = items
			c.JSON(http.StatusOK, s.cartJSON(userID))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleCartRemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.userID(c)
	items := s.carts[userID]
	for i := range items {
		if items[i].ID == itemID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleCartClear(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[s.userID(c)] = nil
	c.Status(http.StatusNoContent)
}

// cartJSON builds the GET /cart/ shape. Caller must hold s.mu.
func (s *Server) cartJSON(userID int64) models.Cart {
	items := s.carts[userID]
	if items == nil {
		items = []models.CartItem{}
	}
	return models.Cart{ID: userID, Items: items}
}

// productByID looks up a catalog item. Caller must hold s.mu.
func (s *Server) productByID(id int64) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
