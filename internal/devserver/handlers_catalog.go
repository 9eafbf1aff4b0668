package devserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// handleListProducts returns the catalog in the DRF envelope shape. An
// optional search parameter narrows by case-insensitive substring match on
// name and description, mirroring the backend's search behavior.
func (s *Server) handleListProducts(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		results = append(results, p)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// handleGetProduct resolves the path segment as a numeric id first, then as
// a slug, so both detail routes share one endpoint.
func (s *Server) handleGetProduct(c *gin.Context) {
	key := c.Param("slug")

	s.mu.Lock()
	defer s.mu.Unlock()

	id, idErr := strconv.ParseInt(key, 10, 64)
	for _, p := range s.products {
		if (idErr == nil && p.ID == id) || p.Slug == key {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// handleListCategories answers with a bare array, unlike the enveloped
// product list. The client normalizes both shapes.
func (s *Server) handleListCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.categories)
}

func (s *Server) handleGetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cat := range s.categories {
		if cat.ID == id {
			c.JSON(http.StatusOK, cat)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}
