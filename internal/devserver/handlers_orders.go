package devserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// handleCreateOrder converts the caller's cart into an immutable order.
// Repeated submissions carrying the same Idempotency-Key return the order
// created by the first attempt instead of placing a duplicate.
func (s *Server) handleCreateOrder(c *gin.Context) {
	var draft models.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key := c.GetHeader("Idempotency-Key"); key != "" {
		if order, ok := s.idempotency[key]; ok {
			c.JSON(http.StatusCreated, order)
			return
		}
	}

	userID := s.userID(c)
	items := s.carts[userID]
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cart is empty"})
		return
	}

	s.nextOrderID++
	order := models.Order{
		ID:              s.nextOrderID,
		OrderNumber:     fmt.Sprintf("FS-%d-%04d", time.Now().Year(), s.nextOrderID),
		Status:          models.OrderStatusPending,
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.BillingAddress,
		PaymentMethod:   draft.PaymentMethod,
		CreatedAt:       time.Now().UTC(),
	}
	for _, item := range items {
		s.nextItemID++
		order.Items = append(order.Items, models.OrderItem{
			ID:        s.nextItemID,
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
		order.TotalAmount += item.Product.Price * float64(item.Quantity)
	}

	s.orders[userID] = append(s.orders[userID], order)
	s.carts[userID] = nil
	s.log.Info(c.Request.Context(), "order created",
		"order_number", order.OrderNumber, "user_id", userID, "total", order.TotalAmount)
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		s.idempotency[key] = order
	}

	c.JSON(http.StatusCreated, order)
}

// handleListOrders returns the caller's order history, newest first, in the
// same envelope shape as the product list.
func (s *Server) handleListOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.orders[s.userID(c)]
	results := make([]models.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		results = append(results, orders[i])
	}

	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders[s.userID(c)] {
		if order.ID == id {
			c.JSON(http.StatusOK, order)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}
