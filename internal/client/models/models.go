// Package models defines the wire shapes exchanged with the FitSupply
// backend. The server owns all of these; the client holds read-only cached
// copies replaced wholesale on every fetch.
package models

import "time"

// User is the customer profile as returned by GET /user/.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// TokenPair is the response of POST /token/ and POST /token/refresh/.
// The refresh endpoint may omit a rotated refresh token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Category is read-only reference data.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog item. Category holds the category id; detail views
// resolve it against the categories cache.
type Product struct {
	ID                int64    `json:"id"`
	Slug              string   `json:"slug"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Price             float64  `json:"price"`
	ComparePrice      *float64 `json:"compare_price,omitempty"`
	StockQuantity     int      `json:"stock_quantity"`
	LowStockThreshold int      `json:"low_stock_threshold"`
	IsFeatured        bool     `json:"is_featured"`
	IsActive          bool     `json:"is_active"`
	Category          int64    `json:"category"`
	Image             string   `json:"image,omitempty"`
}

// CartItem is one line of the server-side cart. Product is a snapshot taken
// by the server at fetch time.
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the response of GET /cart/.
type Cart struct {
	ID    int64      `json:"id"`
	Items []CartItem `json:"items"`
}

// OrderStatus values follow the backend's order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is an immutable order line, priced at checkout time.
type OrderItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is created once at checkout and immutable from the client's
// perspective afterwards, except for status transitions made by admins on
// the backend.
type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderDraft is the request body of POST /orders/.
type OrderDraft struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethod   string `json:"payment_method"`
}

// Credentials is the request body of POST /token/.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the request body of POST /register/.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate is a partial update for PATCH /user/. Nil fields are
// omitted; the server owns the merge semantics.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}
