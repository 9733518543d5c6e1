package api

import "github.com/shopspring/decimal"

// User roles as reported by the auth endpoints.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// Cart statuses.
const (
	CartStatusActive    = "active"
	CartStatusCompleted = "completed"
)

// Product is a catalog entry.
type Product struct {
	ProductID               int64           `json:"productId"`
	Name                    string          `json:"name"`
	BriefDescription        string          `json:"briefDescription"`
	FullDescription         string          `json:"fullDescription"`
	TechnicalSpecifications string          `json:"technicalSpecifications"`
	Price                   decimal.Decimal `json:"price"`
	ImageURL                string          `json:"imageUrl"`
	Category                *Category       `json:"category,omitempty"`
}

// Category groups products.
type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// StoreLocation is a physical store shown on the map screen.
type StoreLocation struct {
	LocationID int64   `json:"locationId"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address"`
}

// CartLineItem is one line of a cart snapshot. Subtotal is server-computed;
// in a healthy cart it equals UnitPrice times Quantity.
type CartLineItem struct {
	CartItemID   int64           `json:"cartItemId"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	UnitPrice    decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartSnapshot is the server-authoritative state of a user's active cart at a
// point in time. ItemCount and TotalPrice come from the server and win over
// any client-side recomputation.
type CartSnapshot struct {
	CartID     int64           `json:"cartId"`
	UserID     int64           `json:"userId"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Items      []CartLineItem  `json:"items"`
	ItemCount  int             `json:"itemCount"`
}

// TotalQuantity sums the line quantities. It exists as a fallback display
// path; the server's ItemCount is authoritative.
func (s *CartSnapshot) TotalQuantity() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// ComputedTotal sums the line subtotals. Fallback display path only; the
// server's TotalPrice is authoritative.
func (s *CartSnapshot) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (s *CartSnapshot) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

// AuthResponse is the body of a successful signin.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// MessageResponse is the generic {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name                    string          `json:"name"`
	BriefDescription        string          `json:"briefDescription"`
	FullDescription         string          `json:"fullDescription"`
	TechnicalSpecifications string          `json:"technicalSpecifications"`
	Price                   decimal.Decimal `json:"price"`
	ImageURL                string          `json:"imageUrl"`
	CategoryID              int64           `json:"categoryId"`
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	CartItemID int64 `json:"cartItemId"`
	Quantity   int   `json:"quantity"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type logoutRequest struct {
	Token string `json:"token"`
}
