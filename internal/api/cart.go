package api

import (
	"context"
	"fmt"
	"net/http"
)

// CartService issues authenticated requests against the cart resource and
// normalizes every response to a CartSnapshot. It is bound to one bearer
// token at construction and never re-authenticates. No snapshot is cached;
// every call fetches fresh server state.
type CartService struct {
	client *Client
	token  string
}

// Cart returns a cart service bound to the given bearer token.
func (c *Client) Cart(token string) *CartService {
	return &CartService{client: c, token: token}
}

func (s *CartService) checkToken() error {
	if s.token == "" {
		return ErrUnauthenticated
	}
	if TokenExpired(s.token) {
		return fmt.Errorf("token expired: %w", ErrUnauthenticated)
	}
	return nil
}

// Get fetches the current cart.
func (s *CartService) Get(ctx context.Context) (*CartSnapshot, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	var snap CartSnapshot
	if err := s.client.do(ctx, http.MethodGet, "/api/cart", s.token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// AddItem adds quantity units of a product and returns the updated snapshot.
// Quantity below 1 is rejected before any request is sent.
func (s *CartService) AddItem(ctx context.Context, productID int64, quantity int) (*CartSnapshot, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	var snap CartSnapshot
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	if err := s.client.do(ctx, http.MethodPost, "/api/cart/items", s.token, req, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// UpdateItem sets the quantity of an existing line item. Dropping a line to
// zero is modeled as RemoveItem, never as an update; quantity below 1 is
// rejected before any request is sent.
func (s *CartService) UpdateItem(ctx context.Context, cartItemID int64, quantity int) (*CartSnapshot, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	var snap CartSnapshot
	req := updateCartItemRequest{CartItemID: cartItemID, Quantity: quantity}
	if err := s.client.do(ctx, http.MethodPut, "/api/cart/items", s.token, req, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// RemoveItem removes one line item and returns the updated snapshot.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID int64) (*CartSnapshot, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	var snap CartSnapshot
	path := fmt.Sprintf("/api/cart/items/%d", cartItemID)
	if err := s.client.do(ctx, http.MethodDelete, path, s.token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Clear empties the cart and returns the resulting empty snapshot.
func (s *CartService) Clear(ctx context.Context) (*CartSnapshot, error) {
	if err := s.checkToken(); err != nil {
		return nil, err
	}
	var snap CartSnapshot
	if err := s.client.do(ctx, http.MethodDelete, "/api/cart", s.token, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
