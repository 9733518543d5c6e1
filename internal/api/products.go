package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ProductService covers the public catalog reads and the admin CRUD surface.
// Read operations need no token; the mutating operations require one and are
// rejected client-side without it.
type ProductService struct {
	client *Client
	token  string
}

// Products returns a product service. Pass an empty token for read-only use.
func (c *Client) Products(token string) *ProductService {
	return &ProductService{client: c, token: token}
}

// List fetches the full catalog.
func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.client.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product by id.
func (s *ProductService) Get(ctx context.Context, productID int64) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := s.client.do(ctx, http.MethodGet, path, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ByCategory fetches the products of one category.
func (s *ProductService) ByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	var products []Product
	path := fmt.Sprintf("/api/products/category/%d", categoryID)
	if err := s.client.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search asks the server for products matching a name.
func (s *ProductService) Search(ctx context.Context, name string) ([]Product, error) {
	var products []Product
	path := "/api/products/search?name=" + url.QueryEscape(name)
	if err := s.client.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) checkAdminToken() error {
	if s.token == "" {
		return ErrUnauthenticated
	}
	if TokenExpired(s.token) {
		return fmt.Errorf("token expired: %w", ErrUnauthenticated)
	}
	return nil
}

// Create adds a product (admin only).
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := s.checkAdminToken(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	var product Product
	if err := s.client.do(ctx, http.MethodPost, "/api/products", s.token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces a product (admin only).
func (s *ProductService) Update(ctx context.Context, productID int64, req ProductRequest) (*Product, error) {
	if err := s.checkAdminToken(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	var product Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := s.client.do(ctx, http.MethodPut, path, s.token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product (admin only).
func (s *ProductService) Delete(ctx context.Context, productID int64) error {
	if err := s.checkAdminToken(); err != nil {
		return err
	}
	path := fmt.Sprintf("/api/products/%d", productID)
	return s.client.do(ctx, http.MethodDelete, path, s.token, nil, nil)
}
