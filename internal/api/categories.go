package api

import (
	"context"
	"net/http"
)

// CategoryService lists product categories.
type CategoryService struct {
	client *Client
}

func (c *Client) Categories() *CategoryService {
	return &CategoryService{client: c}
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.client.do(ctx, http.MethodGet, "/api/categories", "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
