package api

import (
	"context"
	"net/http"
)

// LocationService lists physical store locations.
type LocationService struct {
	client *Client
}

func (c *Client) Locations() *LocationService {
	return &LocationService{client: c}
}

func (s *LocationService) List(ctx context.Context) ([]StoreLocation, error) {
	var locations []StoreLocation
	if err := s.client.do(ctx, http.MethodGet, "/api/store-locations", "", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
