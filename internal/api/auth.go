package api

import (
	"context"
	"net/http"
)

// AuthService covers signin, signup and logout.
type AuthService struct {
	client *Client
}

func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// Login exchanges credentials for a token. Empty credentials are rejected
// before any request is sent.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	var resp AuthResponse
	req := loginRequest{Username: username, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/signin", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new customer account.
func (s *AuthService) Register(ctx context.Context, username, email, password, phoneNumber, address string) (*AuthResponse, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	var resp AuthResponse
	req := signupRequest{
		Username:    username,
		Email:       email,
		Password:    password,
		PhoneNumber: phoneNumber,
		Address:     address,
	}
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/signup", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token server-side. The token travels both in the
// body and as the bearer header. Callers clear their local session whatever
// the outcome; a failure here only means the server-side invalidation is not
// confirmed.
func (s *AuthService) Logout(ctx context.Context, token string) (*MessageResponse, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	var resp MessageResponse
	req := logoutRequest{Token: token}
	if err := s.client.do(ctx, http.MethodPost, "/api/auth/logout", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
