package apitest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// authed resolves the bearer token to a user, or answers 401. Callers must
// not hold s.mu.
func (s *Server) authed(w http.ResponseWriter, r *http.Request) (*user, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		respondMessage(w, http.StatusUnauthorized, "missing token")
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.tokens[strings.TrimPrefix(header, "Bearer ")]
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "invalid token")
		return nil, false
	}
	return u, true
}

// Auth

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Username]
	if !ok || u.password != req.Password {
		respondMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := "tok-" + uuid.NewString()
	s.tokens[token] = u
	respondJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"message":  "Login successful",
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Username]; exists {
		respondMessage(w, http.StatusConflict, "username already taken")
		return
	}
	u := &user{ID: s.id(), Username: req.Username, Email: req.Email, Role: "CUSTOMER", password: req.Password}
	s.users[req.Username] = u
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"message":  "Registration successful",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLogout {
		respondMessage(w, http.StatusInternalServerError, "logout unavailable")
		return
	}
	delete(s.tokens, req.Token)
	respondMessage(w, http.StatusOK, "Logout successful")
}

// Catalog

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "productID")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ProductID == id {
			respondJSON(w, http.StatusOK, p)
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "product not found")
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("name"))
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := []product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), name) {
			matches = append(matches, p)
		}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "categoryID")
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := []product{}
	for _, p := range s.products {
		if p.Category != nil && p.Category.CategoryID == id {
			matches = append(matches, p)
		}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.categories)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.locations)
}

// Admin product CRUD

type productRequest struct {
	Name                    string          `json:"name"`
	BriefDescription        string          `json:"briefDescription"`
	FullDescription         string          `json:"fullDescription"`
	TechnicalSpecifications string          `json:"technicalSpecifications"`
	Price                   decimal.Decimal `json:"price"`
	ImageURL                string          `json:"imageUrl"`
	CategoryID              int64           `json:"categoryId"`
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	u, ok := s.authed(w, r)
	if !ok {
		return false
	}
	if u.Role != "ADMIN" {
		respondMessage(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := product{
		ProductID:               s.id(),
		Name:                    req.Name,
		BriefDescription:        req.BriefDescription,
		FullDescription:         req.FullDescription,
		TechnicalSpecifications: req.TechnicalSpecifications,
		Price:                   req.Price,
		ImageURL:                req.ImageURL,
	}
	for i := range s.categories {
		if s.categories[i].CategoryID == req.CategoryID {
			p.Category = &s.categories[i]
		}
	}
	s.products = append(s.products, p)
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	id := pathID(r, "productID")
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == id {
			s.products[i].Name = req.Name
			s.products[i].BriefDescription = req.BriefDescription
			s.products[i].FullDescription = req.FullDescription
			s.products[i].TechnicalSpecifications = req.TechnicalSpecifications
			s.products[i].Price = req.Price
			s.products[i].ImageURL = req.ImageURL
			respondJSON(w, http.StatusOK, s.products[i])
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "product not found")
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	id := pathID(r, "productID")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			respondMessage(w, http.StatusOK, "Product deleted")
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "product not found")
}
