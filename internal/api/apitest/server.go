// Package apitest runs an in-memory stand-in for the storefront REST API so
// client code can be tested wire-level without a real backend. Totals,
// subtotals and item counts are server-computed, keeping the
// sum(subtotals) == totalPrice invariant by construction.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type user struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	password string
}

type product struct {
	ProductID               int64           `json:"productId"`
	Name                    string          `json:"name"`
	BriefDescription        string          `json:"briefDescription"`
	FullDescription         string          `json:"fullDescription"`
	TechnicalSpecifications string          `json:"technicalSpecifications"`
	Price                   decimal.Decimal `json:"price"`
	ImageURL                string          `json:"imageUrl"`
	Category                *category       `json:"category,omitempty"`
}

type category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type location struct {
	LocationID int64   `json:"locationId"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address"`
}

type cartLine struct {
	CartItemID int64
	ProductID  int64
	Quantity   int
}

type cart struct {
	ID     int64
	UserID int64
	Status string
	Lines  []cartLine
}

// Server is the fake store. All state is in memory and guarded by one mutex.
type Server struct {
	httpServer *httptest.Server

	mu         sync.Mutex
	users      map[string]*user // by username
	tokens     map[string]*user // by bearer token
	products   []product
	categories []category
	locations  []location
	carts      map[int64]*cart // by user id
	nextID     int64
	failLogout bool

	requests atomic.Int64
}

func New() *Server {
	s := &Server{
		users:  make(map[string]*user),
		tokens: make(map[string]*user),
		carts:  make(map[int64]*cart),
	}
	s.httpServer = httptest.NewServer(s.router())
	return s
}

func (s *Server) Close() { s.httpServer.Close() }

func (s *Server) URL() string { return s.httpServer.URL }

// RequestCount reports how many requests the server has received, letting
// tests assert that client-side validation never sent one.
func (s *Server) RequestCount() int64 { return s.requests.Load() }

// FailLogout makes the logout endpoint answer 500 until reset.
func (s *Server) FailLogout(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLogout = fail
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// SeedUser registers an account and returns its id.
func (s *Server) SeedUser(username, password, email, role string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{ID: s.id(), Username: username, Email: email, Role: role, password: password}
	s.users[username] = u
	return u.ID
}

// IssueToken mints a bearer token for an already-seeded user, bypassing the
// signin endpoint.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return ""
	}
	token := "tok-" + uuid.NewString()
	s.tokens[token] = u
	return token
}

// SeedCategory adds a category and returns its id.
func (s *Server) SeedCategory(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := category{CategoryID: s.id(), CategoryName: name}
	s.categories = append(s.categories, c)
	return c.CategoryID
}

// SeedProduct adds a product and returns its id. categoryID zero means no
// category.
func (s *Server) SeedProduct(name, brief string, price decimal.Decimal, categoryID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := product{
		ProductID:        s.id(),
		Name:             name,
		BriefDescription: brief,
		Price:            price,
	}
	if categoryID != 0 {
		for i := range s.categories {
			if s.categories[i].CategoryID == categoryID {
				p.Category = &s.categories[i]
			}
		}
	}
	s.products = append(s.products, p)
	return p.ProductID
}

// SeedLocation adds a store location.
func (s *Server) SeedLocation(latitude, longitude float64, address string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := location{LocationID: s.id(), Latitude: latitude, Longitude: longitude, Address: address}
	s.locations = append(s.locations, l)
	return l.LocationID
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s.requests.Add(1)
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/api/auth/signin", s.handleSignin)
	r.Post("/api/auth/signup", s.handleSignup)
	r.Post("/api/auth/logout", s.handleLogout)

	r.Get("/api/products", s.handleListProducts)
	r.Get("/api/products/search", s.handleSearchProducts)
	r.Get("/api/products/category/{categoryID}", s.handleProductsByCategory)
	r.Get("/api/products/{productID}", s.handleGetProduct)
	r.Post("/api/products", s.handleCreateProduct)
	r.Put("/api/products/{productID}", s.handleUpdateProduct)
	r.Delete("/api/products/{productID}", s.handleDeleteProduct)

	r.Get("/api/categories", s.handleListCategories)
	r.Get("/api/store-locations", s.handleListLocations)

	r.Get("/api/cart", s.handleGetCart)
	r.Post("/api/cart/items", s.handleAddCartItem)
	r.Put("/api/cart/items", s.handleUpdateCartItem)
	r.Delete("/api/cart/items/{cartItemID}", s.handleRemoveCartItem)
	r.Delete("/api/cart", s.handleClearCart)

	return r
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id
}
