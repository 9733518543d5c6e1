package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// userCart returns the active cart for a user, creating it on first use.
// Callers hold s.mu.
func (s *Server) userCart(userID int64) *cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &cart{ID: s.id(), UserID: userID, Status: "active"}
		s.carts[userID] = c
	}
	return c
}

// renderCart builds the wire shape with server-computed subtotals, total and
// item count. Callers hold s.mu.
func (s *Server) renderCart(c *cart) map[string]any {
	items := []map[string]any{}
	total := decimal.Zero
	count := 0
	for _, line := range c.Lines {
		var p *product
		for i := range s.products {
			if s.products[i].ProductID == line.ProductID {
				p = &s.products[i]
			}
		}
		if p == nil {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, map[string]any{
			"cartItemId":   line.CartItemID,
			"productId":    p.ProductID,
			"productName":  p.Name,
			"productImage": p.ImageURL,
			"price":        p.Price,
			"quantity":     line.Quantity,
			"subtotal":     subtotal,
		})
		total = total.Add(subtotal)
		count += line.Quantity
	}
	return map[string]any{
		"cartId":     c.ID,
		"userId":     c.UserID,
		"status":     c.Status,
		"totalPrice": total,
		"items":      items,
		"itemCount":  count,
	}
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.renderCart(s.userCart(u.ID)))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity < 1 {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, p := range s.products {
		if p.ProductID == req.ProductID {
			found = true
		}
	}
	if !found {
		respondMessage(w, http.StatusNotFound, "product not found")
		return
	}

	c := s.userCart(u.ID)
	for i := range c.Lines {
		if c.Lines[i].ProductID == req.ProductID {
			c.Lines[i].Quantity += req.Quantity
			respondJSON(w, http.StatusOK, s.renderCart(c))
			return
		}
	}
	c.Lines = append(c.Lines, cartLine{CartItemID: s.id(), ProductID: req.ProductID, Quantity: req.Quantity})
	respondJSON(w, http.StatusOK, s.renderCart(c))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	var req struct {
		CartItemID int64 `json:"cartItemId"`
		Quantity   int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity < 1 {
		respondMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.userCart(u.ID)
	for i := range c.Lines {
		if c.Lines[i].CartItemID == req.CartItemID {
			c.Lines[i].Quantity = req.Quantity
			respondJSON(w, http.StatusOK, s.renderCart(c))
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	id := pathID(r, "cartItemID")

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.userCart(u.ID)
	for i := range c.Lines {
		if c.Lines[i].CartItemID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			respondJSON(w, http.StatusOK, s.renderCart(c))
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.userCart(u.ID)
	c.Lines = nil
	respondJSON(w, http.StatusOK, s.renderCart(c))
}
