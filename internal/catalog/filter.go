// Package catalog holds the pure filter/sort engine applied to the in-memory
// product list. No I/O, no mutation of inputs.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/api"
)

// DefaultMaxPrice is the price-range ceiling used when no products are
// available to derive bounds from.
const DefaultMaxPrice = 100000

// Filter is the set of predicates applied to a product list. A product
// matches when every predicate matches. A nil CategoryID matches every
// category; products without a category never match a non-nil one. The price
// range is inclusive on both ends.
type Filter struct {
	Query      string
	CategoryID *int64
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
}

// Apply returns the products matching the filter, in input order.
func Apply(products []api.Product, f Filter) []api.Product {
	filtered := make([]api.Product, 0, len(products))
	query := strings.ToLower(f.Query)
	for _, p := range products {
		if !matchesQuery(p, query) {
			continue
		}
		if f.CategoryID != nil {
			if p.Category == nil || p.Category.CategoryID != *f.CategoryID {
				continue
			}
		}
		if p.Price.LessThan(f.MinPrice) || p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// matchesQuery is a case-insensitive substring match against name or brief
// description; an empty query matches everything.
func matchesQuery(p api.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.BriefDescription), query)
}

// SortByPrice returns a new slice sorted by price. The sort is stable:
// equal-price products keep their relative input order.
func SortByPrice(products []api.Product, ascending bool) []api.Product {
	sorted := make([]api.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].Price.LessThan(sorted[j].Price)
		}
		return sorted[i].Price.GreaterThan(sorted[j].Price)
	})
	return sorted
}

// PriceBounds returns the price range covered by a product list, widened by
// 10% on each side and rounded to whole units so range-picker UIs have room
// at the edges. An empty list yields the (0, DefaultMaxPrice) defaults.
func PriceBounds(products []api.Product) (minPrice, maxPrice decimal.Decimal) {
	if len(products) == 0 {
		return decimal.Zero, decimal.NewFromInt(DefaultMaxPrice)
	}
	minPrice, maxPrice = products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price.LessThan(minPrice) {
			minPrice = p.Price
		}
		if p.Price.GreaterThan(maxPrice) {
			maxPrice = p.Price
		}
	}
	minPrice = minPrice.Mul(decimal.NewFromFloat(0.9)).Floor()
	if minPrice.IsNegative() {
		minPrice = decimal.Zero
	}
	maxPrice = maxPrice.Mul(decimal.NewFromFloat(1.1)).Ceil()
	return minPrice, maxPrice
}
