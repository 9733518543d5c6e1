package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/salesapp/internal/api"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testProducts() []api.Product {
	phones := &api.Category{CategoryID: 1, CategoryName: "Phones"}
	audio := &api.Category{CategoryID: 2, CategoryName: "Audio"}
	return []api.Product{
		{ProductID: 1, Name: "Alpha Phone", BriefDescription: "flagship phone", Price: price("900.00"), Category: phones},
		{ProductID: 2, Name: "Beta Phone", BriefDescription: "budget phone", Price: price("150.00"), Category: phones},
		{ProductID: 3, Name: "Earbuds", BriefDescription: "wireless earbuds", Price: price("150.00"), Category: audio},
		{ProductID: 4, Name: "Mystery Box", BriefDescription: "no category at all", Price: price("50.00")},
	}
}

func wideRange() (decimal.Decimal, decimal.Decimal) {
	return decimal.Zero, price("100000")
}

// ============================================
// Filter predicate
// ============================================

func TestApply(t *testing.T) {
	lower, upper := wideRange()
	phones := int64(1)

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"empty query matches all", Filter{MinPrice: lower, MaxPrice: upper}, []int64{1, 2, 3, 4}},
		{"query matches name case-insensitively", Filter{Query: "ALPHA", MinPrice: lower, MaxPrice: upper}, []int64{1}},
		{"query matches brief description", Filter{Query: "wireless", MinPrice: lower, MaxPrice: upper}, []int64{3}},
		{"query with no hit", Filter{Query: "tablet", MinPrice: lower, MaxPrice: upper}, []int64{}},
		{"category narrows", Filter{CategoryID: &phones, MinPrice: lower, MaxPrice: upper}, []int64{1, 2}},
		{"price range is inclusive", Filter{MinPrice: price("150.00"), MaxPrice: price("900.00")}, []int64{1, 2, 3}},
		{"combined predicates AND together", Filter{Query: "phone", CategoryID: &phones, MinPrice: price("100"), MaxPrice: price("200")}, []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testProducts(), tt.filter)
			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ProductID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApply_NoCategoryNeverMatchesCategoryFilter(t *testing.T) {
	lower, upper := wideRange()
	missing := int64(99)

	got := Apply(testProducts(), Filter{CategoryID: &missing, MinPrice: lower, MaxPrice: upper})
	assert.Empty(t, got)
}

func TestApply_Idempotent(t *testing.T) {
	lower, upper := wideRange()
	f := Filter{Query: "phone", MinPrice: lower, MaxPrice: upper}

	once := Apply(testProducts(), f)
	twice := Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := testProducts()
	want := testProducts()

	Apply(products, Filter{Query: "phone", MinPrice: decimal.Zero, MaxPrice: price("100000")})
	assert.Equal(t, want, products)
}

// ============================================
// Sort
// ============================================

func TestSortByPrice_Ascending(t *testing.T) {
	sorted := SortByPrice(testProducts(), true)
	require.Len(t, sorted, 4)
	assert.Equal(t, int64(4), sorted[0].ProductID)
	assert.Equal(t, int64(1), sorted[3].ProductID)
}

func TestSortByPrice_Descending(t *testing.T) {
	sorted := SortByPrice(testProducts(), false)
	require.Len(t, sorted, 4)
	assert.Equal(t, int64(1), sorted[0].ProductID)
	assert.Equal(t, int64(4), sorted[3].ProductID)
}

func TestSortByPrice_StableOnTies(t *testing.T) {
	// Products 2 and 3 share a price; input order must survive, in both
	// directions and across repeated sorts.
	first := SortByPrice(testProducts(), true)
	second := SortByPrice(first, true)
	assert.Equal(t, first, second)

	var tieIDs []int64
	for _, p := range first {
		if p.Price.Equal(price("150.00")) {
			tieIDs = append(tieIDs, p.ProductID)
		}
	}
	assert.Equal(t, []int64{2, 3}, tieIDs)

	descending := SortByPrice(testProducts(), false)
	tieIDs = nil
	for _, p := range descending {
		if p.Price.Equal(price("150.00")) {
			tieIDs = append(tieIDs, p.ProductID)
		}
	}
	assert.Equal(t, []int64{2, 3}, tieIDs)
}

func TestSortByPrice_DoesNotMutateInput(t *testing.T) {
	products := testProducts()
	want := testProducts()

	SortByPrice(products, true)
	assert.Equal(t, want, products)
}

// ============================================
// Price bounds
// ============================================

func TestPriceBounds(t *testing.T) {
	lower, upper := PriceBounds(testProducts())

	// 10% under the cheapest (50.00), floored; 10% over the dearest
	// (900.00), ceiled.
	assert.True(t, lower.Equal(price("45")), "lower %s", lower)
	assert.True(t, upper.Equal(price("990")), "upper %s", upper)
}

func TestPriceBounds_Empty(t *testing.T) {
	lower, upper := PriceBounds(nil)
	assert.True(t, lower.Equal(decimal.Zero))
	assert.True(t, upper.Equal(price("100000")))
}
