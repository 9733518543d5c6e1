package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/salesapp/internal/api/apitest"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newCartFixture seeds a store with one customer and three products and
// returns a cart service bound to a fresh token.
func newCartFixture(t *testing.T) (*apitest.Server, *CartService, [3]int64) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	srv.SeedUser("alice", "secret", "alice@example.com", "CUSTOMER")
	ids := [3]int64{
		srv.SeedProduct("Keyboard", "mechanical keyboard", price("10.00"), 0),
		srv.SeedProduct("Mouse", "wireless mouse", price("5.00"), 0),
		srv.SeedProduct("Cable", "usb-c cable", price("2.50"), 0),
	}

	client := New(srv.URL())
	return srv, client.Cart(srv.IssueToken("alice")), ids
}

// ============================================
// Snapshot invariants
// ============================================

func TestCartService_ServerTotalsMatchClientRecomputation(t *testing.T) {
	_, carts, ids := newCartFixture(t)
	ctx := context.Background()

	// Quantities [2,1,4] at unit prices [10.00, 5.00, 2.50].
	_, err := carts.AddItem(ctx, ids[0], 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, ids[1], 1)
	require.NoError(t, err)
	snap, err := carts.AddItem(ctx, ids[2], 4)
	require.NoError(t, err)

	require.Len(t, snap.Items, 3)
	assert.True(t, snap.Items[0].Subtotal.Equal(price("20.00")), "subtotal %s", snap.Items[0].Subtotal)
	assert.True(t, snap.Items[1].Subtotal.Equal(price("5.00")), "subtotal %s", snap.Items[1].Subtotal)
	assert.True(t, snap.Items[2].Subtotal.Equal(price("10.00")), "subtotal %s", snap.Items[2].Subtotal)
	assert.Equal(t, 7, snap.ItemCount)
	assert.True(t, snap.TotalPrice.Equal(price("35.00")), "total %s", snap.TotalPrice)

	// The fallback display paths must agree with the server.
	assert.Equal(t, snap.ItemCount, snap.TotalQuantity())
	assert.True(t, snap.ComputedTotal().Equal(snap.TotalPrice))
}

func TestCartService_GetFetchesFreshState(t *testing.T) {
	_, carts, ids := newCartFixture(t)
	ctx := context.Background()

	snap, err := carts.Get(ctx)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 0, snap.ItemCount)

	_, err = carts.AddItem(ctx, ids[0], 3)
	require.NoError(t, err)

	snap, err = carts.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, CartStatusActive, snap.Status)
}

// ============================================
// Mutations
// ============================================

func TestCartService_UpdateItem(t *testing.T) {
	_, carts, ids := newCartFixture(t)
	ctx := context.Background()

	snap, err := carts.AddItem(ctx, ids[0], 2)
	require.NoError(t, err)
	itemID := snap.Items[0].CartItemID

	snap, err = carts.UpdateItem(ctx, itemID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.ItemCount)
	assert.True(t, snap.TotalPrice.Equal(price("50.00")))
}

func TestCartService_RemoveItem(t *testing.T) {
	_, carts, ids := newCartFixture(t)
	ctx := context.Background()

	snap, err := carts.AddItem(ctx, ids[0], 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, ids[1], 1)
	require.NoError(t, err)

	snap, err = carts.RemoveItem(ctx, snap.Items[0].CartItemID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, ids[1], snap.Items[0].ProductID)
	assert.True(t, snap.TotalPrice.Equal(price("5.00")))
}

func TestCartService_Clear(t *testing.T) {
	_, carts, ids := newCartFixture(t)
	ctx := context.Background()

	_, err := carts.AddItem(ctx, ids[0], 2)
	require.NoError(t, err)

	snap, err := carts.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 0, snap.ItemCount)
	assert.True(t, snap.TotalPrice.Equal(decimal.Zero))
}

// ============================================
// Client-side validation
// ============================================

func TestCartService_RejectsQuantityBelowOne(t *testing.T) {
	srv, carts, ids := newCartFixture(t)
	ctx := context.Background()
	before := srv.RequestCount()

	tests := []struct {
		name string
		call func() (*CartSnapshot, error)
	}{
		{"add zero", func() (*CartSnapshot, error) { return carts.AddItem(ctx, ids[0], 0) }},
		{"add negative", func() (*CartSnapshot, error) { return carts.AddItem(ctx, ids[0], -1) }},
		{"update to zero", func() (*CartSnapshot, error) { return carts.UpdateItem(ctx, 1, 0) }},
		{"update negative", func() (*CartSnapshot, error) { return carts.UpdateItem(ctx, 1, -3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := tt.call()
			assert.Nil(t, snap)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "quantity", validationErr.Field)
		})
	}

	// None of the rejected calls may reach the wire.
	assert.Equal(t, before, srv.RequestCount())
}

// ============================================
// Error taxonomy
// ============================================

func TestCartService_EmptyToken(t *testing.T) {
	srv := apitest.New()
	t.Cleanup(srv.Close)
	before := srv.RequestCount()

	carts := New(srv.URL()).Cart("")
	_, err := carts.Get(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, before, srv.RequestCount())
}

func TestCartService_ExpiredToken(t *testing.T) {
	srv := apitest.New()
	t.Cleanup(srv.Close)
	before := srv.RequestCount()

	carts := New(srv.URL()).Cart(signedToken(t, time.Now().Add(-time.Minute)))
	_, err := carts.Get(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, before, srv.RequestCount(), "expired token must fail before any request")
}

func TestCartService_RejectedToken(t *testing.T) {
	srv := apitest.New()
	t.Cleanup(srv.Close)

	carts := New(srv.URL()).Cart("tok-unknown")
	_, err := carts.Get(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCartService_NetworkError(t *testing.T) {
	srv := apitest.New()
	srv.SeedUser("alice", "secret", "alice@example.com", "CUSTOMER")
	token := srv.IssueToken("alice")
	url := srv.URL()
	srv.Close() // nothing is listening anymore

	carts := New(url).Cart(token)
	_, err := carts.Get(context.Background())
	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
}

func TestCartService_ServerError(t *testing.T) {
	_, carts, _ := newCartFixture(t)

	// Adding a product the server has never heard of yields a 404.
	_, err := carts.AddItem(context.Background(), 999999, 1)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 404, serverErr.Status)
	assert.Contains(t, serverErr.Message, "not found")
}
