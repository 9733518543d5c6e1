package badge

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/salesapp/internal/api"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// recordingSink remembers every badge update, last one first in mind.
type recordingSink struct {
	mu     sync.Mutex
	sets   []int
	clears int
}

func (r *recordingSink) Set(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = append(r.sets, count)
}

func (r *recordingSink) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recordingSink) lastSet() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sets) == 0 {
		return 0, false
	}
	return r.sets[len(r.sets)-1], true
}

func (r *recordingSink) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sets), r.clears
}

func snapshotWithCount(count int) *api.CartSnapshot {
	items := make([]api.CartLineItem, 0, 1)
	if count > 0 {
		items = append(items, api.CartLineItem{CartItemID: 1, Quantity: count})
	}
	return &api.CartSnapshot{ItemCount: count, Items: items}
}

func fixedFetch(count int) CartFetcher {
	return func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		return snapshotWithCount(count), nil
	}
}

func TestReconciler_NoTokenLeavesBadgeUntouched(t *testing.T) {
	sink := &recordingSink{}
	called := false
	fetch := func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		called = true
		return snapshotWithCount(3), nil
	}

	NewReconciler(staticToken(""), fetch, sink).Reconcile(context.Background())

	assert.False(t, called, "no fetch without a token")
	sets, clears := sink.counts()
	assert.Zero(t, sets)
	assert.Zero(t, clears)
}

func TestReconciler_SetsCount(t *testing.T) {
	sink := &recordingSink{}
	NewReconciler(staticToken("tok"), fixedFetch(7), sink).Reconcile(context.Background())

	last, ok := sink.lastSet()
	require.True(t, ok)
	assert.Equal(t, 7, last)
}

func TestReconciler_CapsAtMax(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"below cap", 12, 12},
		{"at cap", 99, 99},
		{"above cap", 100, 99},
		{"far above cap", 1234, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			NewReconciler(staticToken("tok"), fixedFetch(tt.count), sink).Reconcile(context.Background())

			last, ok := sink.lastSet()
			require.True(t, ok)
			assert.Equal(t, tt.want, last)
		})
	}
}

func TestReconciler_ZeroItemsClears(t *testing.T) {
	sink := &recordingSink{}
	NewReconciler(staticToken("tok"), fixedFetch(0), sink).Reconcile(context.Background())

	sets, clears := sink.counts()
	assert.Zero(t, sets, "a zero count is never shown as 0")
	assert.Equal(t, 1, clears)
}

func TestReconciler_FetchErrorClears(t *testing.T) {
	sink := &recordingSink{}
	fetch := func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		return nil, errors.New("boom")
	}

	NewReconciler(staticToken("tok"), fetch, sink).Reconcile(context.Background())

	sets, clears := sink.counts()
	assert.Zero(t, sets)
	assert.Equal(t, 1, clears)
}

func TestReconciler_StaleResultDiscarded(t *testing.T) {
	sink := &recordingSink{}

	release := make(chan struct{})
	entered := make(chan struct{})
	first := true
	var mu sync.Mutex
	fetch := func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		mu.Lock()
		wasFirst := first
		first = false
		mu.Unlock()
		if wasFirst {
			close(entered)
			<-release // hold the first fetch until the second finished
			return snapshotWithCount(2), nil
		}
		return snapshotWithCount(5), nil
	}

	r := NewReconciler(staticToken("tok"), fetch, sink)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Reconcile(context.Background())
	}()
	<-entered

	r.Reconcile(context.Background()) // newer cycle completes first
	close(release)
	wg.Wait()

	// The overtaken first cycle must not roll the badge back to 2.
	last, ok := sink.lastSet()
	require.True(t, ok)
	assert.Equal(t, 5, last)
	sets, _ := sink.counts()
	assert.Equal(t, 1, sets)
}
