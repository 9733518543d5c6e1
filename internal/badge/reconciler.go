// Package badge reconciles the cart badge on a navigation surface with the
// server-side cart state.
package badge

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/example/salesapp/internal/api"
)

// DefaultMaxCount caps the displayed badge value; larger carts show the cap.
const DefaultMaxCount = 99

// Sink receives badge updates for the cart slot of a navigation surface.
type Sink interface {
	Set(count int)
	Clear()
}

// TokenReader is the slice of the session store the reconciler needs.
type TokenReader interface {
	Token() string
}

// CartFetcher fetches a fresh cart snapshot for a bearer token.
type CartFetcher func(ctx context.Context, token string) (*api.CartSnapshot, error)

// Reconciler performs on-demand fetch-and-update cycles against the sink.
// Overlapping cycles are resolved with a monotonic sequence number: only the
// newest cycle may touch the sink, so an out-of-order completion cannot roll
// the badge back to stale state.
type Reconciler struct {
	sessions TokenReader
	fetch    CartFetcher
	sink     Sink
	maxCount int
	seq      atomic.Uint64
}

func NewReconciler(sessions TokenReader, fetch CartFetcher, sink Sink) *Reconciler {
	return &Reconciler{
		sessions: sessions,
		fetch:    fetch,
		sink:     sink,
		maxCount: DefaultMaxCount,
	}
}

// Reconcile runs one cycle. Without a token it leaves the badge untouched.
// A failed fetch or an empty cart clears the badge; otherwise the badge is
// set to the item count capped at the maximum. Failures are logged only.
func (r *Reconciler) Reconcile(ctx context.Context) {
	token := r.sessions.Token()
	if token == "" {
		return
	}
	seq := r.seq.Add(1)

	snap, err := r.fetch(ctx, token)
	if seq != r.seq.Load() {
		return // overtaken by a newer cycle, its result wins
	}
	if err != nil {
		log.Error().
			Str("component", "badge").
			Err(err).
			Msg("cart fetch failed, clearing badge")
		r.sink.Clear()
		return
	}

	count := snap.ItemCount
	if count <= 0 {
		r.sink.Clear()
		return
	}
	if count > r.maxCount {
		count = r.maxCount
	}
	r.sink.Set(count)
}
