// Package notifier runs the background cart notification loop: one
// reconciliation pass at start, then one per interval, independent of any
// screen being visible.
package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/example/salesapp/internal/api"
)

// DefaultInterval is how often a reconciliation pass runs once started.
const DefaultInterval = 15 * time.Minute

const passTimeout = 30 * time.Second

var (
	ErrAlreadyRunning = errors.New("notifier already running")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// Notification is the single system-notification slot summarizing the cart.
// A new pass replaces or cancels the previous content, never stacks.
type Notification interface {
	Show(itemCount int, total decimal.Decimal)
	Cancel()
}

// SessionReader is the slice of the session store the notifier needs.
type SessionReader interface {
	IsLoggedIn() bool
	Token() string
}

// CartFetcher fetches a fresh cart snapshot for a bearer token.
type CartFetcher func(ctx context.Context, token string) (*api.CartSnapshot, error)

// Service is the background notifier. It is Stopped until Start and Stopped
// again after Stop; passes never raise errors to an observer, failures are
// logged and the notification cancelled.
type Service struct {
	sessions SessionReader
	fetch    CartFetcher
	sink     Notification
	interval time.Duration
	breaker  *gobreaker.CircuitBreaker[*api.CartSnapshot]

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

type Option func(*Service)

// WithInterval overrides the pass interval.
func WithInterval(d time.Duration) Option {
	return func(s *Service) { s.interval = d }
}

func New(sessions SessionReader, fetch CartFetcher, sink Notification, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		fetch:    fetch,
		sink:     sink,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	// The breaker keeps a flapping or down server from being hit on every
	// tick; an open breaker counts as a failed pass.
	s.breaker = gobreaker.NewCircuitBreaker[*api.CartSnapshot](gobreaker.Settings{
		Name:    "cart-fetch",
		Timeout: s.interval / 2,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("component", "notifier").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
	return s
}

// Start moves the service from Stopped to Running: one immediate pass, then
// one per interval until Stop. It refuses to start when no user is logged in.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	if !s.sessions.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	s.stop = make(chan struct{})
	s.running = true
	go s.run(s.stop)
	log.Info().
		Str("component", "notifier").
		Dur("interval", s.interval).
		Msg("notifier started")
	return nil
}

// Stop suppresses future ticks. An in-flight pass is left to finish.
// Stopping a stopped service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
	log.Info().Str("component", "notifier").Msg("notifier stopped")
}

// Running reports whether the service is between Start and Stop.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Service) run(stop <-chan struct{}) {
	s.pass()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.pass()
		}
	}
}

// pass is one reconciliation cycle: fetch the cart, then show, update or
// cancel the notification. Every failure path ends in a cancelled
// notification and a log line, never an error to the user.
func (s *Service) pass() {
	if !s.sessions.IsLoggedIn() {
		s.sink.Cancel()
		return
	}

	token := s.sessions.Token()
	snap, err := s.breaker.Execute(func() (*api.CartSnapshot, error) {
		ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
		defer cancel()
		return s.fetch(ctx, token)
	})
	if err != nil {
		log.Error().
			Str("component", "notifier").
			Err(err).
			Msg("cart reconciliation failed")
		s.sink.Cancel()
		return
	}

	if snap.IsEmpty() || snap.ItemCount <= 0 {
		s.sink.Cancel()
		return
	}
	s.sink.Show(snap.ItemCount, snap.TotalPrice)
}
