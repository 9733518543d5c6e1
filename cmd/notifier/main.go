package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/notifier"
	"github.com/example/salesapp/internal/session"
)

// logSink writes the cart summary where a mobile shell would raise a system
// notification. One slot: a new Show replaces the previous content, Cancel
// ends it.
type logSink struct{}

func (logSink) Show(itemCount int, total decimal.Decimal) {
	noun := "items"
	if itemCount == 1 {
		noun = "item"
	}
	log.Info().
		Str("component", "notification").
		Int("item_count", itemCount).
		Str("total", total.StringFixed(2)).
		Msgf("%d %s in your cart, total: $%s", itemCount, noun, total.StringFixed(2))
}

func (logSink) Cancel() {
	log.Debug().Str("component", "notification").Msg("notification cancelled")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	log.Info().
		Str("api", cfg.BaseURL).
		Str("session_file", cfg.SessionFile).
		Dur("interval", cfg.NotifyInterval).
		Msg("cart notifier starting")

	sessions, err := session.Open(cfg.SessionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	client := api.New(cfg.BaseURL)
	fetch := func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		return client.Cart(token).Get(ctx)
	}

	svc := notifier.New(sessions, fetch, logSink{}, notifier.WithInterval(cfg.NotifyInterval))
	if err := svc.Start(); err != nil {
		// Same gate as a boot-time restart: without a logged-in session
		// there is nothing to watch.
		if err == notifier.ErrNotLoggedIn {
			log.Info().Msg("no user logged in, exiting")
			return
		}
		log.Fatal().Err(err).Msg("failed to start notifier")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	fmt.Fprintln(os.Stderr)
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	svc.Stop()
}
