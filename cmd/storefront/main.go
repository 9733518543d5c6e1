// Command storefront is the terminal front end of the sales app client:
// login/logout, product browsing with local filter/sort, cart management,
// admin product CRUD and store locations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: storefront <command> [args]

Commands:
  login <username> <password>       sign in and persist the session
  logout                            sign out (local session is always cleared)
  register <username> <email> <password> [phone] [address]
  whoami                            show the persisted session
  products [flags]                  list products with local filter/sort
  product <id>                      show one product
  search <name>                     server-side product search
  categories                        list categories
  locations                         list store locations
  cart                              show the cart
  cart add <productID> <quantity>
  cart update <cartItemID> <quantity>
  cart remove <cartItemID>
  cart clear
  cart badge                        print the capped badge value
  admin create-product [flags]
  admin update-product <id> [flags]
  admin delete-product <id>`)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	client := api.New(cfg.BaseURL)
	sessions, err := session.Open(cfg.SessionFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	app := &app{client: client, sessions: sessions}
	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		err = app.login(ctx, os.Args[2:])
	case "logout":
		err = app.logout(ctx)
	case "register":
		err = app.register(ctx, os.Args[2:])
	case "whoami":
		err = app.whoami()
	case "products":
		err = app.products(ctx, os.Args[2:])
	case "product":
		err = app.product(ctx, os.Args[2:])
	case "search":
		err = app.search(ctx, os.Args[2:])
	case "categories":
		err = app.categories(ctx)
	case "locations":
		err = app.locations(ctx)
	case "cart":
		err = app.cart(ctx, os.Args[2:])
	case "admin":
		err = app.admin(ctx, os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		exitErr(err)
	}
}

type app struct {
	client   *api.Client
	sessions *session.Store
}

// exitErr prints a message that distinguishes the failure classes:
// bad input, missing auth, transport failure and server rejection.
func exitErr(err error) {
	var validationErr *api.ValidationError
	var networkErr *api.NetworkError
	var serverErr *api.ServerError
	switch {
	case errors.As(err, &validationErr):
		fmt.Fprintln(os.Stderr, "error:", validationErr.Error())
	case errors.Is(err, api.ErrUnauthenticated):
		fmt.Fprintln(os.Stderr, "error: not logged in or session expired; run 'storefront login'")
	case errors.As(err, &networkErr):
		fmt.Fprintln(os.Stderr, "error: no network:", networkErr.Err.Error())
		fmt.Fprintln(os.Stderr, "check your connection and retry")
	case errors.As(err, &serverErr):
		fmt.Fprintln(os.Stderr, "error:", serverErr.Error())
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, &api.ValidationError{Field: name, Reason: "must be a number"}
	}
	return id, nil
}

func parseQuantity(arg string) (int, error) {
	qty, err := strconv.Atoi(arg)
	if err != nil || qty < 1 {
		return 0, &api.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return qty, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
