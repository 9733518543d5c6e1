package main

import (
	"context"
	"fmt"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/badge"
)

// printBadge is the badge sink for a terminal: the mobile app overlays the
// number on the cart tab, here it goes to stdout.
type printBadge struct{}

func (printBadge) Set(count int) {
	if count >= badge.DefaultMaxCount {
		fmt.Printf("cart badge: %d+\n", badge.DefaultMaxCount)
		return
	}
	fmt.Printf("cart badge: %d\n", count)
}

func (printBadge) Clear() {
	fmt.Println("cart badge: none")
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.cartShow(ctx)
	}
	switch args[0] {
	case "add":
		return a.cartAdd(ctx, args[1:])
	case "update":
		return a.cartUpdate(ctx, args[1:])
	case "remove":
		return a.cartRemove(ctx, args[1:])
	case "clear":
		return a.cartClear(ctx)
	case "badge":
		a.reconcileBadge(ctx)
		return nil
	default:
		return &api.ValidationError{Field: "arguments", Reason: "usage: cart [add|update|remove|clear|badge]"}
	}
}

func (a *app) cartService() *api.CartService {
	return a.client.Cart(a.sessions.Token())
}

// reconcileBadge runs one badge cycle; it is also invoked after every
// successful cart mutation.
func (a *app) reconcileBadge(ctx context.Context) {
	fetch := func(ctx context.Context, token string) (*api.CartSnapshot, error) {
		return a.client.Cart(token).Get(ctx)
	}
	badge.NewReconciler(a.sessions, fetch, printBadge{}).Reconcile(ctx)
}

func printSnapshot(snap *api.CartSnapshot) {
	if snap.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ITEM\tPRODUCT\tUNIT PRICE\tQTY\tSUBTOTAL")
	for _, item := range snap.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			item.CartItemID, item.ProductName, item.UnitPrice.StringFixed(2),
			item.Quantity, item.Subtotal.StringFixed(2))
	}
	w.Flush()
	fmt.Printf("%d item(s), total $%s\n", snap.ItemCount, snap.TotalPrice.StringFixed(2))
}

func (a *app) cartShow(ctx context.Context) error {
	snap, err := a.cartService().Get(ctx)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: cart add <productID> <quantity>"}
	}
	productID, err := parseID(args[0], "product id")
	if err != nil {
		return err
	}
	quantity, err := parseQuantity(args[1])
	if err != nil {
		return err
	}
	snap, err := a.cartService().AddItem(ctx, productID, quantity)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	a.reconcileBadge(ctx)
	return nil
}

func (a *app) cartUpdate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: cart update <cartItemID> <quantity>"}
	}
	cartItemID, err := parseID(args[0], "cart item id")
	if err != nil {
		return err
	}
	// Dropping to zero is a remove, not an update; refuse it here the same
	// way the quantity stepper does.
	quantity, err := parseQuantity(args[1])
	if err != nil {
		return err
	}
	snap, err := a.cartService().UpdateItem(ctx, cartItemID, quantity)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	a.reconcileBadge(ctx)
	return nil
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: cart remove <cartItemID>"}
	}
	cartItemID, err := parseID(args[0], "cart item id")
	if err != nil {
		return err
	}
	snap, err := a.cartService().RemoveItem(ctx, cartItemID)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	a.reconcileBadge(ctx)
	return nil
}

func (a *app) cartClear(ctx context.Context) error {
	snap, err := a.cartService().Clear(ctx)
	if err != nil {
		return err
	}
	printSnapshot(snap)
	a.reconcileBadge(ctx)
	return nil
}
