package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/api"
)

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: admin <create-product|update-product|delete-product>"}
	}
	switch args[0] {
	case "create-product":
		return a.adminCreateProduct(ctx, args[1:])
	case "update-product":
		return a.adminUpdateProduct(ctx, args[1:])
	case "delete-product":
		return a.adminDeleteProduct(ctx, args[1:])
	default:
		return &api.ValidationError{Field: "arguments", Reason: "unknown admin command: " + args[0]}
	}
}

func productFlags(name string) (*flag.FlagSet, *api.ProductRequest, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	req := &api.ProductRequest{}
	fs.StringVar(&req.Name, "name", "", "product name")
	fs.StringVar(&req.BriefDescription, "brief", "", "brief description")
	fs.StringVar(&req.FullDescription, "full", "", "full description")
	fs.StringVar(&req.TechnicalSpecifications, "specs", "", "technical specifications")
	fs.StringVar(&req.ImageURL, "image", "", "image URL")
	fs.Int64Var(&req.CategoryID, "category", 0, "category id")
	price := fs.String("price", "0", "unit price")
	return fs, req, price
}

func (a *app) adminCreateProduct(ctx context.Context, args []string) error {
	fs, req, price := productFlags("create-product")
	if err := fs.Parse(args); err != nil {
		return err
	}
	parsed, err := decimal.NewFromString(*price)
	if err != nil {
		return &api.ValidationError{Field: "price", Reason: "must be a number"}
	}
	req.Price = parsed

	p, err := a.client.Products(a.sessions.Token()).Create(ctx, *req)
	if err != nil {
		return err
	}
	fmt.Printf("created product %d: %s\n", p.ProductID, p.Name)
	return nil
}

func (a *app) adminUpdateProduct(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: admin update-product <id> [flags]"}
	}
	id, err := parseID(args[0], "product id")
	if err != nil {
		return err
	}
	fs, req, price := productFlags("update-product")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	parsed, err := decimal.NewFromString(*price)
	if err != nil {
		return &api.ValidationError{Field: "price", Reason: "must be a number"}
	}
	req.Price = parsed

	p, err := a.client.Products(a.sessions.Token()).Update(ctx, id, *req)
	if err != nil {
		return err
	}
	fmt.Printf("updated product %d: %s\n", p.ProductID, p.Name)
	return nil
}

func (a *app) adminDeleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: admin delete-product <id>"}
	}
	id, err := parseID(args[0], "product id")
	if err != nil {
		return err
	}
	if err := a.client.Products(a.sessions.Token()).Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted product %d\n", id)
	return nil
}
