package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/api"
	"github.com/example/salesapp/internal/catalog"
)

func printProducts(products []api.Product) {
	if len(products) == 0 {
		fmt.Println("no products")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tDESCRIPTION")
	for _, p := range products {
		categoryName := "-"
		if p.Category != nil {
			categoryName = p.Category.CategoryName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ProductID, p.Name, p.Price.StringFixed(2), categoryName, p.BriefDescription)
	}
	w.Flush()
}

// products lists the catalog, filtered and sorted locally: the server returns
// the full list, the filter/sort engine narrows it down.
func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	query := fs.String("q", "", "substring match on name or description")
	categoryID := fs.Int64("category", 0, "category id (0 = all)")
	minPrice := fs.String("min", "", "minimum price, inclusive")
	maxPrice := fs.String("max", "", "maximum price, inclusive")
	sortOrder := fs.String("sort", "asc", "price sort order: asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.client.Products("").List(ctx)
	if err != nil {
		return err
	}

	lower, upper := catalog.PriceBounds(products)
	if *minPrice != "" {
		if lower, err = decimal.NewFromString(*minPrice); err != nil {
			return &api.ValidationError{Field: "min", Reason: "must be a number"}
		}
	}
	if *maxPrice != "" {
		if upper, err = decimal.NewFromString(*maxPrice); err != nil {
			return &api.ValidationError{Field: "max", Reason: "must be a number"}
		}
	}

	filter := catalog.Filter{Query: *query, MinPrice: lower, MaxPrice: upper}
	if *categoryID != 0 {
		filter.CategoryID = categoryID
	}

	filtered := catalog.Apply(products, filter)
	printProducts(catalog.SortByPrice(filtered, *sortOrder != "desc"))
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: product <id>"}
	}
	id, err := parseID(args[0], "product id")
	if err != nil {
		return err
	}
	p, err := a.client.Products("").Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s  $%s\n", p.Name, p.Price.StringFixed(2))
	if p.Category != nil {
		fmt.Println("category:", p.Category.CategoryName)
	}
	if p.FullDescription != "" {
		fmt.Println(p.FullDescription)
	}
	if p.TechnicalSpecifications != "" {
		fmt.Println(p.TechnicalSpecifications)
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &api.ValidationError{Field: "arguments", Reason: "usage: search <name>"}
	}
	products, err := a.client.Products("").Search(ctx, args[0])
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.client.Categories().List(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\n", c.CategoryID, c.CategoryName)
	}
	return w.Flush()
}

func (a *app) locations(ctx context.Context) error {
	locations, err := a.client.Locations().List(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tLATITUDE\tLONGITUDE\tADDRESS")
	for _, l := range locations {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\n", l.LocationID, l.Latitude, l.Longitude, l.Address)
	}
	return w.Flush()
}
