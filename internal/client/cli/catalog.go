package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// Products fetches and lists the catalog, honoring any active category
// filter or search from earlier commands via the filtered view.
func (a *App) Products(ctx context.Context) error {
	if res := a.catalog.FetchProducts(ctx, nil); !res.OK {
		printResult(res)
		return nil
	}
	a.catalog.ResetFilters()
	a.printProductList(a.catalog.FilteredProducts())
	return nil
}

// Search runs a server-side product search. An empty query restores the
// full catalog.
func (a *App) Search(ctx context.Context, query string) error {
	if res := a.catalog.SearchProducts(ctx, query); !res.OK {
		printResult(res)
		return nil
	}

	results := a.catalog.FilteredProducts()
	if query != "" && len(results) == 0 {
		fmt.Printf("No products match %q.\n", query)
		return nil
	}
	a.printProductList(results)
	return nil
}

// Categories lists the available categories.
func (a *App) Categories(ctx context.Context) error {
	if res := a.catalog.FetchCategories(ctx); !res.OK {
		printResult(res)
		return nil
	}
	for _, c := range a.catalog.Categories() {
		fmt.Printf("%4d  %s\n", c.ID, c.Name)
	}
	return nil
}

// Filter narrows the product list to one category; calling it with no
// argument clears the filter. The filter is applied client-side against the
// already-fetched catalog.
func (a *App) Filter(ctx context.Context, arg string) error {
	if arg == "" {
		a.catalog.FilterByCategory(nil)
		fmt.Println("Filter cleared.")
		a.printProductList(a.catalog.FilteredProducts())
		return nil
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: filter [category-id]")
		return nil
	}

	if len(a.catalog.Products()) == 0 {
		if res := a.catalog.FetchProducts(ctx, nil); !res.OK {
			printResult(res)
			return nil
		}
	}
	a.catalog.FilterByCategory(&id)
	a.printProductList(a.catalog.FilteredProducts())
	return nil
}

// Product shows a single product's detail view by numeric id or slug.
func (a *App) Product(ctx context.Context, idOrSlug string) error {
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		if r := a.catalog.FetchProductByID(ctx, id); !r.OK {
			printResult(r)
			return nil
		}
	} else {
		if r := a.catalog.FetchProductBySlug(ctx, idOrSlug); !r.OK {
			printResult(r)
			return nil
		}
	}

	p := a.catalog.CurrentProduct()
	if p == nil {
		fmt.Println("Product not found.")
		return nil
	}

	fmt.Printf("%s  (#%d, %s)\n", p.Name, p.ID, p.Slug)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	if p.ComparePrice != nil && *p.ComparePrice > p.Price {
		fmt.Printf("Price: $%.2f (was $%.2f)\n", p.Price, *p.ComparePrice)
	} else {
		fmt.Printf("Price: $%.2f\n", p.Price)
	}
	fmt.Printf("Availability: %s\n", stockLabel(*p))
	return nil
}

func (a *App) printProductList(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("No products to show.")
		return
	}
	for _, p := range products {
		marker := " "
		if p.IsFeatured {
			marker = "*"
		}
		fmt.Printf("%s %4d  %-40s $%8.2f  %s\n", marker, p.ID, p.Name, p.Price, stockLabel(p))
	}
}

func stockLabel(p models.Product) string {
	switch {
	case p.StockQuantity <= 0:
		return "out of stock"
	case p.StockQuantity <= p.LowStockThreshold:
		return fmt.Sprintf("low stock (%d left)", p.StockQuantity)
	default:
		return "in stock"
	}
}
