package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Cart refetches and prints the server-side cart.
func (a *App) Cart(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if res := a.cart.Fetch(ctx); !res.OK {
		printResult(res)
		return nil
	}
	a.printCart()
	return nil
}

// Add puts a product into the cart: add <product-id> [quantity].
func (a *App) Add(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) == 0 {
		fmt.Println("Usage: add <product-id> [quantity]")
		return nil
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: add <product-id> [quantity]")
		return nil
	}
	quantity := 1
	if len(args) > 1 {
		if quantity, err = strconv.Atoi(args[1]); err != nil {
			fmt.Println("Usage: add <product-id> [quantity]")
			return nil
		}
	}

	if res := a.cart.AddItem(ctx, productID, quantity); !res.OK {
		printResult(res)
		return nil
	}
	a.printCart()
	return nil
}

// Qty changes a cart line's quantity: qty <item-id> <n>. Zero or a negative
// value removes the line.
func (a *App) Qty(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) < 2 {
		fmt.Println("Usage: qty <item-id> <quantity>")
		return nil
	}

	itemID, err1 := strconv.ParseInt(args[0], 10, 64)
	quantity, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: qty <item-id> <quantity>")
		return nil
	}

	if res := a.cart.UpdateQuantity(ctx, itemID, quantity); !res.OK {
		printResult(res)
		return nil
	}
	a.printCart()
	return nil
}

// Remove deletes one cart line: remove <item-id>.
func (a *App) Remove(ctx context.Context, arg string) error {
	if !a.requireLogin() {
		return nil
	}
	itemID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: remove <item-id>")
		return nil
	}

	if res := a.cart.RemoveItem(ctx, itemID); !res.OK {
		printResult(res)
		return nil
	}
	a.printCart()
	return nil
}

// ClearCart empties the cart after a confirmation prompt.
func (a *App) ClearCart(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if len(a.cart.Items()) == 0 {
		fmt.Println("Your cart is already empty.")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Empty the whole cart? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if res := a.cart.Clear(ctx); !res.OK {
		printResult(res)
		return nil
	}
	fmt.Println("Cart emptied.")
	return nil
}

func (a *App) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("%4d  %-40s x%-3d $%8.2f\n",
			item.ID, item.Product.Name, item.Quantity,
			item.Product.Price*float64(item.Quantity))
	}
	fmt.Printf("Total: $%.2f (%d items)\n", a.cart.Total(), a.cart.ItemCount())
}
