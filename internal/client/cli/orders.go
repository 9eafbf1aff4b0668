package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// Checkout prompts for shipping details and converts the cart into an
// order. The orders store attaches an idempotency key so a retry after a
// timeout cannot place the order twice.
func (a *App) Checkout(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if len(a.cart.Items()) == 0 {
		fmt.Println("Your cart is empty; nothing to check out.")
		return nil
	}

	a.printCart()

	shipping, err := getSimpleText(a.reader, "Shipping address", os.Stdout)
	if err != nil {
		return err
	}
	if shipping == "" {
		fmt.Println("A shipping address is required.")
		return nil
	}

	billing, err := getSimpleText(a.reader, "Billing address (blank = same as shipping)", os.Stdout)
	if err != nil {
		return err
	}
	if billing == "" {
		billing = shipping
	}

	payment, err := getSimpleText(a.reader, "Payment method (card/paypal/cod)", os.Stdout)
	if err != nil {
		return err
	}
	if payment == "" {
		payment = "card"
	}

	res, order := a.orders.Create(ctx, models.OrderDraft{
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentMethod:   payment,
	})
	if !res.OK {
		printResult(res)
		return nil
	}

	fmt.Printf("Order %s placed. Total: $%.2f\n", order.OrderNumber, order.TotalAmount)

	// The server empties the cart on checkout; refresh the local view.
	_ = a.cart.Fetch(ctx)
	return nil
}

// Orders lists the order history, newest first.
func (a *App) Orders(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if res := a.orders.Fetch(ctx); !res.OK {
		printResult(res)
		return nil
	}

	orders := a.orders.Orders()
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%4d  %-16s %-11s $%8.2f  %s\n",
			o.ID, o.OrderNumber, o.Status, o.TotalAmount,
			o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Order shows one order's detail view: order <id>.
func (a *App) Order(ctx context.Context, arg string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: order <id>")
		return nil
	}

	if res := a.orders.FetchByID(ctx, id); !res.OK {
		printResult(res)
		return nil
	}

	o := a.orders.CurrentOrder()
	if o == nil {
		fmt.Println("Order not found.")
		return nil
	}

	fmt.Printf("Order %s  (%s)\n", o.OrderNumber, o.Status)
	fmt.Printf("Placed:    %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Ship to:   %s\n", o.ShippingAddress)
	fmt.Printf("Payment:   %s\n", o.PaymentMethod)
	for _, item := range o.Items {
		fmt.Printf("  %-40s x%-3d $%8.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Printf("Total: $%.2f\n", o.TotalAmount)
	return nil
}
